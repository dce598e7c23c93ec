package payment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeDeclined
	OutcomeAmbiguous
)

type OutcomeSource interface {
	Next() (Outcome, string)
}

type RandomOutcome struct{}

func (RandomOutcome) Next() (Outcome, string) {
	return calcOutcome(rand.Intn(101)) // 101 because Intn is exclusive of the upper bound
}

func calcOutcome(n int) (Outcome, string) {
	switch {
	case n < 94:
		return OutcomeAccepted, ""
	case n < 97:
		return OutcomeDeclined, "insufficient funds"
	case n < 100:
		return OutcomeDeclined, "card declined"
	default:
		return OutcomeAmbiguous, "processor did not respond"
	}
}

// StubGateway stands in for the real processor. The outcome source is
// injectable so tests can script exact results.
type StubGateway struct {
	outcome OutcomeSource
}

func NewStubGateway(outcome OutcomeSource) *StubGateway {
	return &StubGateway{outcome: outcome}
}

func (g *StubGateway) Charge(ctx context.Context, orderID string, amount decimal.Decimal) (ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return ChargeResult{Ambiguous: true, Reason: "charge cancelled in flight"}, nil
	}

	outcome, reason := g.outcome.Next()
	switch outcome {
	case OutcomeAccepted:
		return ChargeResult{
			Accepted:  true,
			Reference: fmt.Sprintf("TXN-%s", uuid.NewString()),
		}, nil
	case OutcomeAmbiguous:
		return ChargeResult{Ambiguous: true, Reason: reason}, nil
	default:
		return ChargeResult{Reason: reason}, nil
	}
}

// Refund always succeeds against the stub processor.
func (g *StubGateway) Refund(ctx context.Context, orderID, reference string) error {
	return ctx.Err()
}
