package payment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// BreakerGateway wraps a Gateway with a circuit breaker. An open
// breaker means no charge was ever sent, so it maps to a plain decline
// rather than an ambiguous outcome.
type BreakerGateway struct {
	inner   Gateway
	breaker *gobreaker.CircuitBreaker[ChargeResult]
}

func NewBreakerGateway(inner Gateway) *BreakerGateway {
	settings := gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &BreakerGateway{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[ChargeResult](settings),
	}
}

func (g *BreakerGateway) Charge(ctx context.Context, orderID string, amount decimal.Decimal) (ChargeResult, error) {
	result, err := g.breaker.Execute(func() (ChargeResult, error) {
		return g.inner.Charge(ctx, orderID, amount)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ChargeResult{Reason: "payment gateway unavailable"}, nil
		}
		return ChargeResult{}, err
	}
	return result, nil
}

func (g *BreakerGateway) Refund(ctx context.Context, orderID, reference string) error {
	return g.inner.Refund(ctx, orderID, reference)
}
