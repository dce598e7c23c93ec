package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedOutcome struct {
	outcome Outcome
	reason  string
}

func (s scriptedOutcome) Next() (Outcome, string) { return s.outcome, s.reason }

func TestCalcOutcome(t *testing.T) {
	tests := []struct {
		n      int
		want   Outcome
		reason string
	}{
		{0, OutcomeAccepted, ""},
		{93, OutcomeAccepted, ""},
		{94, OutcomeDeclined, "insufficient funds"},
		{96, OutcomeDeclined, "insufficient funds"},
		{97, OutcomeDeclined, "card declined"},
		{99, OutcomeDeclined, "card declined"},
		{100, OutcomeAmbiguous, "processor did not respond"},
	}

	for _, tt := range tests {
		outcome, reason := calcOutcome(tt.n)
		assert.Equal(t, tt.want, outcome, "n=%d", tt.n)
		assert.Equal(t, tt.reason, reason, "n=%d", tt.n)
	}
}

func TestStubGateway_Accepted(t *testing.T) {
	g := NewStubGateway(scriptedOutcome{outcome: OutcomeAccepted})

	result, err := g.Charge(context.Background(), "order-1", decimal.NewFromInt(24))
	require.NoError(t, err)

	assert.True(t, result.Accepted)
	assert.False(t, result.Ambiguous)
	assert.True(t, strings.HasPrefix(result.Reference, "TXN-"), "got %q", result.Reference)
}

func TestStubGateway_Declined(t *testing.T) {
	g := NewStubGateway(scriptedOutcome{outcome: OutcomeDeclined, reason: "card declined"})

	result, err := g.Charge(context.Background(), "order-1", decimal.NewFromInt(24))
	require.NoError(t, err)

	assert.False(t, result.Accepted)
	assert.False(t, result.Ambiguous)
	assert.Equal(t, "card declined", result.Reason)
	assert.Empty(t, result.Reference)
}

func TestStubGateway_Ambiguous(t *testing.T) {
	g := NewStubGateway(scriptedOutcome{outcome: OutcomeAmbiguous, reason: "processor did not respond"})

	result, err := g.Charge(context.Background(), "order-1", decimal.NewFromInt(24))
	require.NoError(t, err)

	assert.False(t, result.Accepted)
	assert.True(t, result.Ambiguous)
}

func TestStubGateway_CancelledContextIsAmbiguous(t *testing.T) {
	g := NewStubGateway(scriptedOutcome{outcome: OutcomeAccepted})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := g.Charge(ctx, "order-1", decimal.NewFromInt(24))
	require.NoError(t, err)

	// A charge that may or may not have reached the processor is never
	// reported as accepted.
	assert.False(t, result.Accepted)
	assert.True(t, result.Ambiguous)
}

type failingGateway struct {
	calls int
}

func (f *failingGateway) Charge(context.Context, string, decimal.Decimal) (ChargeResult, error) {
	f.calls++
	return ChargeResult{}, errors.New("connection refused")
}

func (f *failingGateway) Refund(context.Context, string, string) error { return nil }

func TestBreakerGateway_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &failingGateway{}
	g := NewBreakerGateway(inner)

	for i := 0; i < 5; i++ {
		_, err := g.Charge(context.Background(), "order-1", decimal.NewFromInt(10))
		require.Error(t, err)
	}

	// Breaker is open: the charge is refused locally without touching the
	// processor, so the caller sees a definite decline.
	result, err := g.Charge(context.Background(), "order-1", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.False(t, result.Ambiguous)
	assert.Equal(t, "payment gateway unavailable", result.Reason)
	assert.Equal(t, 5, inner.calls)
}

func TestBreakerGateway_PassesThroughResults(t *testing.T) {
	g := NewBreakerGateway(NewStubGateway(scriptedOutcome{outcome: OutcomeAccepted}))

	result, err := g.Charge(context.Background(), "order-1", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, result.Accepted)
}
