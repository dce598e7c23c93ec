package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeResult is the only thing the order ledger needs from a payment
// processor. Ambiguous means the outcome is unknown (timeout, dropped
// connection after send); the ledger must never read it as success.
type ChargeResult struct {
	Accepted  bool
	Reference string
	Ambiguous bool
	Reason    string
}

type Gateway interface {
	// Charge attempts to capture amount for the given order. The order
	// ID doubles as the idempotency key towards the processor.
	Charge(ctx context.Context, orderID string, amount decimal.Decimal) (ChargeResult, error)
	Refund(ctx context.Context, orderID, reference string) error
}
