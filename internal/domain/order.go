package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsTerminal reports whether an order in this status may still be
// re-attempted. A failed order is terminal; the buyer retries by
// checking out a re-populated cart as a fresh order.
func (s PaymentStatus) IsTerminal() bool {
	return s != PaymentStatusPending
}

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}

var transitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:    {PaymentStatusRefunded},
}

func CanTransitionTo(from, to PaymentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LineItem is a value copy of one medicine at checkout time. Nothing in
// it refers back to the live catalog: seller attribution and amounts of
// a settled order must survive later repricing or deletion.
type LineItem struct {
	MedicineID   primitive.ObjectID `json:"medicine_id"`
	MedicineName string             `json:"medicine_name"`
	Seller       string             `json:"seller"`
	UnitPrice    decimal.Decimal    `json:"unit_price"`
	Discount     decimal.Decimal    `json:"discount"`
	Quantity     int                `json:"quantity"`
	LineAmount   decimal.Decimal    `json:"line_amount"`
}

// NewLineItem snapshots a medicine into a line item.
// line_amount = unit_price * quantity * (1 - discount)
func NewLineItem(m Medicine, quantity int) LineItem {
	amount := m.Price.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(1).Sub(m.Discount))
	return LineItem{
		MedicineID:   m.ID,
		MedicineName: m.Name,
		Seller:       m.Seller,
		UnitPrice:    m.Price,
		Discount:     m.Discount,
		Quantity:     quantity,
		LineAmount:   amount,
	}
}

type Order struct {
	ID            primitive.ObjectID `json:"id"`
	Buyer         string             `json:"buyer"`
	LineItems     []LineItem         `json:"line_items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentStatus PaymentStatus      `json:"payment_status"`
	PaymentRef    string             `json:"payment_ref,omitempty"`
	// NeedsReconciliation marks orders whose charge outcome was never
	// confirmed (gateway timeout). Support resolves these manually.
	NeedsReconciliation bool      `json:"needs_reconciliation,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// OrderTotal sums line amounts. The total is always recomputed from the
// line items, never accepted from a caller.
func OrderTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.LineAmount)
	}
	return total
}
