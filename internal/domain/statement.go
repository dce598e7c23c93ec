package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SellerStatementRow is a projection over stored orders, computed on
// demand and never persisted. Amounts come verbatim from the order's
// line items; the statement never reprices anything.
type SellerStatementRow struct {
	Seller        string             `json:"seller"`
	MedicineName  string             `json:"medicine_name"`
	Buyer         string             `json:"buyer"`
	Quantity      int                `json:"quantity"`
	LineAmount    decimal.Decimal    `json:"line_amount"`
	PaymentStatus PaymentStatus      `json:"payment_status"`
	OrderID       primitive.ObjectID `json:"order_id"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SellerStatement is the full report for one seller. TotalOwed counts
// PAID rows only; failed and refunded rows are listed but not owed.
type SellerStatement struct {
	Seller    string               `json:"seller"`
	Rows      []SellerStatementRow `json:"rows"`
	TotalOwed decimal.Decimal      `json:"total_owed"`
}
