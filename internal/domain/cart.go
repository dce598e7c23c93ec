package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one row of a buyer's cart. There is at most one row per
// (owner, medicine) pair; repeated adds increment Quantity in place.
type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner      string             `bson:"owner" json:"owner"`
	MedicineID primitive.ObjectID `bson:"medicine_id" json:"medicine_id"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	AddedAt    time.Time          `bson:"added_at" json:"added_at"`
}

// CartView is the presentation read path: cart rows joined to the live
// catalog. Prices here are whatever the catalog says right now; the
// checkout snapshot is built separately and must not reuse this.
type CartView struct {
	Owner    string          `json:"owner"`
	Items    []CartViewItem  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartViewItem struct {
	CartItemID primitive.ObjectID `json:"cart_item_id"`
	MedicineID primitive.ObjectID `json:"medicine_id"`
	Name       string             `json:"name"`
	ImageURL   string             `json:"image_url,omitempty"`
	UnitPrice  decimal.Decimal    `json:"unit_price"`
	Discount   decimal.Decimal    `json:"discount"`
	Quantity   int                `json:"quantity"`
	LineTotal  decimal.Decimal    `json:"line_total"`
	// Available is false when the medicine was deleted after the row
	// was added. Such rows still block checkout.
	Available bool `json:"available"`
}
