package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medicine is a catalog entry owned by one seller. Discount is a
// fraction in [0, 1), not a percentage.
type Medicine struct {
	ID          primitive.ObjectID `json:"id"`
	Seller      string             `json:"seller"`
	CategoryID  primitive.ObjectID `json:"category_id"`
	Name        string             `json:"name"`
	Company     string             `json:"company,omitempty"`
	Description string             `json:"description,omitempty"`
	ImageURL    string             `json:"image_url,omitempty"`
	Price       decimal.Decimal    `json:"price"`
	Discount    decimal.Decimal    `json:"discount"`
	InBanner    bool               `json:"in_banner"`
	CreatedAt   time.Time          `json:"created_at"`
}

type Category struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	ImageURL string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

type AdvertStatus string

const (
	AdvertStatusPending  AdvertStatus = "pending"
	AdvertStatusApproved AdvertStatus = "approved"
	AdvertStatusRejected AdvertStatus = "rejected"
)

// Advertisement is a seller's request to promote one of their
// medicines. Admins approve/reject and pick approved ones for the
// homepage slider.
type Advertisement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Seller      string             `bson:"seller" json:"seller"`
	MedicineID  primitive.ObjectID `bson:"medicine_id" json:"medicine_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Status      AdvertStatus       `bson:"status" json:"status"`
	InSlider    bool               `bson:"in_slider" json:"in_slider"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
