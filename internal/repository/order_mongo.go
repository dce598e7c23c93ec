package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

// Orders embed their line items; there is no separate line-item
// collection, so a stored snapshot cannot drift through a later join.
type orderDoc struct {
	ID                  primitive.ObjectID   `bson:"_id"`
	Buyer               string               `bson:"buyer"`
	LineItems           []lineItemDoc        `bson:"line_items"`
	TotalAmount         primitive.Decimal128 `bson:"total_amount"`
	PaymentStatus       domain.PaymentStatus `bson:"payment_status"`
	PaymentRef          string               `bson:"payment_ref,omitempty"`
	NeedsReconciliation bool                 `bson:"needs_reconciliation,omitempty"`
	CreatedAt           time.Time            `bson:"created_at"`
}

type lineItemDoc struct {
	MedicineID   primitive.ObjectID   `bson:"medicine_id"`
	MedicineName string               `bson:"medicine_name"`
	Seller       string               `bson:"seller"`
	UnitPrice    primitive.Decimal128 `bson:"unit_price"`
	Discount     primitive.Decimal128 `bson:"discount"`
	Quantity     int                  `bson:"quantity"`
	LineAmount   primitive.Decimal128 `bson:"line_amount"`
}

func encodeOrder(o *domain.Order) (*orderDoc, error) {
	total, err := toDecimal128(o.TotalAmount)
	if err != nil {
		return nil, err
	}

	doc := &orderDoc{
		ID:                  o.ID,
		Buyer:               o.Buyer,
		LineItems:           make([]lineItemDoc, 0, len(o.LineItems)),
		TotalAmount:         total,
		PaymentStatus:       o.PaymentStatus,
		PaymentRef:          o.PaymentRef,
		NeedsReconciliation: o.NeedsReconciliation,
		CreatedAt:           o.CreatedAt,
	}

	for _, li := range o.LineItems {
		price, err := toDecimal128(li.UnitPrice)
		if err != nil {
			return nil, err
		}
		discount, err := toDecimal128(li.Discount)
		if err != nil {
			return nil, err
		}
		amount, err := toDecimal128(li.LineAmount)
		if err != nil {
			return nil, err
		}
		doc.LineItems = append(doc.LineItems, lineItemDoc{
			MedicineID:   li.MedicineID,
			MedicineName: li.MedicineName,
			Seller:       li.Seller,
			UnitPrice:    price,
			Discount:     discount,
			Quantity:     li.Quantity,
			LineAmount:   amount,
		})
	}

	return doc, nil
}

func decodeOrder(doc *orderDoc) (*domain.Order, error) {
	total, err := fromDecimal128(doc.TotalAmount)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:                  doc.ID,
		Buyer:               doc.Buyer,
		LineItems:           make([]domain.LineItem, 0, len(doc.LineItems)),
		TotalAmount:         total,
		PaymentStatus:       doc.PaymentStatus,
		PaymentRef:          doc.PaymentRef,
		NeedsReconciliation: doc.NeedsReconciliation,
		CreatedAt:           doc.CreatedAt,
	}

	for _, li := range doc.LineItems {
		price, err := fromDecimal128(li.UnitPrice)
		if err != nil {
			return nil, err
		}
		discount, err := fromDecimal128(li.Discount)
		if err != nil {
			return nil, err
		}
		amount, err := fromDecimal128(li.LineAmount)
		if err != nil {
			return nil, err
		}
		order.LineItems = append(order.LineItems, domain.LineItem{
			MedicineID:   li.MedicineID,
			MedicineName: li.MedicineName,
			Seller:       li.Seller,
			UnitPrice:    price,
			Discount:     discount,
			Quantity:     li.Quantity,
			LineAmount:   amount,
		})
	}

	return order, nil
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (m *mongoOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	doc, err := encodeOrder(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (m *mongoOrderRepository) Get(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var doc orderDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return decodeOrder(&doc)
}

func (m *mongoOrderRepository) ListByBuyer(ctx context.Context, buyer string) ([]domain.Order, error) {
	filter := bson.M{"buyer": buyer}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	return m.find(ctx, filter, opts)
}

func (m *mongoOrderRepository) Scan(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	query := bson.M{}
	created := bson.M{}
	if filter.From != nil {
		created["$gte"] = *filter.From
	}
	if filter.To != nil {
		created["$lte"] = *filter.To
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	return m.find(ctx, query, opts)
}

func (m *mongoOrderRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Order, error) {
	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for i := range docs {
		order, err := decodeOrder(&docs[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, nil
}

func (m *mongoOrderRepository) Transition(ctx context.Context, id primitive.ObjectID, from, to domain.PaymentStatus, paymentRef string, needsReconciliation bool) error {
	if !domain.CanTransitionTo(from, to) {
		return domain.ErrInvalidTransition
	}

	// Compare-and-set on the current status: a concurrent transition
	// already applied means zero matches, never a double apply.
	filter := bson.M{"_id": id, "payment_status": from}
	set := bson.M{"payment_status": to}
	if paymentRef != "" {
		set["payment_ref"] = paymentRef
	}
	if needsReconciliation {
		set["needs_reconciliation"] = true
	}

	result, err := m.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to transition order status: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "line_items.seller", Value: 1}}},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}
