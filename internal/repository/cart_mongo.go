package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("cart_items"),
	}
}

func (m *mongoCartRepository) AddOrIncrement(ctx context.Context, owner string, medicineID primitive.ObjectID) error {
	filter := bson.M{"owner": owner, "medicine_id": medicineID}

	// One round trip: $inc creates quantity at 1 on insert and bumps it
	// on match. The unique (owner, medicine_id) index keeps concurrent
	// first-adds from producing duplicate rows.
	update := bson.M{
		"$inc":         bson.M{"quantity": 1},
		"$setOnInsert": bson.M{"added_at": time.Now()},
	}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		// A concurrent upsert can still lose the insert race on the
		// unique index; retry once, which then takes the $inc path.
		if mongo.IsDuplicateKeyError(err) {
			_, err = m.collection.UpdateOne(ctx, filter, update, opts)
		}
		if err != nil {
			return fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return nil
}

func (m *mongoCartRepository) Items(ctx context.Context, owner string) ([]domain.CartItem, error) {
	filter := bson.M{"owner": owner}
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	var items []domain.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}

	return items, nil
}

func (m *mongoCartRepository) SetQuantity(ctx context.Context, owner string, cartItemID primitive.ObjectID, quantity int) error {
	// Ownership lives in the filter: a foreign row is simply not matched.
	filter := bson.M{"_id": cartItemID, "owner": owner}
	update := bson.M{"$set": bson.M{"quantity": quantity}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mongoCartRepository) Remove(ctx context.Context, owner string, cartItemID primitive.ObjectID) error {
	filter := bson.M{"_id": cartItemID, "owner": owner}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mongoCartRepository) Clear(ctx context.Context, owner string) error {
	// Idempotent: clearing an empty cart matches nothing and succeeds.
	_, err := m.collection.DeleteMany(ctx, bson.M{"owner": owner})
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "medicine_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "added_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
