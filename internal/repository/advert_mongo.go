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

type mongoAdvertRepository struct {
	collection *mongo.Collection
}

func NewMongoAdvertRepository(db *mongo.Database) AdvertRepository {
	return &mongoAdvertRepository{
		collection: db.Collection("advertisements"),
	}
}

func (m *mongoAdvertRepository) Create(ctx context.Context, a *domain.Advertisement) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.Status = domain.AdvertStatusPending
	a.InSlider = false
	a.CreatedAt = time.Now()

	if _, err := m.collection.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create advert: %w", err)
	}
	return nil
}

func (m *mongoAdvertRepository) List(ctx context.Context, seller string) ([]domain.Advertisement, error) {
	filter := bson.M{}
	if seller != "" {
		filter["seller"] = seller
	}

	cursor, err := m.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list adverts: %w", err)
	}

	var adverts []domain.Advertisement
	if err := cursor.All(ctx, &adverts); err != nil {
		return nil, fmt.Errorf("failed to decode adverts: %w", err)
	}
	return adverts, nil
}

func (m *mongoAdvertRepository) ListSlider(ctx context.Context) ([]domain.Advertisement, error) {
	filter := bson.M{"status": domain.AdvertStatusApproved, "in_slider": true}

	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list slider adverts: %w", err)
	}

	var adverts []domain.Advertisement
	if err := cursor.All(ctx, &adverts); err != nil {
		return nil, fmt.Errorf("failed to decode slider adverts: %w", err)
	}
	return adverts, nil
}

func (m *mongoAdvertRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.AdvertStatus) error {
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to set advert status: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrAdvertNotFound
	}
	return nil
}

func (m *mongoAdvertRepository) SetSlider(ctx context.Context, id primitive.ObjectID, inSlider bool) error {
	// Only approved adverts can be promoted to the slider.
	filter := bson.M{"_id": id, "status": domain.AdvertStatusApproved}

	result, err := m.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"in_slider": inSlider}})
	if err != nil {
		return fmt.Errorf("failed to set slider flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrAdvertNotFound
	}
	return nil
}
