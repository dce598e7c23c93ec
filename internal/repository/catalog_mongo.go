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

type medicineDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Seller      string               `bson:"seller"`
	CategoryID  primitive.ObjectID   `bson:"category_id"`
	Name        string               `bson:"name"`
	Company     string               `bson:"company,omitempty"`
	Description string               `bson:"description,omitempty"`
	ImageURL    string               `bson:"image_url,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	Discount    primitive.Decimal128 `bson:"discount"`
	InBanner    bool                 `bson:"in_banner"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func encodeMedicine(m *domain.Medicine) (*medicineDoc, error) {
	price, err := toDecimal128(m.Price)
	if err != nil {
		return nil, err
	}
	discount, err := toDecimal128(m.Discount)
	if err != nil {
		return nil, err
	}
	return &medicineDoc{
		ID:          m.ID,
		Seller:      m.Seller,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Company:     m.Company,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Price:       price,
		Discount:    discount,
		InBanner:    m.InBanner,
		CreatedAt:   m.CreatedAt,
	}, nil
}

func decodeMedicine(doc *medicineDoc) (*domain.Medicine, error) {
	price, err := fromDecimal128(doc.Price)
	if err != nil {
		return nil, err
	}
	discount, err := fromDecimal128(doc.Discount)
	if err != nil {
		return nil, err
	}
	return &domain.Medicine{
		ID:          doc.ID,
		Seller:      doc.Seller,
		CategoryID:  doc.CategoryID,
		Name:        doc.Name,
		Company:     doc.Company,
		Description: doc.Description,
		ImageURL:    doc.ImageURL,
		Price:       price,
		Discount:    discount,
		InBanner:    doc.InBanner,
		CreatedAt:   doc.CreatedAt,
	}, nil
}

type mongoCatalogRepository struct {
	medicines  *mongo.Collection
	categories *mongo.Collection
}

func NewMongoCatalogRepository(db *mongo.Database) CatalogRepository {
	return &mongoCatalogRepository{
		medicines:  db.Collection("medicines"),
		categories: db.Collection("categories"),
	}
}

func (m *mongoCatalogRepository) GetMedicine(ctx context.Context, id primitive.ObjectID) (*domain.Medicine, error) {
	var doc medicineDoc
	err := m.medicines.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMedicineNotFound
		}
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return decodeMedicine(&doc)
}

func (m *mongoCatalogRepository) ListMedicines(ctx context.Context, categoryID *primitive.ObjectID, seller string) ([]domain.Medicine, error) {
	filter := bson.M{}
	if categoryID != nil {
		filter["category_id"] = *categoryID
	}
	if seller != "" {
		filter["seller"] = seller
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.medicines.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}

	var docs []medicineDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode medicines: %w", err)
	}

	medicines := make([]domain.Medicine, 0, len(docs))
	for i := range docs {
		med, err := decodeMedicine(&docs[i])
		if err != nil {
			return nil, err
		}
		medicines = append(medicines, *med)
	}
	return medicines, nil
}

func (m *mongoCatalogRepository) CreateMedicine(ctx context.Context, med *domain.Medicine) error {
	if med.ID.IsZero() {
		med.ID = primitive.NewObjectID()
	}
	med.CreatedAt = time.Now()

	doc, err := encodeMedicine(med)
	if err != nil {
		return fmt.Errorf("failed to encode medicine: %w", err)
	}

	if _, err := m.medicines.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

func (m *mongoCatalogRepository) UpdateMedicine(ctx context.Context, med *domain.Medicine) error {
	doc, err := encodeMedicine(med)
	if err != nil {
		return fmt.Errorf("failed to encode medicine: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"category_id": doc.CategoryID,
		"name":        doc.Name,
		"company":     doc.Company,
		"description": doc.Description,
		"image_url":   doc.ImageURL,
		"price":       doc.Price,
		"discount":    doc.Discount,
	}}

	result, err := m.medicines.UpdateOne(ctx, bson.M{"_id": med.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to update medicine: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrMedicineNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) DeleteMedicine(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.medicines.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrMedicineNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) SetBanner(ctx context.Context, id primitive.ObjectID, inBanner bool) error {
	result, err := m.medicines.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"in_banner": inBanner}})
	if err != nil {
		return fmt.Errorf("failed to set banner flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrMedicineNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cursor, err := m.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	var categories []domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (m *mongoCatalogRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}

	if _, err := m.categories.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (m *mongoCatalogRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.medicines.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "seller", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create medicine indexes: %w", err)
	}

	_, err = m.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}
	return nil
}
