package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/auth"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

var (
	asUser   = auth.Identity{Subject: "user@example.com", Role: auth.RoleUser}
	asSeller = auth.Identity{Subject: "alice@example.com", Role: auth.RoleSeller}
	asAdmin  = auth.Identity{Subject: "admin@example.com", Role: auth.RoleAdmin}
)

func TestCreateMedicine_SellerOnly(t *testing.T) {
	svc := NewCatalogService(newMockCatalogRepo())

	m := &domain.Medicine{Name: "Paracetamol", Price: decimal.NewFromInt(10)}
	err := svc.CreateMedicine(context.Background(), asUser, m)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.CreateMedicine(context.Background(), asSeller, m)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", m.Seller, "seller comes from the verified identity, never the payload")
}

func TestCreateMedicine_Validation(t *testing.T) {
	svc := NewCatalogService(newMockCatalogRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		m    domain.Medicine
	}{
		{"blank name", domain.Medicine{Name: "   ", Price: decimal.NewFromInt(1)}},
		{"negative price", domain.Medicine{Name: "X", Price: decimal.NewFromInt(-1)}},
		{"discount of one", domain.Medicine{Name: "X", Price: decimal.NewFromInt(1), Discount: decimal.NewFromInt(1)}},
		{"negative discount", domain.Medicine{Name: "X", Price: decimal.NewFromInt(1), Discount: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.m
			assert.ErrorIs(t, svc.CreateMedicine(ctx, asSeller, &m), domain.ErrInvalidInput)
		})
	}
}

func TestUpdateMedicine_OwnershipPreserved(t *testing.T) {
	repo := newMockCatalogRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()

	m := &domain.Medicine{Name: "Paracetamol", Price: decimal.NewFromInt(10)}
	require.NoError(t, svc.CreateMedicine(ctx, asSeller, m))

	// Another seller cannot touch it.
	update := &domain.Medicine{ID: m.ID, Name: "Hijacked", Price: decimal.NewFromInt(1)}
	err := svc.UpdateMedicine(ctx, auth.Identity{Subject: "bob@example.com", Role: auth.RoleSeller}, update)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admin can, but the seller attribution stays.
	update = &domain.Medicine{ID: m.ID, Name: "Renamed", Price: decimal.NewFromInt(12)}
	require.NoError(t, svc.UpdateMedicine(ctx, asAdmin, update))
	assert.Equal(t, "alice@example.com", update.Seller)
}

func TestDeleteMedicine_OwnerOrAdmin(t *testing.T) {
	repo := newMockCatalogRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()

	m := &domain.Medicine{Name: "Paracetamol", Price: decimal.NewFromInt(10)}
	require.NoError(t, svc.CreateMedicine(ctx, asSeller, m))

	err := svc.DeleteMedicine(ctx, auth.Identity{Subject: "bob@example.com", Role: auth.RoleSeller}, m.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.DeleteMedicine(ctx, asSeller, m.ID))
	_, err = svc.GetMedicine(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMedicineNotFound)
}

func TestCategoryWrites_AdminOnly(t *testing.T) {
	svc := NewCatalogService(newMockCatalogRepo())
	ctx := context.Background()

	err := svc.CreateCategory(ctx, asSeller, &domain.Category{Name: "Antibiotics"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	err = svc.DeleteCategory(ctx, asSeller, primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.NoError(t, svc.CreateCategory(ctx, asAdmin, &domain.Category{Name: "Antibiotics"}))
}

func TestSetBanner_AdminOnly(t *testing.T) {
	svc := NewCatalogService(newMockCatalogRepo())

	err := svc.SetBanner(context.Background(), asSeller, primitive.NewObjectID(), true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
