package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/auth"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/repository"
)

// CatalogService is thin by design: uniqueness lives in the store's
// indexes, ownership checks live here, and that is all.
type CatalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) GetMedicine(ctx context.Context, id primitive.ObjectID) (*domain.Medicine, error) {
	return s.catalog.GetMedicine(ctx, id)
}

func (s *CatalogService) ListMedicines(ctx context.Context, categoryID *primitive.ObjectID, seller string) ([]domain.Medicine, error) {
	return s.catalog.ListMedicines(ctx, categoryID, seller)
}

func (s *CatalogService) CreateMedicine(ctx context.Context, caller auth.Identity, m *domain.Medicine) error {
	if caller.Role != auth.RoleSeller && caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}
	m.Seller = caller.Subject
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" || m.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	if m.Discount.IsNegative() || m.Discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return domain.ErrInvalidInput
	}
	return s.catalog.CreateMedicine(ctx, m)
}

func (s *CatalogService) UpdateMedicine(ctx context.Context, caller auth.Identity, m *domain.Medicine) error {
	existing, err := s.catalog.GetMedicine(ctx, m.ID)
	if err != nil {
		return err
	}
	if existing.Seller != caller.Subject && caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}
	m.Seller = existing.Seller
	return s.catalog.UpdateMedicine(ctx, m)
}

func (s *CatalogService) DeleteMedicine(ctx context.Context, caller auth.Identity, id primitive.ObjectID) error {
	existing, err := s.catalog.GetMedicine(ctx, id)
	if err != nil {
		return err
	}
	if existing.Seller != caller.Subject && caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.catalog.DeleteMedicine(ctx, id)
}

func (s *CatalogService) SetBanner(ctx context.Context, caller auth.Identity, id primitive.ObjectID, inBanner bool) error {
	if caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.catalog.SetBanner(ctx, id, inBanner)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, caller auth.Identity, c *domain.Category) error {
	if caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}
	c.Name = strings.TrimSpace(c.Name)
	return s.catalog.CreateCategory(ctx, c)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, caller auth.Identity, id primitive.ObjectID) error {
	if caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.catalog.DeleteCategory(ctx, id)
}
