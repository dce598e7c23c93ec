package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/auth"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/repository"
)

type AdvertService struct {
	adverts repository.AdvertRepository
	catalog repository.CatalogRepository
}

func NewAdvertService(adverts repository.AdvertRepository, catalog repository.CatalogRepository) *AdvertService {
	return &AdvertService{adverts: adverts, catalog: catalog}
}

// Submit files a promotion request for one of the seller's own
// medicines. It enters the queue as pending until an admin decides.
func (s *AdvertService) Submit(ctx context.Context, caller auth.Identity, a *domain.Advertisement) error {
	if caller.Role != auth.RoleSeller && caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}

	med, err := s.catalog.GetMedicine(ctx, a.MedicineID)
	if err != nil {
		return err
	}
	if med.Seller != caller.Subject && caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}

	a.Seller = caller.Subject
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return domain.ErrInvalidInput
	}

	return s.adverts.Create(ctx, a)
}

// List returns the caller's own adverts, or all of them for admins.
func (s *AdvertService) List(ctx context.Context, caller auth.Identity) ([]domain.Advertisement, error) {
	if caller.Role == auth.RoleAdmin {
		return s.adverts.List(ctx, "")
	}
	return s.adverts.List(ctx, caller.Subject)
}

func (s *AdvertService) ListSlider(ctx context.Context) ([]domain.Advertisement, error) {
	return s.adverts.ListSlider(ctx)
}

func (s *AdvertService) Decide(ctx context.Context, caller auth.Identity, id primitive.ObjectID, status domain.AdvertStatus) error {
	if caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}
	if status != domain.AdvertStatusApproved && status != domain.AdvertStatusRejected {
		return domain.ErrInvalidInput
	}
	return s.adverts.SetStatus(ctx, id, status)
}

func (s *AdvertService) SetSlider(ctx context.Context, caller auth.Identity, id primitive.ObjectID, inSlider bool) error {
	if caller.Role != auth.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.adverts.SetSlider(ctx, id, inSlider)
}
