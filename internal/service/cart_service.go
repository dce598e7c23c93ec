package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/cache"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/repository"
)

type CartService struct {
	carts   repository.CartRepository
	catalog repository.CatalogRepository
	cache   cache.CartViewCache
	sfg     singleflight.Group // Prevents cache stampede
}

func NewCartService(carts repository.CartRepository, catalog repository.CatalogRepository, viewCache cache.CartViewCache) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		cache:   viewCache,
	}
}

// Add adds one unit of the medicine to the owner's cart, incrementing
// the existing row if there is one. The increment is a single atomic
// store operation, so concurrent adds for the same medicine all land.
func (s *CartService) Add(ctx context.Context, owner string, medicineID primitive.ObjectID) error {
	if _, err := s.catalog.GetMedicine(ctx, medicineID); err != nil {
		return err
	}

	if err := s.carts.AddOrIncrement(ctx, owner, medicineID); err != nil {
		log.Printf("repo add cart item error: %v \n", err)
		return err
	}

	s.invalidateView(owner)
	return nil
}

func (s *CartService) SetQuantity(ctx context.Context, owner string, cartItemID primitive.ObjectID, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	if err := s.carts.SetQuantity(ctx, owner, cartItemID, quantity); err != nil {
		return err
	}

	s.invalidateView(owner)
	return nil
}

func (s *CartService) Remove(ctx context.Context, owner string, cartItemID primitive.ObjectID) error {
	if err := s.carts.Remove(ctx, owner, cartItemID); err != nil {
		return err
	}

	s.invalidateView(owner)
	return nil
}

func (s *CartService) Clear(ctx context.Context, owner string) error {
	if err := s.carts.Clear(ctx, owner); err != nil {
		log.Printf("repo clear cart error: %v \n", err)
		return err
	}

	s.invalidateView(owner)
	return nil
}

// View joins the cart rows to the live catalog for display. This is the
// presentation read path only; checkout builds its own snapshot and
// must never reuse these prices.
func (s *CartService) View(ctx context.Context, owner string) (*domain.CartView, error) {
	// Collapse concurrent cache misses for the same owner
	v, err, _ := s.sfg.Do(owner, func() (interface{}, error) {
		view, err := s.cache.Get(ctx, owner)
		if err == nil {
			return view, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		view, errBuild := s.buildView(ctx, owner)
		if errBuild != nil {
			return nil, errBuild
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), owner, view); errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return view, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.CartView), nil
}

func (s *CartService) buildView(ctx context.Context, owner string) (*domain.CartView, error) {
	items, err := s.carts.Items(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	view := &domain.CartView{
		Owner:    owner,
		Items:    make([]domain.CartViewItem, 0, len(items)),
		Subtotal: decimal.Zero,
	}

	for _, item := range items {
		row := domain.CartViewItem{
			CartItemID: item.ID,
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
		}

		med, err := s.catalog.GetMedicine(ctx, item.MedicineID)
		switch {
		case errors.Is(err, domain.ErrMedicineNotFound):
			// Deleted since it was added. Shown as unavailable; the row
			// stays so checkout can reject the cart explicitly.
		case err != nil:
			return nil, err
		default:
			row.Available = true
			row.Name = med.Name
			row.ImageURL = med.ImageURL
			row.UnitPrice = med.Price
			row.Discount = med.Discount
			row.LineTotal = med.Price.
				Mul(decimal.NewFromInt(int64(item.Quantity))).
				Mul(decimal.NewFromInt(1).Sub(med.Discount))
			view.Subtotal = view.Subtotal.Add(row.LineTotal)
		}

		view.Items = append(view.Items, row)
	}

	return view, nil
}

func (s *CartService) invalidateView(owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, owner); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}
