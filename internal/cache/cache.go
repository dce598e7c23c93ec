package cache

import (
	"context"
	"errors"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

type CartViewCache interface {
	Get(ctx context.Context, owner string) (*domain.CartView, error)
	Set(ctx context.Context, owner string, view *domain.CartView) error
	Delete(ctx context.Context, owner string) error
}

// CheckoutLimiter bounds how often one buyer may attempt checkout.
// Successful payments reset the window.
type CheckoutLimiter interface {
	Allow(ctx context.Context, buyer string) (bool, error)
	Reset(ctx context.Context, buyer string) error
}

var ErrCacheMiss = errors.New("cache miss")
