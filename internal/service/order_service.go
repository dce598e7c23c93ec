package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/cache"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/payment"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/repository"
)

const defaultChargeTimeout = 10 * time.Second

type OrderService struct {
	orders        repository.OrderRepository
	carts         repository.CartRepository
	catalog       repository.CatalogRepository
	gateway       payment.Gateway
	limiter       cache.CheckoutLimiter
	viewCache     cache.CartViewCache
	chargeTimeout time.Duration
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	catalog repository.CatalogRepository,
	gateway payment.Gateway,
	limiter cache.CheckoutLimiter,
	viewCache cache.CartViewCache,
) *OrderService {
	return &OrderService{
		orders:        orders,
		carts:         carts,
		catalog:       catalog,
		gateway:       gateway,
		limiter:       limiter,
		viewCache:     viewCache,
		chargeTimeout: defaultChargeTimeout,
	}
}

// Checkout converts the buyer's cart into an order and attempts
// payment. The returned order is always in a terminal payment status:
// PAID with the cart cleared, or FAILED with the cart intact.
func (s *OrderService) Checkout(ctx context.Context, buyer string) (*domain.Order, error) {
	ok, err := s.limiter.Allow(ctx, buyer)
	if err != nil {
		return nil, fmt.Errorf("checkout attempt gate failed: %w", err)
	}
	if !ok {
		return nil, domain.ErrTooManyAttempts
	}

	items, err := s.carts.Items(ctx, buyer)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Snapshot every cart row against the live catalog. Any missing
	// medicine fails the whole checkout before anything is written.
	lineItems := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		med, err := s.catalog.GetMedicine(ctx, item.MedicineID)
		if err != nil {
			if errors.Is(err, domain.ErrMedicineNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrMedicineUnavailable, item.MedicineID.Hex())
			}
			return nil, fmt.Errorf("failed to resolve cart item: %w", err)
		}
		lineItems = append(lineItems, domain.NewLineItem(*med, item.Quantity))
	}

	order := &domain.Order{
		ID:            primitive.NewObjectID(),
		Buyer:         buyer,
		LineItems:     lineItems,
		TotalAmount:   domain.OrderTotal(lineItems),
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	return s.charge(ctx, order)
}

func (s *OrderService) charge(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	chargeCtx, cancel := context.WithTimeout(ctx, s.chargeTimeout)
	defer cancel()

	result, err := s.gateway.Charge(chargeCtx, order.ID.Hex(), order.TotalAmount)
	if err != nil {
		// Unknown outcome: the charge may or may not have landed.
		// Never assume success; fail the order and flag it for manual
		// reconciliation.
		log.Printf("charge outcome unknown for order %s: %v", order.ID.Hex(), err)
		return s.fail(ctx, order, true)
	}
	if result.Ambiguous {
		log.Printf("ambiguous charge for order %s: %s", order.ID.Hex(), result.Reason)
		return s.fail(ctx, order, true)
	}
	if !result.Accepted {
		log.Printf("charge declined for order %s: %s", order.ID.Hex(), result.Reason)
		return s.fail(ctx, order, false)
	}

	if err := s.orders.Transition(ctx, order.ID, domain.PaymentStatusPending, domain.PaymentStatusPaid, result.Reference, false); err != nil {
		return nil, err
	}
	order.PaymentStatus = domain.PaymentStatusPaid
	order.PaymentRef = result.Reference

	// Cart is consumed only once payment is confirmed. A concurrent
	// checkout of the same cart cannot also reach PAID for this order,
	// and a failed charge leaves the cart untouched for retry.
	if err := s.carts.Clear(ctx, order.Buyer); err != nil {
		log.Printf("failed to clear cart after paid order %s: %v", order.ID.Hex(), err)
	}
	s.invalidateView(order.Buyer)

	if err := s.limiter.Reset(ctx, order.Buyer); err != nil {
		log.Printf("failed to reset checkout attempts for %s: %v", order.Buyer, err)
	}

	return order, nil
}

func (s *OrderService) fail(ctx context.Context, order *domain.Order, needsReconciliation bool) (*domain.Order, error) {
	if err := s.orders.Transition(ctx, order.ID, domain.PaymentStatusPending, domain.PaymentStatusFailed, "", needsReconciliation); err != nil {
		return nil, err
	}
	order.PaymentStatus = domain.PaymentStatusFailed
	order.NeedsReconciliation = needsReconciliation
	return order, nil
}

// Refund reverses a paid order. Administrative operation; only legal
// from PAID.
func (s *OrderService) Refund(ctx context.Context, orderID primitive.ObjectID) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != domain.PaymentStatusPaid {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.gateway.Refund(ctx, order.ID.Hex(), order.PaymentRef); err != nil {
		return nil, fmt.Errorf("gateway refund failed: %w", err)
	}

	if err := s.orders.Transition(ctx, order.ID, domain.PaymentStatusPaid, domain.PaymentStatusRefunded, "", false); err != nil {
		return nil, err
	}
	order.PaymentStatus = domain.PaymentStatusRefunded
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID primitive.ObjectID) (*domain.Order, error) {
	return s.orders.Get(ctx, orderID)
}

// OrdersFor lists the buyer's own orders, newest first.
func (s *OrderService) OrdersFor(ctx context.Context, buyer string) ([]domain.Order, error) {
	return s.orders.ListByBuyer(ctx, buyer)
}

func (s *OrderService) invalidateView(owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.viewCache.Delete(ctx, owner); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}
