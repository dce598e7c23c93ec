package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

type OrderAPI interface {
	Checkout(ctx context.Context, buyer string) (*domain.Order, error)
	Refund(ctx context.Context, orderID primitive.ObjectID) (*domain.Order, error)
	Get(ctx context.Context, orderID primitive.ObjectID) (*domain.Order, error)
	OrdersFor(ctx context.Context, buyer string) ([]domain.Order, error)
}

type OrderHandler struct {
	orders OrderAPI
}

func NewOrderHandler(orders OrderAPI) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type checkoutResponse struct {
	Order *domain.Order `json:"order"`
	// Advice distinguishes "fix your cart", "try again" and "contact
	// support" for the buyer-facing client.
	Advice string `json:"advice,omitempty"`
}

// Checkout converts the caller's cart into an order and attempts
// payment in one request. The response status reflects the payment
// outcome, not just order creation.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	order, err := h.orders.Checkout(r.Context(), identity.Subject)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	switch {
	case order.PaymentStatus == domain.PaymentStatusPaid:
		respondJSON(w, http.StatusCreated, checkoutResponse{Order: order})
	case order.NeedsReconciliation:
		respondJSON(w, http.StatusPaymentRequired, checkoutResponse{
			Order:  order,
			Advice: "payment outcome unconfirmed, contact support before retrying",
		})
	default:
		respondJSON(w, http.StatusPaymentRequired, checkoutResponse{
			Order:  order,
			Advice: "payment declined, your cart is unchanged, you may retry",
		})
	}
}

func (h *OrderHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.OrdersFor(r.Context(), identity.Subject)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "id must be a valid object id")
		return
	}

	order, err := h.orders.Get(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if order.Buyer != identity.Subject && identity.Role != "admin" {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Refund is admin-only; the route is gated by RequireRole.
func (h *OrderHandler) Refund(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "id must be a valid object id")
		return
	}

	order, err := h.orders.Refund(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}
