package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

// CartAPI is what this handler needs from the cart service.
// Consumers define this interface, not the implementation.
type CartAPI interface {
	Add(ctx context.Context, owner string, medicineID primitive.ObjectID) error
	SetQuantity(ctx context.Context, owner string, cartItemID primitive.ObjectID, quantity int) error
	Remove(ctx context.Context, owner string, cartItemID primitive.ObjectID) error
	Clear(ctx context.Context, owner string) error
	View(ctx context.Context, owner string) (*domain.CartView, error)
}

type CartHandler struct {
	cart CartAPI
}

func NewCartHandler(cart CartAPI) *CartHandler {
	return &CartHandler{cart: cart}
}

type addCartItemDTO struct {
	MedicineID string `json:"medicine_id"`
}

type setQuantityDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req addCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	medicineID, err := primitive.ObjectIDFromHex(req.MedicineID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_medicine_id", "medicine_id must be a valid object id")
		return
	}

	if err := h.cart.Add(r.Context(), identity.Subject, medicineID); err != nil {
		handleServiceError(w, err)
		return
	}

	view, err := h.cart.View(r.Context(), identity.Subject)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	view, err := h.cart.View(r.Context(), identity.Subject)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cartItemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_cart_item_id", "id must be a valid object id")
		return
	}

	var req setQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.cart.SetQuantity(r.Context(), identity.Subject, cartItemID, req.Quantity); err != nil {
		handleServiceError(w, err)
		return
	}

	view, err := h.cart.View(r.Context(), identity.Subject)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cartItemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_cart_item_id", "id must be a valid object id")
		return
	}

	if err := h.cart.Remove(r.Context(), identity.Subject, cartItemID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.cart.Clear(r.Context(), identity.Subject); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
