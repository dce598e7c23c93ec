package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/auth"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

type AdvertAPI interface {
	Submit(ctx context.Context, caller auth.Identity, a *domain.Advertisement) error
	List(ctx context.Context, caller auth.Identity) ([]domain.Advertisement, error)
	ListSlider(ctx context.Context) ([]domain.Advertisement, error)
	Decide(ctx context.Context, caller auth.Identity, id primitive.ObjectID, status domain.AdvertStatus) error
	SetSlider(ctx context.Context, caller auth.Identity, id primitive.ObjectID, inSlider bool) error
}

type AdvertHandler struct {
	adverts AdvertAPI
}

func NewAdvertHandler(adverts AdvertAPI) *AdvertHandler {
	return &AdvertHandler{adverts: adverts}
}

type submitAdvertDTO struct {
	MedicineID  string `json:"medicine_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type advertStatusDTO struct {
	Status string `json:"status"`
}

type advertSliderDTO struct {
	InSlider bool `json:"in_slider"`
}

func (h *AdvertHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req submitAdvertDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	medicineID, err := primitive.ObjectIDFromHex(req.MedicineID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_medicine_id", "medicine_id must be a valid object id")
		return
	}

	advert := &domain.Advertisement{
		MedicineID:  medicineID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := h.adverts.Submit(r.Context(), identity, advert); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, advert)
}

func (h *AdvertHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	adverts, err := h.adverts.List(r.Context(), identity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, adverts)
}

// Slider is public: it feeds the storefront banner carousel.
func (h *AdvertHandler) Slider(w http.ResponseWriter, r *http.Request) {
	adverts, err := h.adverts.ListSlider(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, adverts)
}

func (h *AdvertHandler) Decide(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_advert_id", "id must be a valid object id")
		return
	}

	var req advertStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.adverts.Decide(r.Context(), identity, id, domain.AdvertStatus(req.Status)); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdvertHandler) SetSlider(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_advert_id", "id must be a valid object id")
		return
	}

	var req advertSliderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.adverts.SetSlider(r.Context(), identity, id, req.InSlider); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
