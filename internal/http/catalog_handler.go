package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/auth"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

type CatalogAPI interface {
	GetMedicine(ctx context.Context, id primitive.ObjectID) (*domain.Medicine, error)
	ListMedicines(ctx context.Context, categoryID *primitive.ObjectID, seller string) ([]domain.Medicine, error)
	CreateMedicine(ctx context.Context, caller auth.Identity, m *domain.Medicine) error
	UpdateMedicine(ctx context.Context, caller auth.Identity, m *domain.Medicine) error
	DeleteMedicine(ctx context.Context, caller auth.Identity, id primitive.ObjectID) error
	SetBanner(ctx context.Context, caller auth.Identity, id primitive.ObjectID, inBanner bool) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, caller auth.Identity, c *domain.Category) error
	DeleteCategory(ctx context.Context, caller auth.Identity, id primitive.ObjectID) error
}

type CatalogHandler struct {
	catalog CatalogAPI
}

func NewCatalogHandler(catalog CatalogAPI) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type medicineDTO struct {
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Company     string          `json:"company"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
}

type bannerDTO struct {
	InBanner bool `json:"in_banner"`
}

func (h *CatalogHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	var categoryID *primitive.ObjectID
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_category_id", "category must be a valid object id")
			return
		}
		categoryID = &id
	}

	medicines, err := h.catalog.ListMedicines(r.Context(), categoryID, r.URL.Query().Get("seller"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, medicines)
}

func (h *CatalogHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_medicine_id", "id must be a valid object id")
		return
	}

	medicine, err := h.catalog.GetMedicine(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, medicine)
}

func (h *CatalogHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req medicineDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be a valid object id")
		return
	}

	medicine := &domain.Medicine{
		CategoryID:  categoryID,
		Name:        req.Name,
		Company:     req.Company,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Discount:    req.Discount,
	}

	if err := h.catalog.CreateMedicine(r.Context(), identity, medicine); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, medicine)
}

func (h *CatalogHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_medicine_id", "id must be a valid object id")
		return
	}

	var req medicineDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be a valid object id")
		return
	}

	medicine := &domain.Medicine{
		ID:          id,
		CategoryID:  categoryID,
		Name:        req.Name,
		Company:     req.Company,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Discount:    req.Discount,
	}

	if err := h.catalog.UpdateMedicine(r.Context(), identity, medicine); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, medicine)
}

func (h *CatalogHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_medicine_id", "id must be a valid object id")
		return
	}

	if err := h.catalog.DeleteMedicine(r.Context(), identity, id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) SetBanner(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_medicine_id", "id must be a valid object id")
		return
	}

	var req bannerDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.catalog.SetBanner(r.Context(), identity, id, req.InBanner); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.catalog.CreateCategory(r.Context(), identity, &category); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_category_id", "id must be a valid object id")
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), identity, id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
