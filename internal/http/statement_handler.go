package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/auth"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

type StatementAPI interface {
	StatementFor(ctx context.Context, seller string, from, to *time.Time) (*domain.SellerStatement, error)
}

type StatementHandler struct {
	statements StatementAPI
}

func NewStatementHandler(statements StatementAPI) *StatementHandler {
	return &StatementHandler{statements: statements}
}

// Get serves a seller's revenue statement. Sellers may only read their
// own; admins may read anyone's.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	seller := chi.URLParam(r, "seller")
	if seller == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "missing seller")
		return
	}
	if identity.Subject != seller && identity.Role != auth.RoleAdmin {
		respondError(w, http.StatusForbidden, "permission_denied", "statement belongs to another seller")
		return
	}

	from, err := parseTimeParam(r, "from")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "from must be RFC3339")
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "to must be RFC3339")
		return
	}

	statement, err := h.statements.StatementFor(r.Context(), seller, from, to)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, statement)
}

func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
