package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/auth"
)

type Handlers struct {
	Cart      *CartHandler
	Orders    *OrderHandler
	Statement *StatementHandler
	Catalog   *CatalogHandler
	Adverts   *AdvertHandler
}

func NewRouter(verifier auth.Verifier, h Handlers, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront reads
		r.Get("/medicines", h.Catalog.ListMedicines)
		r.Get("/medicines/{id}", h.Catalog.GetMedicine)
		r.Get("/categories", h.Catalog.ListCategories)
		r.Get("/adverts/slider", h.Adverts.Slider)

		// Everything below requires a verified identity
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(verifier))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Post("/", h.Cart.AddItem)
				r.Put("/{id}", h.Cart.UpdateQuantity)
				r.Delete("/{id}", h.Cart.RemoveItem)
				r.Delete("/", h.Cart.ClearCart)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.Orders.Checkout)
				r.Get("/", h.Orders.ListOwn)
				r.Get("/{id}", h.Orders.Get)
				r.With(RequireRole(auth.RoleAdmin)).Post("/{id}/refund", h.Orders.Refund)
			})

			r.Get("/sellers/{seller}/statement", h.Statement.Get)

			r.With(RequireRole(auth.RoleAdmin)).Post("/categories", h.Catalog.CreateCategory)
			r.With(RequireRole(auth.RoleAdmin)).Delete("/categories/{id}", h.Catalog.DeleteCategory)

			r.Post("/medicines", h.Catalog.CreateMedicine)
			r.Put("/medicines/{id}", h.Catalog.UpdateMedicine)
			r.Delete("/medicines/{id}", h.Catalog.DeleteMedicine)
			r.With(RequireRole(auth.RoleAdmin)).Patch("/medicines/{id}/banner", h.Catalog.SetBanner)

			r.Route("/adverts", func(r chi.Router) {
				r.Get("/", h.Adverts.List)
				r.Post("/", h.Adverts.Submit)
				r.With(RequireRole(auth.RoleAdmin)).Patch("/{id}/status", h.Adverts.Decide)
				r.With(RequireRole(auth.RoleAdmin)).Patch("/{id}/slider", h.Adverts.SetSlider)
			})
		})
	})

	return r
}
