package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cometcontrol/comet-backend/api/responses"
	"github.com/cometcontrol/comet-backend/internal/catalog"
	"github.com/cometcontrol/comet-backend/pkg/enums"
	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/logger"
)

// ListProducts handles GET /api/products with optional category, featured,
// and q query filters.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := catalog.ListFilter{
			Query:    r.URL.Query().Get("q"),
			Locale:   r.URL.Query().Get("locale"),
			Featured: r.URL.Query().Get("featured") == "true",
		}

		if raw := r.URL.Query().Get("category"); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category"))
				return
			}
			filter.Category = category
		}

		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// GetProductBySlug handles GET /api/products/{slug}.
func GetProductBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// GetRelatedProducts handles GET /api/products/{slug}/related.
func GetRelatedProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		related, err := svc.GetRelatedProducts(r.Context(), product.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, related)
	}
}

// ListCategories handles GET /api/categories.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}
