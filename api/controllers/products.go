package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noormodest/storefront-backend/api/responses"
	"github.com/noormodest/storefront-backend/api/validators"
	"github.com/noormodest/storefront-backend/internal/catalog"
	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
	"github.com/noormodest/storefront-backend/pkg/logger"
	"github.com/noormodest/storefront-backend/pkg/money"
)

// newArrivalWindow bounds how far back the new-arrivals collection reaches.
const newArrivalWindow = 60 * 24 * time.Hour

type productListResponse struct {
	Products []productView `json:"products"`
	Count    int           `json:"count"`
}

// productView decorates a catalog product with display pricing.
type productView struct {
	catalog.Product
	EffectivePricePaise int64  `json:"effective_price_paise"`
	DisplayPrice        string `json:"display_price"`
	DiscountPercent     int    `json:"discount_percent,omitempty"`
}

func viewOf(p catalog.Product) productView {
	return productView{
		Product:             p,
		EffectivePricePaise: p.EffectivePricePaise(),
		DisplayPrice:        money.FormatRupees(p.EffectivePricePaise()),
		DiscountPercent:     p.DiscountPercent(),
	}
}

func viewsOf(products []catalog.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewOf(p))
	}
	return views
}

// ListProducts filters and orders the catalog. An unknown category yields an
// empty list, not an error.
func ListProducts(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := criteriaFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sortKey, err := catalog.ParseSortKey(r.URL.Query().Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scope := cat.All()
		if category := r.URL.Query().Get("category"); category != "" {
			scope = cat.ByCategory(category)
		}

		results := catalog.Query(scope, criteria, sortKey)
		responses.WriteSuccess(w, productListResponse{Products: viewsOf(results), Count: len(results)})
	}
}

func criteriaFromQuery(r *http.Request) (catalog.FilterCriteria, error) {
	var criteria catalog.FilterCriteria

	min, err := validators.ParseQueryPaise(r, "price_min")
	if err != nil {
		return criteria, err
	}
	max, err := validators.ParseQueryPaise(r, "price_max")
	if err != nil {
		return criteria, err
	}

	criteria.PriceMinPaise = min
	criteria.PriceMaxPaise = max
	criteria.Sizes = validators.ParseQueryCSV(r, "sizes")
	criteria.Colors = validators.ParseQueryCSV(r, "colors")
	criteria.Fabrics = validators.ParseQueryCSV(r, "fabrics")
	return criteria, nil
}

// GetProduct looks a product up by slug.
func GetProduct(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		product, ok := cat.BySlug(slug)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, viewOf(product))
	}
}

// ListCategories returns the distinct category slugs for navigation.
func ListCategories(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := cat.Categories()
		responses.WriteSuccess(w, map[string]any{"categories": categories, "count": len(categories)})
	}
}

// CategoryFacets returns the filter dimensions available within a category.
// The facet set is computed over the category scope before any filters apply,
// so selecting a filter never shrinks the offered options.
func CategoryFacets(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "slug")
		facets := catalog.ComputeFacets(cat.ByCategory(category))
		responses.WriteSuccess(w, facets)
	}
}

// FeaturedProducts returns the homepage merchandising picks.
func FeaturedProducts(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := cat.Featured()
		responses.WriteSuccess(w, productListResponse{Products: viewsOf(products), Count: len(products)})
	}
}

// NewArrivalProducts returns recently added products.
func NewArrivalProducts(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := cat.NewArrivals(time.Now().Add(-newArrivalWindow))
		responses.WriteSuccess(w, productListResponse{Products: viewsOf(products), Count: len(products)})
	}
}

// SaleProducts returns every product with an active sale price.
func SaleProducts(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := cat.OnSale()
		responses.WriteSuccess(w, productListResponse{Products: viewsOf(products), Count: len(products)})
	}
}
