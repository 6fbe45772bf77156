package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noormodest/storefront-backend/api/middleware"
	"github.com/noormodest/storefront-backend/api/responses"
	"github.com/noormodest/storefront-backend/api/validators"
	"github.com/noormodest/storefront-backend/internal/catalog"
	wishlistsvc "github.com/noormodest/storefront-backend/internal/wishlist"
	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
	"github.com/noormodest/storefront-backend/pkg/logger"
)

type wishlistResponse struct {
	ProductIDs []string      `json:"product_ids"`
	Products   []productView `json:"products"`
}

// wishlistResponseOf resolves saved ids against the catalog; ids whose
// product has since disappeared are carried in ProductIDs but not Products.
func wishlistResponseOf(list *wishlistsvc.Wishlist, cat *catalog.Catalog) wishlistResponse {
	ids := list.IDs()
	products := make([]productView, 0, len(ids))
	for _, id := range ids {
		if product, ok := cat.ByID(id); ok {
			products = append(products, viewOf(product))
		}
	}
	return wishlistResponse{ProductIDs: ids, Products: products}
}

func loadSessionWishlist(r *http.Request, mgr *wishlistsvc.Manager) (*wishlistsvc.Wishlist, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return mgr.Load(r.Context(), sessionID)
}

// GetWishlist returns the session's saved products.
func GetWishlist(mgr *wishlistsvc.Manager, cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := loadSessionWishlist(r, mgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistResponseOf(list, cat))
	}
}

type addWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// AddWishlistItem saves a product id. Saving an already saved id succeeds
// without duplicating it.
func AddWishlistItem(mgr *wishlistsvc.Manager, cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addWishlistRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, ok := cat.ByID(payload.ProductID); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		list, err := loadSessionWishlist(r, mgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := list.Add(r.Context(), payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistResponseOf(list, cat))
	}
}

// RemoveWishlistItem drops a saved product id. Idempotent.
func RemoveWishlistItem(mgr *wishlistsvc.Manager, cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")

		list, err := loadSessionWishlist(r, mgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := list.Remove(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistResponseOf(list, cat))
	}
}
