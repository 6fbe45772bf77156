package controllers

import (
	"net/http"

	"github.com/noormodest/storefront-backend/api/middleware"
	"github.com/noormodest/storefront-backend/api/responses"
	"github.com/noormodest/storefront-backend/api/validators"
	cartsvc "github.com/noormodest/storefront-backend/internal/cart"
	checkoutsvc "github.com/noormodest/storefront-backend/internal/checkout"
	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
	"github.com/noormodest/storefront-backend/pkg/logger"
)

type placeOrderRequest struct {
	Address checkoutsvc.Address `json:"address" validate:"required"`
}

// PlaceOrder converts the session's cart into an order.
func PlaceOrder(svc *checkoutsvc.Service, cartMgr *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := loadSessionCart(r.Context(), cartMgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), c, payload.Address)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListOrders returns the session's order history, newest first. An optional
// limit query param caps the page; zero means everything.
func ListOrders(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListOrders(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit > 0 && len(orders) > limit {
			orders = orders[:limit]
		}

		responses.WriteSuccess(w, map[string]any{"orders": orders, "count": len(orders)})
	}
}
