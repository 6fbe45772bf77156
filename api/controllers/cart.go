package controllers

import (
	"context"
	"net/http"

	"github.com/noormodest/storefront-backend/api/middleware"
	"github.com/noormodest/storefront-backend/api/responses"
	"github.com/noormodest/storefront-backend/api/validators"
	cartsvc "github.com/noormodest/storefront-backend/internal/cart"
	"github.com/noormodest/storefront-backend/internal/catalog"
	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
	"github.com/noormodest/storefront-backend/pkg/logger"
	"github.com/noormodest/storefront-backend/pkg/money"
)

type cartLineView struct {
	cartsvc.LineItem
	UnitPricePaise int64  `json:"unit_price_paise"`
	LineTotalPaise int64  `json:"line_total_paise"`
	DisplayTotal   string `json:"display_total"`
}

type cartResponse struct {
	Items           []cartLineView `json:"items"`
	ItemCount       int            `json:"item_count"`
	SubtotalPaise   int64          `json:"subtotal_paise"`
	DisplaySubtotal string         `json:"display_subtotal"`
}

func cartResponseOf(c *cartsvc.Cart) cartResponse {
	items := c.Items()
	views := make([]cartLineView, 0, len(items))
	for _, item := range items {
		lineTotal := money.ToPaise(item.LineTotal())
		views = append(views, cartLineView{
			LineItem:       item,
			UnitPricePaise: item.UnitPricePaise(),
			LineTotalPaise: lineTotal,
			DisplayTotal:   money.FormatRupees(lineTotal),
		})
	}
	return cartResponse{
		Items:           views,
		ItemCount:       c.ItemCount(),
		SubtotalPaise:   c.SubtotalPaise(),
		DisplaySubtotal: money.FormatRupees(c.SubtotalPaise()),
	}
}

func loadSessionCart(ctx context.Context, mgr *cartsvc.Manager) (*cartsvc.Cart, error) {
	sessionID := middleware.SessionIDFromContext(ctx)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return mgr.Load(ctx, sessionID)
}

// GetCart returns the session's current cart.
func GetCart(mgr *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := loadSessionCart(r.Context(), mgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponseOf(c))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// AddCartItem adds or merges a variant line. The variant must be one the
// product actually offers.
func AddCartItem(mgr *cartsvc.Manager, cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.ByID(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		if !product.InStock {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock"))
			return
		}

		color, ok := product.ColorByName(payload.Color)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "color not offered for this product"))
			return
		}

		sizeOffered := false
		for _, size := range product.Sizes {
			if size == payload.Size {
				sizeOffered = true
				break
			}
		}
		if !sizeOffered {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "size not offered for this product"))
			return
		}

		c, err := loadSessionCart(r.Context(), mgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := c.AddItem(r.Context(), product, color, payload.Size, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartResponseOf(c))
	}
}

type updateCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// UpdateCartItem sets a line's quantity; zero removes the line.
func UpdateCartItem(mgr *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := loadSessionCart(r.Context(), mgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := c.UpdateQuantity(r.Context(), payload.ProductID, payload.Color, payload.Size, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartResponseOf(c))
	}
}

type removeCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

// RemoveCartItem deletes a line. Removing an absent line succeeds.
func RemoveCartItem(mgr *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload removeCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := loadSessionCart(r.Context(), mgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := c.RemoveItem(r.Context(), payload.ProductID, payload.Color, payload.Size); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartResponseOf(c))
	}
}

// ClearCart empties the session's cart.
func ClearCart(mgr *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := loadSessionCart(r.Context(), mgr)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := c.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponseOf(c))
	}
}
