// Package checkout turns a session's cart into a persisted order. Payment is
// collect-on-delivery only, so placing an order is a local transition: price
// the cart, append the order to the session's order history, clear the cart.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noormodest/storefront-backend/internal/cart"
	"github.com/noormodest/storefront-backend/pkg/blobstore"
	"github.com/noormodest/storefront-backend/pkg/config"
	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
	"github.com/noormodest/storefront-backend/pkg/logger"
	"github.com/noormodest/storefront-backend/pkg/money"
)

const blobKeyPrefix = "orders:"

const orderNumberPrefix = "NMW-"

// Address is the shipping destination captured at checkout.
type Address struct {
	FullName   string `json:"full_name" validate:"required,min=2,max=120"`
	Phone      string `json:"phone" validate:"required,min=8,max=16"`
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2" validate:"max=200"`
	City       string `json:"city" validate:"required,max=80"`
	State      string `json:"state" validate:"required,max=80"`
	PostalCode string `json:"postal_code" validate:"required,len=6,numeric"`
}

// Order is an immutable record of a placed checkout.
type Order struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Items         []cart.LineItem `json:"items"`
	SubtotalPaise int64           `json:"subtotal_paise"`
	ShippingPaise int64           `json:"shipping_paise"`
	TaxPaise      int64           `json:"tax_paise"`
	TotalPaise    int64           `json:"total_paise"`
	Address       Address         `json:"address"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// TotalRupees renders the grand total for display.
func (o Order) TotalRupees() string {
	return money.FormatRupees(o.TotalPaise)
}

type orderState struct {
	Orders []Order `json:"orders"`
}

// Service prices carts and records orders.
type Service struct {
	blobs blobstore.Store
	cfg   config.CheckoutConfig
	logg  *logger.Logger
	now   func() time.Time
}

func NewService(blobs blobstore.Store, cfg config.CheckoutConfig, logg *logger.Logger) (*Service, error) {
	if blobs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blob store is required")
	}
	return &Service{blobs: blobs, cfg: cfg, logg: logg, now: time.Now}, nil
}

// ShippingPaise applies the flat rate, waived at or above the free-shipping
// threshold.
func (s *Service) ShippingPaise(subtotalPaise int64) int64 {
	if subtotalPaise >= s.cfg.FreeShippingThresholdPaise {
		return 0
	}
	return s.cfg.FlatShippingPaise
}

// TaxPaise is the GST line on the subtotal.
func (s *Service) TaxPaise(subtotalPaise int64) int64 {
	return money.Tax(subtotalPaise, s.cfg.TaxRateBasisPoints)
}

// PlaceOrder prices the cart, persists the resulting order at the head of the
// session's history, and clears the cart. An empty cart is rejected.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Cart, addr Address) (Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	subtotal := c.SubtotalPaise()
	shipping := s.ShippingPaise(subtotal)
	tax := s.TaxPaise(subtotal)

	id := uuid.NewString()
	order := Order{
		ID:            id,
		Number:        orderNumberPrefix + strings.ToUpper(id[:8]),
		Items:         items,
		SubtotalPaise: subtotal,
		ShippingPaise: shipping,
		TaxPaise:      tax,
		TotalPaise:    subtotal + shipping + tax,
		Address:       addr,
		PlacedAt:      s.now().UTC(),
	}

	history, err := s.loadHistory(ctx, c.SessionID())
	if err != nil {
		return Order{}, err
	}
	history.Orders = append([]Order{order}, history.Orders...)

	raw, err := json.Marshal(history)
	if err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode orders")
	}
	if err := s.blobs.Set(ctx, blobKeyPrefix+c.SessionID(), raw); err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist orders")
	}

	if err := c.Clear(ctx); err != nil {
		return Order{}, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_number", order.Number), "order placed")
	}
	return order, nil
}

// ListOrders returns the session's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, sessionID string) ([]Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	history, err := s.loadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return history.Orders, nil
}

func (s *Service) loadHistory(ctx context.Context, sessionID string) (orderState, error) {
	var state orderState

	raw, err := s.blobs.Get(ctx, blobKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return state, nil
		}
		return state, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
	}

	if err := json.Unmarshal(raw, &state); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "discarding unreadable orders blob")
		}
		return orderState{}, nil
	}
	return state, nil
}
