// Package cart implements the variant-keyed line-item store. A cart line is
// identified by (product id, color name, size); adds with the same key merge
// by summing quantity, and every mutation writes the whole cart back to the
// session's blob slot.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noormodest/storefront-backend/internal/catalog"
	"github.com/noormodest/storefront-backend/pkg/blobstore"
	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
	"github.com/noormodest/storefront-backend/pkg/logger"
	"github.com/noormodest/storefront-backend/pkg/money"
)

const blobKeyPrefix = "cart:"

// DefaultMaxQtyPerLine caps a single line when no configuration is supplied.
const DefaultMaxQtyPerLine = 5

// LineItem carries a full product snapshot taken at add time, so later
// catalog changes never retroactively reprice a cart.
type LineItem struct {
	Product  catalog.Product     `json:"product"`
	Color    catalog.ColorOption `json:"selected_color"`
	Size     string              `json:"selected_size"`
	Quantity int                 `json:"quantity"`
}

// UnitPricePaise is the snapshot's effective price at add time.
func (li LineItem) UnitPricePaise() int64 {
	return li.Product.EffectivePricePaise()
}

// LineTotal returns unit price times quantity as a rupee-scaled decimal.
func (li LineItem) LineTotal() decimal.Decimal {
	return money.Line(li.UnitPricePaise(), li.Quantity)
}

func (li LineItem) matches(productID, colorName, size string) bool {
	return li.Product.ID == productID && li.Color.Name == colorName && li.Size == size
}

// Manager hands out session-scoped carts backed by the blob store.
type Manager struct {
	blobs  blobstore.Store
	logg   *logger.Logger
	maxQty int
}

// NewManager builds a cart manager. maxQty caps the merged quantity of any
// single line; values below one fall back to the default.
func NewManager(blobs blobstore.Store, maxQty int, logg *logger.Logger) (*Manager, error) {
	if blobs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blob store is required")
	}
	if maxQty < 1 {
		maxQty = DefaultMaxQtyPerLine
	}
	return &Manager{blobs: blobs, logg: logg, maxQty: maxQty}, nil
}

// Load rehydrates the session's cart from its persisted blob. A missing or
// structurally unreadable blob yields an empty cart, never an error.
func (m *Manager) Load(ctx context.Context, sessionID string) (*Cart, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	cart := &Cart{sessionID: sessionID, manager: m}

	raw, err := m.blobs.Get(ctx, blobKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return cart, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var state cartState
	if err := json.Unmarshal(raw, &state); err != nil {
		// Incompatible persisted state is discarded, not surfaced.
		if m.logg != nil {
			m.logg.Warn(ctx, "discarding unreadable cart blob")
		}
		return cart, nil
	}

	cart.items = state.Items
	return cart, nil
}

type cartState struct {
	Items []LineItem `json:"items"`
}

// Cart is the mutable line-item collection for one session. It has a single
// logical writer; mutations persist synchronously before returning.
type Cart struct {
	sessionID string
	items     []LineItem
	manager   *Manager
}

// SessionID returns the owning session.
func (c *Cart) SessionID() string {
	return c.sessionID
}

// AddItem merges into an existing line with the same (product, color, size)
// key or appends a new one. Merged quantities clamp at the per-line maximum.
// The cart does not check that size belongs to the product's declared sizes;
// that validation lives with the caller.
func (c *Cart) AddItem(ctx context.Context, product catalog.Product, color catalog.ColorOption, size string, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if strings.TrimSpace(size) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}

	merged := false
	for i := range c.items {
		if c.items[i].matches(product.ID, color.Name, size) {
			c.items[i].Quantity = c.clampQty(c.items[i].Quantity + quantity)
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, LineItem{
			Product:  product,
			Color:    color,
			Size:     size,
			Quantity: c.clampQty(quantity),
		})
	}

	return c.persist(ctx)
}

// RemoveItem deletes the line matching the identity key. Removing an absent
// key is a no-op, but still persists per the write-through contract.
func (c *Cart) RemoveItem(ctx context.Context, productID, colorName, size string) error {
	kept := c.items[:0]
	for _, item := range c.items {
		if !item.matches(productID, colorName, size) {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return c.persist(ctx)
}

// UpdateQuantity sets the matching line's quantity exactly; zero or below
// removes the line instead.
func (c *Cart) UpdateQuantity(ctx context.Context, productID, colorName, size string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(ctx, productID, colorName, size)
	}
	for i := range c.items {
		if c.items[i].matches(productID, colorName, size) {
			c.items[i].Quantity = c.clampQty(quantity)
			break
		}
	}
	return c.persist(ctx)
}

// Clear empties the cart and drops its blob entirely.
func (c *Cart) Clear(ctx context.Context) error {
	c.items = nil
	if err := c.manager.blobs.Delete(ctx, blobKeyPrefix+c.sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount sums quantities across all lines.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums line totals over the snapshot prices.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// SubtotalPaise is Subtotal in whole paise.
func (c *Cart) SubtotalPaise() int64 {
	return money.ToPaise(c.Subtotal())
}

func (c *Cart) clampQty(qty int) int {
	if qty > c.manager.maxQty {
		return c.manager.maxQty
	}
	return qty
}

func (c *Cart) persist(ctx context.Context) error {
	raw, err := json.Marshal(cartState{Items: c.items})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := c.manager.blobs.Set(ctx, blobKeyPrefix+c.sessionID, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}
