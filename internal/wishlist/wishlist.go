// Package wishlist keeps a per-session ordered set of saved product ids with
// the same write-through persistence contract as the cart.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/noormodest/storefront-backend/pkg/blobstore"
	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
	"github.com/noormodest/storefront-backend/pkg/logger"
)

const blobKeyPrefix = "wishlist:"

// Manager hands out session-scoped wishlists backed by the blob store.
type Manager struct {
	blobs blobstore.Store
	logg  *logger.Logger
}

func NewManager(blobs blobstore.Store, logg *logger.Logger) (*Manager, error) {
	if blobs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blob store is required")
	}
	return &Manager{blobs: blobs, logg: logg}, nil
}

// Load rehydrates the session's wishlist. Missing or unreadable state yields
// an empty list.
func (m *Manager) Load(ctx context.Context, sessionID string) (*Wishlist, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	list := &Wishlist{sessionID: sessionID, manager: m}

	raw, err := m.blobs.Get(ctx, blobKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return list, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}

	var state wishlistState
	if err := json.Unmarshal(raw, &state); err != nil {
		if m.logg != nil {
			m.logg.Warn(ctx, "discarding unreadable wishlist blob")
		}
		return list, nil
	}

	list.ids = state.ProductIDs
	return list, nil
}

type wishlistState struct {
	ProductIDs []string `json:"product_ids"`
}

// Wishlist is a duplicate-free product id list in insertion order.
type Wishlist struct {
	sessionID string
	ids       []string
	manager   *Manager
}

func (w *Wishlist) SessionID() string {
	return w.sessionID
}

// Add appends the product id unless already present. Idempotent.
func (w *Wishlist) Add(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if !w.Contains(productID) {
		w.ids = append(w.ids, productID)
	}
	return w.persist(ctx)
}

// Remove drops the product id; absent ids are a no-op.
func (w *Wishlist) Remove(ctx context.Context, productID string) error {
	kept := w.ids[:0]
	for _, id := range w.ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	w.ids = kept
	return w.persist(ctx)
}

// Clear empties the wishlist and drops its blob entirely.
func (w *Wishlist) Clear(ctx context.Context) error {
	w.ids = nil
	if err := w.manager.blobs.Delete(ctx, blobKeyPrefix+w.sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
	}
	return nil
}

func (w *Wishlist) Contains(productID string) bool {
	for _, id := range w.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// IDs returns a copy of the saved ids in insertion order.
func (w *Wishlist) IDs() []string {
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

func (w *Wishlist) Len() int {
	return len(w.ids)
}

func (w *Wishlist) persist(ctx context.Context) error {
	raw, err := json.Marshal(wishlistState{ProductIDs: w.ids})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode wishlist")
	}
	if err := w.manager.blobs.Set(ctx, blobKeyPrefix+w.sessionID, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist wishlist")
	}
	return nil
}
