// Package blobstore persists opaque per-session state blobs. Each shopper's
// cart, wishlist, and order history live under dedicated keys as
// self-contained JSON payloads; the store never interprets their contents.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound signals that no blob exists under the requested key.
var ErrNotFound = errors.New("blob not found")

// Store is the durable key-value slot backing session state.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger exposes the health-check surface shared by both backends.
type Pinger interface {
	Ping(ctx context.Context) error
}
