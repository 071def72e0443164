// internal/infrastructure/storage/storage.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no cart record exists for a session key.
var ErrNotFound = errors.New("cart record not found")

// Store is the durable local store the cart persists into: one opaque
// serialized record per device session, surviving reloads. The cart
// owns the record format (including its schema version); backends only
// move bytes.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
