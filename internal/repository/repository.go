package repository

import (
	"context"
	"errors"

	"github.com/vivass/storefront/internal/domain"
)

// ErrSnapshotCorrupted is returned when a persisted cart snapshot cannot be
// decoded. Callers treat the cart as empty; the bad snapshot is overwritten
// by the next successful mutation.
var ErrSnapshotCorrupted = errors.New("cart snapshot corrupted")

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart to the store, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart from the store by the session ID.
	Delete(ctx context.Context, sessionID string) error
}
