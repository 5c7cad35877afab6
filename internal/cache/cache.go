package cache

import (
	"context"
	"errors"

	"backend/internal/models"
)

// ErrCacheMiss is returned when nothing is cached for the owner. Callers fall
// back to the store; a miss is never a failure.
var ErrCacheMiss = errors.New("not found in cache")

// CartCache is a best-effort read-through cache in front of the cart store.
type CartCache interface {
	Get(ctx context.Context, ownerID string) (models.Cart, error)
	Set(ctx context.Context, c models.Cart) error
	Invalidate(ctx context.Context, ownerID string) error
}

// WishlistCache mirrors CartCache for the wishlist. Both are served by the
// same redis client under different key prefixes.
type WishlistCache interface {
	GetWishlist(ctx context.Context, ownerID string) (models.Wishlist, error)
	SetWishlist(ctx context.Context, w models.Wishlist) error
	InvalidateWishlist(ctx context.Context, ownerID string) error
}
