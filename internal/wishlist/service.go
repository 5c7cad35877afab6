package wishlist

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"backend/internal/cache"
	"backend/internal/models"
)

// Store is the slice of persistence the wishlist service needs.
type Store interface {
	LoadWishlist(ctx context.Context, ownerID string) (models.Wishlist, error)
	SaveWishlist(ctx context.Context, w models.Wishlist) error
}

// Service is the owner-keyed wishlist behind the same read-through cache
// shape as the cart service: cache first, store on miss, async cache fill.
type Service struct {
	store Store
	cache cache.WishlistCache
	sfg   singleflight.Group // collapses concurrent cache misses per owner
}

func NewService(store Store, wishCache cache.WishlistCache) *Service {
	return &Service{store: store, cache: wishCache}
}

// Get returns the owner's wishlist, serving from cache when possible. A
// wishlist that was never saved is an empty wishlist, not an error.
func (s *Service) Get(ctx context.Context, ownerID string) (models.Wishlist, error) {
	v, err, _ := s.sfg.Do(ownerID, func() (interface{}, error) {
		w, err := s.cache.GetWishlist(ctx, ownerID)
		if err == nil {
			return w, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("[WISHLIST] [WARN] cache get failed for %s: %v", ownerID, err)
		}

		w, err = s.store.LoadWishlist(ctx, ownerID)
		if err != nil {
			return models.Wishlist{}, err
		}

		go func() {
			if err := s.cache.SetWishlist(context.Background(), w); err != nil {
				log.Printf("[WISHLIST] [WARN] cache set failed for %s: %v", ownerID, err)
			}
		}()

		return w, nil
	})
	if err != nil {
		return models.Wishlist{}, err
	}
	return v.(models.Wishlist), nil
}

// Toggle flips the product in the owner's list and persists the result. The
// bool reports whether the product is favorited afterwards.
func (s *Service) Toggle(ctx context.Context, ownerID string, p models.Product) (models.Wishlist, bool, error) {
	current, err := s.store.LoadWishlist(ctx, ownerID)
	if err != nil {
		return models.Wishlist{}, false, err
	}
	current.OwnerID = ownerID

	next, favorited := Toggle(current, p)
	if err := s.store.SaveWishlist(ctx, next); err != nil {
		return models.Wishlist{}, false, err
	}

	s.invalidate(ctx, ownerID)
	return next, favorited, nil
}

// Remove drops the product from the owner's list and persists the result.
func (s *Service) Remove(ctx context.Context, ownerID, productID string) (models.Wishlist, error) {
	current, err := s.store.LoadWishlist(ctx, ownerID)
	if err != nil {
		return models.Wishlist{}, err
	}
	current.OwnerID = ownerID

	next := Remove(current, productID)
	if err := s.store.SaveWishlist(ctx, next); err != nil {
		return models.Wishlist{}, err
	}

	s.invalidate(ctx, ownerID)
	return next, nil
}

func (s *Service) invalidate(ctx context.Context, ownerID string) {
	if err := s.cache.InvalidateWishlist(ctx, ownerID); err != nil {
		log.Printf("[WISHLIST] [WARN] cache invalidate failed for %s: %v", ownerID, err)
	}
}
