package cart

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"backend/internal/cache"
	"backend/internal/models"
)

// Store is the slice of persistence the cart service needs.
type Store interface {
	LoadCart(ctx context.Context, ownerID string) (models.Cart, error)
	SaveCart(ctx context.Context, c models.Cart) error
}

// Service combines the pure ledger with owner-keyed persistence and a
// read-through cache. One customer owns one cart, so every mutation is a
// read-modify-write against that owner's state only and needs no locking.
type Service struct {
	store Store
	cache cache.CartCache
	sfg   singleflight.Group // collapses concurrent cache misses per owner
}

func NewService(store Store, cartCache cache.CartCache) *Service {
	return &Service{store: store, cache: cartCache}
}

// Get returns the owner's cart, serving from cache when possible. A missing
// cart is an empty cart, not an error.
func (s *Service) Get(ctx context.Context, ownerID string) (models.Cart, error) {
	v, err, _ := s.sfg.Do(ownerID, func() (interface{}, error) {
		c, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("[CART] [WARN] cache get failed for %s: %v", ownerID, err)
		}

		c, err = s.store.LoadCart(ctx, ownerID)
		if err != nil {
			return models.Cart{}, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), c); err != nil {
				log.Printf("[CART] [WARN] cache set failed for %s: %v", ownerID, err)
			}
		}()

		return c, nil
	})
	if err != nil {
		return models.Cart{}, err
	}
	return v.(models.Cart), nil
}

// AddItem merges the product into the owner's cart and persists the result.
func (s *Service) AddItem(ctx context.Context, ownerID string, p models.Product, qty int) (models.Cart, error) {
	return s.mutate(ctx, ownerID, func(c models.Cart) models.Cart {
		return AddItem(c, p, qty)
	})
}

func (s *Service) Increase(ctx context.Context, ownerID, productID string) (models.Cart, error) {
	return s.mutate(ctx, ownerID, func(c models.Cart) models.Cart {
		return Increase(c, productID)
	})
}

func (s *Service) Decrease(ctx context.Context, ownerID, productID string) (models.Cart, error) {
	return s.mutate(ctx, ownerID, func(c models.Cart) models.Cart {
		return Decrease(c, productID)
	})
}

func (s *Service) Remove(ctx context.Context, ownerID, productID string) (models.Cart, error) {
	return s.mutate(ctx, ownerID, func(c models.Cart) models.Cart {
		return Remove(c, productID)
	})
}

// Invalidate drops the owner's cached cart. Called after checkout clears the
// persisted cart behind this service's back.
func (s *Service) Invalidate(ctx context.Context, ownerID string) {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		log.Printf("[CART] [WARN] cache invalidate failed for %s: %v", ownerID, err)
	}
}

func (s *Service) mutate(ctx context.Context, ownerID string, op func(models.Cart) models.Cart) (models.Cart, error) {
	current, err := s.store.LoadCart(ctx, ownerID)
	if err != nil {
		return models.Cart{}, err
	}
	current.OwnerID = ownerID

	next := op(current)
	if err := s.store.SaveCart(ctx, next); err != nil {
		return models.Cart{}, err
	}

	s.Invalidate(ctx, ownerID)
	return next, nil
}
