package wishlist

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/cache"
	"backend/internal/models"
)

type mockStore struct {
	mu        sync.Mutex
	wishlists map[string]models.Wishlist
	err       error
	loads     int
}

func newMockStore() *mockStore {
	return &mockStore{wishlists: map[string]models.Wishlist{}}
}

func (m *mockStore) LoadWishlist(_ context.Context, ownerID string) (models.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return models.Wishlist{}, m.err
	}
	if w, ok := m.wishlists[ownerID]; ok {
		return w, nil
	}
	return models.Wishlist{OwnerID: ownerID}, nil
}

func (m *mockStore) SaveWishlist(_ context.Context, w models.Wishlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.wishlists[w.OwnerID] = w
	return nil
}

type mockCache struct {
	mu          sync.Mutex
	wishlists   map[string]models.Wishlist
	invalidated int
}

func newMockCache() *mockCache {
	return &mockCache{wishlists: map[string]models.Wishlist{}}
}

func (m *mockCache) GetWishlist(_ context.Context, ownerID string) (models.Wishlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wishlists[ownerID]; ok {
		return w, nil
	}
	return models.Wishlist{}, cache.ErrCacheMiss
}

func (m *mockCache) SetWishlist(_ context.Context, w models.Wishlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wishlists[w.OwnerID] = w
	return nil
}

func (m *mockCache) InvalidateWishlist(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.wishlists, ownerID)
	m.invalidated++
	return nil
}

func TestServiceGetServesFromCache(t *testing.T) {
	store := newMockStore()
	wishCache := newMockCache()
	wishCache.wishlists["u1"] = models.Wishlist{OwnerID: "u1", Items: []models.Product{{ID: "p1"}}}

	svc := NewService(store, wishCache)

	w, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, w.Items, 1)
	assert.Equal(t, 0, store.loads, "cache hit must not touch the store")
}

func TestServiceGetMissingWishlistIsEmpty(t *testing.T) {
	svc := NewService(newMockStore(), newMockCache())

	w, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", w.OwnerID)
	assert.True(t, w.IsEmpty())
}

func TestServiceTogglePersistsAndInvalidates(t *testing.T) {
	store := newMockStore()
	wishCache := newMockCache()
	wishCache.wishlists["u1"] = models.Wishlist{OwnerID: "u1"} // stale entry

	svc := NewService(store, wishCache)

	p := models.Product{ID: "p1", Title: "Keyboard", Price: decimal.NewFromInt(500)}
	w, favorited, err := svc.Toggle(context.Background(), "u1", p)
	require.NoError(t, err)
	assert.True(t, favorited)
	require.Len(t, w.Items, 1)

	saved := store.wishlists["u1"]
	assert.Equal(t, "p1", saved.Items[0].ID)
	assert.GreaterOrEqual(t, wishCache.invalidated, 1, "stale cache entry must be dropped")
}

func TestServiceToggleTwiceRoundTrips(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, newMockCache())
	ctx := context.Background()

	p := models.Product{ID: "p1"}
	_, favorited, err := svc.Toggle(ctx, "u1", p)
	require.NoError(t, err)
	assert.True(t, favorited)

	w, favorited, err := svc.Toggle(ctx, "u1", p)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.True(t, w.IsEmpty())
}

func TestServiceRemovePersists(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, newMockCache())
	ctx := context.Background()

	_, _, err := svc.Toggle(ctx, "u1", models.Product{ID: "p1"})
	require.NoError(t, err)

	w, err := svc.Remove(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, w.IsEmpty())
	assert.True(t, store.wishlists["u1"].IsEmpty())
}

func TestServiceGetPropagatesStoreError(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("db down")

	svc := NewService(store, newMockCache())

	_, err := svc.Get(context.Background(), "u1")
	assert.Error(t, err)
}
