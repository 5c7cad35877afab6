package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/cache"
	"backend/internal/models"
)

type mockStore struct {
	mu    sync.Mutex
	carts map[string]models.Cart
	err   error
	loads int
}

func newMockStore() *mockStore {
	return &mockStore{carts: map[string]models.Cart{}}
}

func (m *mockStore) LoadCart(_ context.Context, ownerID string) (models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return models.Cart{}, m.err
	}
	if c, ok := m.carts[ownerID]; ok {
		return c, nil
	}
	return models.Cart{OwnerID: ownerID}, nil
}

func (m *mockStore) SaveCart(_ context.Context, c models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.carts[c.OwnerID] = c
	return nil
}

type mockCache struct {
	mu          sync.Mutex
	carts       map[string]models.Cart
	invalidated int
}

func newMockCache() *mockCache {
	return &mockCache{carts: map[string]models.Cart{}}
}

func (m *mockCache) Get(_ context.Context, ownerID string) (models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[ownerID]; ok {
		return c, nil
	}
	return models.Cart{}, cache.ErrCacheMiss
}

func (m *mockCache) Set(_ context.Context, c models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[c.OwnerID] = c
	return nil
}

func (m *mockCache) Invalidate(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, ownerID)
	m.invalidated++
	return nil
}

func TestServiceGetServesFromCache(t *testing.T) {
	store := newMockStore()
	cartCache := newMockCache()
	cartCache.carts["u1"] = models.Cart{OwnerID: "u1", Lines: []models.CartLine{{ProductID: "p1", Quantity: 2}}}

	svc := NewService(store, cartCache)

	c, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 0, store.loads, "cache hit must not touch the store")
}

func TestServiceGetFallsBackToStoreOnMiss(t *testing.T) {
	store := newMockStore()
	store.carts["u1"] = models.Cart{OwnerID: "u1", Lines: []models.CartLine{{ProductID: "p1", Quantity: 1}}}

	svc := NewService(store, newMockCache())

	c, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 1, store.loads)
}

func TestServiceGetMissingCartIsEmpty(t *testing.T) {
	svc := NewService(newMockStore(), newMockCache())

	c, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", c.OwnerID)
	assert.True(t, c.IsEmpty())
}

func TestServiceAddItemPersistsAndInvalidates(t *testing.T) {
	store := newMockStore()
	cartCache := newMockCache()
	cartCache.carts["u1"] = models.Cart{OwnerID: "u1"} // stale entry

	svc := NewService(store, cartCache)

	p := models.Product{ID: "p1", Title: "Keyboard", Price: decimal.NewFromInt(500)}
	c, err := svc.AddItem(context.Background(), "u1", p, 1)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)

	saved := store.carts["u1"]
	assert.Equal(t, 1, saved.Lines[0].Quantity)
	assert.GreaterOrEqual(t, cartCache.invalidated, 1, "stale cache entry must be dropped")
}

func TestServiceMutationsRoundTrip(t *testing.T) {
	store := newMockStore()
	svc := NewService(store, newMockCache())
	ctx := context.Background()

	p := models.Product{ID: "p1", Price: decimal.NewFromInt(100)}
	_, err := svc.AddItem(ctx, "u1", p, 1)
	require.NoError(t, err)

	c, err := svc.Increase(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Lines[0].Quantity)

	c, err = svc.Decrease(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	c, err = svc.Remove(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestServiceGetPropagatesStoreError(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("db down")

	svc := NewService(store, newMockCache())

	_, err := svc.Get(context.Background(), "u1")
	assert.Error(t, err)
}

func TestServiceGetPopulatesCacheAfterMiss(t *testing.T) {
	store := newMockStore()
	store.carts["u1"] = models.Cart{OwnerID: "u1", Lines: []models.CartLine{{ProductID: "p1", Quantity: 1}}}

	cartCache := newMockCache()
	svc := NewService(store, cartCache)

	_, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)

	// The cache fill is asynchronous.
	assert.Eventually(t, func() bool {
		_, cacheErr := cartCache.Get(context.Background(), "u1")
		return cacheErr == nil
	}, time.Second, 10*time.Millisecond)
}
