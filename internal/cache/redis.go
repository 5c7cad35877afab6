package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"backend/internal/models"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func cartKey(ownerID string) string {
	return "cart:" + ownerID
}

func (r *RedisCache) Get(ctx context.Context, ownerID string) (models.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Cart{}, ErrCacheMiss
	}
	if err != nil {
		return models.Cart{}, err
	}

	var c models.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return models.Cart{}, err
	}
	return c, nil
}

func (r *RedisCache) Set(ctx context.Context, c models.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(c.OwnerID), data, r.ttl).Err()
}

func (r *RedisCache) Invalidate(ctx context.Context, ownerID string) error {
	return r.client.Del(ctx, cartKey(ownerID)).Err()
}

func wishlistKey(ownerID string) string {
	return "wishlist:" + ownerID
}

func (r *RedisCache) GetWishlist(ctx context.Context, ownerID string) (models.Wishlist, error) {
	data, err := r.client.Get(ctx, wishlistKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Wishlist{}, ErrCacheMiss
	}
	if err != nil {
		return models.Wishlist{}, err
	}

	var w models.Wishlist
	if err := json.Unmarshal(data, &w); err != nil {
		return models.Wishlist{}, err
	}
	return w, nil
}

func (r *RedisCache) SetWishlist(ctx context.Context, w models.Wishlist) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, wishlistKey(w.OwnerID), data, r.ttl).Err()
}

func (r *RedisCache) InvalidateWishlist(ctx context.Context, ownerID string) error {
	return r.client.Del(ctx, wishlistKey(ownerID)).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
