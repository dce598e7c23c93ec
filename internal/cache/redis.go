package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

func NewRedisCartViewCache(client *redis.Client) *RedisCartViewCache {
	return &RedisCartViewCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCartViewCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCartViewCache) Get(ctx context.Context, owner string) (*domain.CartView, error) {
	key := viewKey(owner)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var view domain.CartView
	if err2 := json.Unmarshal(data, &view); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart view failed: %w", err2)
	}

	return &view, nil
}

func (r *RedisCartViewCache) Set(ctx context.Context, owner string, view *domain.CartView) error {
	key := viewKey(owner)
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshal cart view failed: %w", err)
	}

	// Jitter keeps a burst of carts from expiring in the same instant.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCartViewCache) Delete(ctx context.Context, owner string) error {
	if err := r.client.Del(ctx, viewKey(owner)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func viewKey(owner string) string {
	return fmt.Sprintf("cart-view:%s", owner)
}
