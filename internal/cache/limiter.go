package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts   = 5
	defaultAttemptWindow = 15 * time.Minute
)

// RedisCheckoutLimiter counts checkout attempts per buyer in a rolling
// window. INCR and EXPIRE run in one pipeline so the counter cannot be
// left without a TTL.
type RedisCheckoutLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewRedisCheckoutLimiter(client *redis.Client) *RedisCheckoutLimiter {
	return &RedisCheckoutLimiter{
		client:      client,
		maxAttempts: defaultMaxAttempts,
		window:      defaultAttemptWindow,
	}
}

func (l *RedisCheckoutLimiter) Allow(ctx context.Context, buyer string) (bool, error) {
	key := attemptsKey(buyer)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("checkout limiter failed: %w", err)
	}

	return count.Val() <= l.maxAttempts, nil
}

func (l *RedisCheckoutLimiter) Reset(ctx context.Context, buyer string) error {
	if err := l.client.Del(ctx, attemptsKey(buyer)).Err(); err != nil {
		return fmt.Errorf("checkout limiter reset failed: %w", err)
	}
	return nil
}

func attemptsKey(buyer string) string {
	return fmt.Sprintf("checkout-attempts:%s", buyer)
}
