package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shoporbit/shop-api/internal/usecase"
)

const statusKeyPrefix = "order:status:"

// RedisStatusCache keeps the latest shipping status per order so status
// reads skip MySQL. Entries expire after ttl; a miss falls through to the
// repo, so eviction is harmless.
type RedisStatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatusCache(rdb *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{rdb: rdb, ttl: ttl}
}

func (c *RedisStatusCache) SetStatus(ctx context.Context, orderID string, status string) error {
	return c.rdb.Set(ctx, statusKeyPrefix+orderID, status, c.ttl).Err()
}

func (c *RedisStatusCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	val, err := c.rdb.Get(ctx, statusKeyPrefix+orderID).Result()
	if errors.Is(err, redis.Nil) {
		return "", usecase.ErrNotFound
	}
	return val, err
}

var _ usecase.StatusCache = (*RedisStatusCache)(nil)
