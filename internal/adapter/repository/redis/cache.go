package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/fundledger/internal/infrastructure/metrics"
	"github.com/iho/fundledger/internal/usecase"
)

// Cache implements usecase.Cache using Redis.
type Cache struct {
	client  *redis.Client
	prefix  string
	metrics *metrics.Metrics
}

// NewCache creates a new Cache. m may be nil.
func NewCache(client *redis.Client, m *metrics.Metrics) *Cache {
	return &Cache{
		client:  client,
		prefix:  "fundledger:cache:",
		metrics: m,
	}
}

// Get retrieves a value by key. Absent keys return usecase.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.record("miss")
		return nil, usecase.ErrCacheMiss
	case err != nil:
		c.record("error")
		return nil, err
	}

	c.record("hit")
	return val, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

func (c *Cache) record(result string) {
	if c.metrics != nil {
		c.metrics.CacheRequests.WithLabelValues(result).Inc()
	}
}
