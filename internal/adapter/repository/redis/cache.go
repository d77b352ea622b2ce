package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/findash/internal/infrastructure/metrics"
)

// Cache implements usecase.Cache using Redis. Values are serialized
// views, so they are stored as raw bytes.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: "views:",
	}
}

// Get retrieves a value by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		metrics.ViewCacheMisses.WithLabelValues(key).Inc()
		return nil, err
	}

	metrics.ViewCacheHits.WithLabelValues(key).Inc()
	return data, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
