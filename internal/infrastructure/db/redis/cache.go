package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/panaderia/backend/internal/core/ports"
)

const (
	listTTL   = 5 * time.Minute
	keyPrefix = "catalog:"
)

// ListCache stores JSON-encoded list responses.
// Key format: catalog:<collection>
type ListCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewListCache creates a ListCache wrapping the given Redis client.
func NewListCache(client redis.Cmdable) *ListCache {
	return &ListCache{client: client, ttl: listTTL}
}

// Load decodes the cached value for key into dst. A miss is (false, nil).
func (c *ListCache) Load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Save stores v under key for the cache TTL.
func (c *ListCache) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, c.key(key), raw, c.ttl).Err()
}

func (c *ListCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

func (c *ListCache) key(k string) string {
	return keyPrefix + k
}

var _ ports.ListCache = (*ListCache)(nil)
