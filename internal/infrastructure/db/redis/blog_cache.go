package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

const (
	defaultCacheTTL = 30 * time.Second
	versionKey      = "blogs:version"
)

// BlogCache stores serialized blog listings in Redis.
// Key format: blogs:v<version>:<key>. Invalidate bumps the version so stale
// entries are never read again and simply expire.
type BlogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBlogCache creates a BlogCache wrapping the given Redis client.
func NewBlogCache(client *redis.Client, ttl time.Duration) *BlogCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &BlogCache{client: client, ttl: ttl}
}

// Get returns the cached value for key together with the generation it was
// looked up under.
func (c *BlogCache) Get(ctx context.Context, key string) (ports.CacheEntry, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return ports.CacheEntry{}, err
	}
	v, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.CacheEntry{Generation: gen}, nil
	}
	if err != nil {
		return ports.CacheEntry{}, fmt.Errorf("cache get: %w", err)
	}
	return ports.CacheEntry{Value: v, Hit: true, Generation: gen}, nil
}

// Set stores value under key in generation gen for the configured TTL.
func (c *BlogCache) Set(ctx context.Context, key string, gen int64, value []byte) error {
	if err := c.client.Set(ctx, entryKey(gen, key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate makes every previously cached listing unreachable.
func (c *BlogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *BlogCache) generation(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("cache version: %w", err)
	}
	return v, nil
}

func entryKey(gen int64, key string) string {
	return fmt.Sprintf("blogs:v%d:%s", gen, key)
}
