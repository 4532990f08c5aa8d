package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MenuCache stores the rendered public menu per language. Entries live under
// a generation; readers take the generation before building so a menu built
// from data older than the last Invalidate is never stored as current.
type MenuCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, lang string) ([]byte, bool, error)
	Set(ctx context.Context, gen int64, lang string, data []byte) error
	Invalidate(ctx context.Context) error
}

// KeyBuilder constructs namespaced keys: {service}:{resourceType}:{identifier}
type KeyBuilder struct {
	service string
}

// NewKeyBuilder creates a new key builder for a specific service
func NewKeyBuilder(service string) *KeyBuilder {
	return &KeyBuilder{service: service}
}

// Build constructs a namespaced key
func (kb *KeyBuilder) Build(resourceType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", kb.service, resourceType, identifier)
}

// NewClient creates a Redis client and checks the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisMenuCache keeps one entry per language under a generation number.
// Invalidate bumps the generation, so stale entries are never read again and
// expire on their own TTL.
type RedisMenuCache struct {
	client *redis.Client
	keys   *KeyBuilder
	ttl    time.Duration
}

// NewRedisMenuCache creates a Redis-backed menu cache
func NewRedisMenuCache(client *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{
		client: client,
		keys:   NewKeyBuilder("menu-cms"),
		ttl:    ttl,
	}
}

// Get returns the menu cached for lang under gen
func (c *RedisMenuCache) Get(ctx context.Context, gen int64, lang string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.entryKey(gen, lang)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached menu: %w", err)
	}
	return data, true, nil
}

// Set stores the menu for lang under gen. A gen that is already stale only
// produces an entry nobody reads.
func (c *RedisMenuCache) Set(ctx context.Context, gen int64, lang string, data []byte) error {
	if err := c.client.Set(ctx, c.entryKey(gen, lang), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached menu: %w", err)
	}
	return nil
}

// Invalidate drops every cached language at once
func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.keys.Build("menu", "generation")).Err(); err != nil {
		return fmt.Errorf("invalidate menu cache: %w", err)
	}
	return nil
}

// Generation returns the current cache generation, 0 before the first Invalidate
func (c *RedisMenuCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.keys.Build("menu", "generation")).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read menu cache generation: %w", err)
	}
	return gen, nil
}

func (c *RedisMenuCache) entryKey(gen int64, lang string) string {
	return c.keys.Build("menu", fmt.Sprintf("%d:%s", gen, lang))
}

// Noop is used when Redis is not configured
type Noop struct{}

// Generation is always 0
func (Noop) Generation(context.Context) (int64, error) { return 0, nil }

// Get always misses
func (Noop) Get(context.Context, int64, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the data
func (Noop) Set(context.Context, int64, string, []byte) error { return nil }

// Invalidate does nothing
func (Noop) Invalidate(context.Context) error { return nil }
