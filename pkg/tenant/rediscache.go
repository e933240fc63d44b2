package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache stores tenant lookups in Redis so that all API instances share
// one tenant cache and a tenant update invalidates everywhere at once.
type redisCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCache creates a Redis-backed tenant cache. Entries are stored as
// JSON under "<prefix><identifier>". The client's lifecycle belongs to the
// caller; Close here does not close the client.
func NewRedisCache(client *redis.Client, keyPrefix string) Cache {
	if keyPrefix == "" {
		keyPrefix = "tenant:"
	}
	return &redisCache{client: client, keyPrefix: keyPrefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		// Misses and transient Redis failures both fall through to the
		// provider; the cache is an optimization, never a source of truth.
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		_ = c.client.Del(ctx, c.keyPrefix+key).Err()
		return nil, false
	}
	return &t, true
}

func (c *redisCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.keyPrefix+key, raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	_ = c.client.Del(ctx, c.keyPrefix+key).Err()
}

func (c *redisCache) Close() error {
	return nil
}
