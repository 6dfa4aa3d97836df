// README: Redis-backed catalog snapshot cache for read-mostly reference data.
package rate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "rentora:rate_catalog"

// CatalogCache keeps a short-lived JSON copy of the catalog snapshot in
// Redis so quote bursts do not re-read the whole rate table. Admin writes
// invalidate it; a short TTL bounds staleness either way.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot, or nil when absent. Cache errors are
// treated as misses; the store remains the source of truth.
func (c *CatalogCache) Get(ctx context.Context) *Catalog {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var cat Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil
	}
	return &cat
}

func (c *CatalogCache) Set(ctx context.Context, cat *Catalog) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(cat)
	if err != nil {
		return
	}
	c.client.Set(ctx, catalogCacheKey, raw, c.ttl)
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, catalogCacheKey)
}
