package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// FleetCacheTTL bounds how stale a cached fleet listing can get. The cache
// is invalidated on every seat mutation, so the TTL only covers writers
// outside this process.
const FleetCacheTTL = 10 * time.Second

const fleetCacheKey = "cache:fleet"

// FleetCache caches the rendered fleet listing in Redis. Availability comes
// from the in-memory registry; this only saves re-rendering the listing on
// hot read paths.
type FleetCache struct {
	client *redis.Client
}

// NewFleetCache creates a new FleetCache.
func NewFleetCache(client *redis.Client) *FleetCache {
	return &FleetCache{client: client}
}

// GetFleet retrieves the cached fleet listing. A cache miss returns nil, nil.
func (c *FleetCache) GetFleet(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, fleetCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}
	return data, nil
}

// SetFleet stores the fleet listing in cache.
func (c *FleetCache) SetFleet(ctx context.Context, fleet any) error {
	data, err := json.Marshal(fleet)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fleetCacheKey, data, FleetCacheTTL).Err()
}

// Invalidate removes the cached fleet listing.
func (c *FleetCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, fleetCacheKey).Err()
}
