package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leadstack/internal/models"
)

// leadSnapshotKey holds the JSON-encoded full lead snapshot. The dataset is
// small, so the whole set is cached as one value and invalidated on append
// rather than merged.
const leadSnapshotKey = "leads:all"

// LeadCache caches the full lead snapshot in Redis in front of a LeadStore.
type LeadCache struct {
	redis *RedisCache
	ttl   time.Duration
}

// NewLeadCache creates a lead snapshot cache with the given TTL.
func NewLeadCache(redis *RedisCache, ttl time.Duration) *LeadCache {
	return &LeadCache{redis: redis, ttl: ttl}
}

// Get returns the cached snapshot and whether it was present. A cache miss
// is not an error.
func (c *LeadCache) Get(ctx context.Context) ([]models.Lead, bool, error) {
	data, err := c.redis.Get(ctx, leadSnapshotKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get lead snapshot from cache: %w", err)
	}

	var leads []models.Lead
	if err := json.Unmarshal([]byte(data), &leads); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached lead snapshot: %w", err)
	}

	return leads, true, nil
}

// Set stores the snapshot with the configured TTL.
func (c *LeadCache) Set(ctx context.Context, leads []models.Lead) error {
	data, err := json.Marshal(leads)
	if err != nil {
		return fmt.Errorf("failed to encode lead snapshot: %w", err)
	}
	return c.redis.Set(ctx, leadSnapshotKey, data, c.ttl)
}

// Invalidate drops the snapshot. Called after every append.
func (c *LeadCache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, leadSnapshotKey)
}
