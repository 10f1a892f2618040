package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chairtime/booking-flow/internal/schedapi"
)

const snapshotKey = "directory:providers"

// SnapshotCache stores the provider snapshot in Redis with a TTL so
// repeated screen entries within the window skip the network.
type SnapshotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSnapshotCache creates a snapshot cache. A zero TTL stores forever.
func NewSnapshotCache(redisClient *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{redis: redisClient, ttl: ttl}
}

// Get retrieves the cached snapshot. The second return is false on a miss.
func (c *SnapshotCache) Get(ctx context.Context) ([]schedapi.Provider, bool, error) {
	data, err := c.redis.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("directory: get snapshot: %w", err)
	}

	var providers []schedapi.Provider
	if err := json.Unmarshal(data, &providers); err != nil {
		return nil, false, fmt.Errorf("directory: unmarshal snapshot: %w", err)
	}
	return providers, true, nil
}

// Set stores the snapshot wholesale.
func (c *SnapshotCache) Set(ctx context.Context, providers []schedapi.Provider) error {
	data, err := json.Marshal(providers)
	if err != nil {
		return fmt.Errorf("directory: marshal snapshot: %w", err)
	}
	if err := c.redis.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("directory: set snapshot: %w", err)
	}
	return nil
}
