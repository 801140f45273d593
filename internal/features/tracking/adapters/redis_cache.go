package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"container-tracker/internal/core/cache"
	"container-tracker/internal/features/tracking/domain"
)

const detailsKeyPrefix = "tracking:"

// RedisDetailsCache implements ports.DetailsCache on top of the shared cache.
type RedisDetailsCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisDetailsCache creates a RedisDetailsCache. A ttl of 0 keeps entries until evicted.
func NewRedisDetailsCache(c cache.Cache, ttl time.Duration) *RedisDetailsCache {
	return &RedisDetailsCache{
		cache: c,
		ttl:   ttl,
	}
}

// Get retrieves a cached record. A miss returns nil, nil.
func (r *RedisDetailsCache) Get(ctx context.Context, containerID string) (*domain.ContainerDetails, error) {
	data, err := r.cache.Get(ctx, detailsKeyPrefix+containerID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tracking details from cache: %w", err)
	}

	var details domain.ContainerDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tracking details: %w", err)
	}
	if details.Events == nil {
		details.Events = []domain.TrackingEvent{}
	}

	return &details, nil
}

// Save stores a record under its container ID.
func (r *RedisDetailsCache) Save(ctx context.Context, details domain.ContainerDetails) error {
	data, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal tracking details: %w", err)
	}

	if err := r.cache.Set(ctx, detailsKeyPrefix+details.ContainerID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save tracking details to cache: %w", err)
	}

	return nil
}
