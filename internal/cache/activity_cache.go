package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sportactiv/sportactiv/internal/domain"
	"github.com/sportactiv/sportactiv/pkg/logger"
	"github.com/sportactiv/sportactiv/pkg/redis"
	"go.uber.org/zap"
)

const activityKeyPrefix = "activity:"

// ActivityCache caches activity details in Redis. Lookups fall through to the
// database on any cache failure; the cache is never authoritative for the
// admission decision, which always reads fresh rows.
type ActivityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewActivityCache creates a new ActivityCache
func NewActivityCache(client *redis.Client, ttl time.Duration) *ActivityCache {
	return &ActivityCache{client: client, ttl: ttl}
}

// Get retrieves a cached activity, returning nil on a miss
func (c *ActivityCache) Get(ctx context.Context, id string) (*domain.Activity, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, activityKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	activity := &domain.Activity{}
	if err := json.Unmarshal(data, activity); err != nil {
		// Drop the corrupt entry and treat as a miss
		c.Invalidate(ctx, id)
		return nil, nil
	}
	return activity, nil
}

// Set stores an activity in the cache
func (c *ActivityCache) Set(ctx context.Context, activity *domain.Activity) {
	if c == nil || c.client == nil || activity == nil {
		return
	}
	data, err := json.Marshal(activity)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, activityKeyPrefix+activity.ID, data, c.ttl).Err(); err != nil {
		logger.WarnCtx(ctx, "failed to cache activity", zap.String("activity_id", activity.ID), zap.Error(err))
	}
}

// Invalidate removes an activity from the cache
func (c *ActivityCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, activityKeyPrefix+id).Err(); err != nil {
		logger.WarnCtx(ctx, "failed to invalidate activity cache", zap.String("activity_id", id), zap.Error(err))
	}
}
