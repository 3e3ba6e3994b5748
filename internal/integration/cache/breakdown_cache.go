// Package cache implements redis-backed caching for computed forecasts.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budget-engine/backend/internal/application/adapter"
	"github.com/budget-engine/backend/internal/domain/entity"
)

const breakdownKeyPrefix = "forecast:breakdowns"

// breakdownCache implements the adapter.BreakdownCache interface on redis.
// Entries are JSON documents keyed per user and reference date with a short
// TTL; a computation pass is cheap enough that expiry is the main
// invalidation path.
type breakdownCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBreakdownCache creates a new breakdown cache instance.
func NewBreakdownCache(client *redis.Client, ttl time.Duration) adapter.BreakdownCache {
	return &breakdownCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a cached breakdown list. A missing key is not an error.
func (c *breakdownCache) Get(ctx context.Context, userID uuid.UUID, referenceDate time.Time) ([]entity.PaycheckBreakdown, error) {
	raw, err := c.client.Get(ctx, breakdownKey(userID, referenceDate)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var breakdowns []entity.PaycheckBreakdown
	if err := json.Unmarshal(raw, &breakdowns); err != nil {
		return nil, err
	}
	return breakdowns, nil
}

// Set stores a breakdown list with the cache's TTL.
func (c *breakdownCache) Set(ctx context.Context, userID uuid.UUID, referenceDate time.Time, breakdowns []entity.PaycheckBreakdown) error {
	raw, err := json.Marshal(breakdowns)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, breakdownKey(userID, referenceDate), raw, c.ttl).Err()
}

// Invalidate drops every cached list for a user.
func (c *breakdownCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("%s:%s:*", breakdownKeyPrefix, userID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// breakdownKey builds the cache key for one user and reference date. Only
// the calendar date participates; intra-day recomputations share an entry.
func breakdownKey(userID uuid.UUID, referenceDate time.Time) string {
	return fmt.Sprintf("%s:%s:%s", breakdownKeyPrefix, userID, referenceDate.Format("2006-01-02"))
}
