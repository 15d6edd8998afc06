package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/caelum-portal/internal/domain"
)

const statsCacheKey = "caelum:admin:stats"

// StatsCache stores dashboard counts between requests.
type StatsCache interface {
	Get(ctx context.Context) (*domain.DashboardStats, bool, error)
	Set(ctx context.Context, stats domain.DashboardStats, ttl time.Duration) error
}

type redisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache returns a Redis-backed StatsCache.
func NewRedisStatsCache(client *redis.Client) StatsCache {
	return &redisStatsCache{client: client}
}

func (c *redisStatsCache) Get(ctx context.Context) (*domain.DashboardStats, bool, error) {
	raw, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, err
	}
	return &stats, true, nil
}

func (c *redisStatsCache) Set(ctx context.Context, stats domain.DashboardStats, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsCacheKey, raw, ttl).Err()
}
