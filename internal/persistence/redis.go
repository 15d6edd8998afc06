package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/caelum-portal/internal/config"
)

// Redis holds the optional cache connection. The service keeps running when Redis is
// down; Available reports what the startup probe saw.
type Redis struct {
	Client    *redis.Client
	timeout   time.Duration
	available bool
}

// NewRedis builds the client and probes it once with a bounded ping.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	r := &Redis{
		Client: redis.NewClient(&redis.Options{
			Addr:        cfg.Addr,
			Password:    cfg.Password,
			DB:          cfg.DB,
			DialTimeout: defaultProbeTimeout,
		}),
		timeout: defaultProbeTimeout,
	}

	if err := r.Ping(ctx); err != nil {
		logger.Warn("redis unavailable; dashboard stats will not be cached",
			zap.String("addr", cfg.Addr),
			zap.Error(err),
		)
		return r
	}
	r.available = true
	logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return r
}

// Available reports whether the startup probe reached Redis.
func (r *Redis) Available() bool {
	return r != nil && r.available
}

// Ping checks connectivity within the probe timeout. It backs /health/ready.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return fmt.Errorf("redis: %w", ErrNotConfigured)
	}
	ctx, cancel := withProbeTimeout(ctx, r.timeout)
	defer cancel()
	return r.Client.Ping(ctx).Err()
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}
