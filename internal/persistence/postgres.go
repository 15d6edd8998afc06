package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/caelum-portal/internal/config"
)

// Postgres holds the optional relational store. Without a DSN it stays disabled and the
// service falls back to in-memory repositories.
type Postgres struct {
	pool    *pgxpool.Pool
	cfg     config.PostgresConfig
	timeout time.Duration
}

// NewPostgres opens and probes a pool when cfg.DSN is set. A configured but unreachable
// database is an error; a missing DSN is not.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	p := &Postgres{cfg: cfg, timeout: defaultProbeTimeout}
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; using in-memory repositories")
		return p, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse POSTGRES_DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	p.pool = pool

	if err := p.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres",
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return p, nil
}

// Enabled reports whether a pool is open.
func (p *Postgres) Enabled() bool {
	return p != nil && p.pool != nil
}

// PoolHandle returns the pool for the repositories, or nil when disabled.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.pool
}

// Migrate applies the schema from cfg.MigrationsDir when a pool is open and
// POSTGRES_RUN_MIGRATIONS is on.
func (p *Postgres) Migrate(ctx context.Context, logger *zap.Logger) error {
	if !p.Enabled() || !p.cfg.RunMigrations {
		return nil
	}
	return RunMigrations(ctx, p.pool, p.cfg.MigrationsDir, logger)
}

// Ping checks connectivity within the probe timeout. It backs /health/ready.
func (p *Postgres) Ping(ctx context.Context) error {
	if !p.Enabled() {
		return fmt.Errorf("postgres: %w", ErrNotConfigured)
	}
	ctx, cancel := withProbeTimeout(ctx, p.timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p.Enabled() {
		p.pool.Close()
	}
}
