package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/caelum-portal/internal/auth"
	"github.com/spec-kit/caelum-portal/internal/config"
	"github.com/spec-kit/caelum-portal/internal/observability"
	"github.com/spec-kit/caelum-portal/internal/persistence"
	"github.com/spec-kit/caelum-portal/internal/repository"
	"github.com/spec-kit/caelum-portal/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Postgres.DSN == "" {
		logger.Fatal("POSTGRES_DSN is required to seed the admin user")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.Migrate(ctx, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	admin, err := service.SeedAdmin(ctx, repository.NewAdminRepository(pg.PoolHandle()), auth.NewPasswordHasher(cfg.Auth.BcryptCost), cfg.Seed)
	if err != nil {
		logger.Fatal("failed to seed admin", zap.Error(err))
	}
	logger.Info("admin user ready",
		zap.String("admin_id", admin.ID),
		zap.String("email", admin.Email),
		zap.String("role", admin.Role),
	)
}
