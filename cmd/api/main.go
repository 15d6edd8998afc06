package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/caelum-portal/internal/api/http"
	"github.com/spec-kit/caelum-portal/internal/api/http/handlers"
	"github.com/spec-kit/caelum-portal/internal/auth"
	"github.com/spec-kit/caelum-portal/internal/config"
	"github.com/spec-kit/caelum-portal/internal/events"
	"github.com/spec-kit/caelum-portal/internal/observability"
	"github.com/spec-kit/caelum-portal/internal/persistence"
	"github.com/spec-kit/caelum-portal/internal/repository"
	"github.com/spec-kit/caelum-portal/internal/service"
	"github.com/spec-kit/caelum-portal/internal/worker"
)

type stores struct {
	users    repository.UserRepository
	admins   repository.AdminRepository
	stats    repository.StatsRepository
	inMemory bool
}

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

	if cfg.Auth.UsingDefaultSecrets {
		const msg = "using built-in JWT secrets; set AUTH_JWT_SECRET and AUTH_ADMIN_JWT_SECRET"
		if cfg.App.IsProduction() {
			logger.Error(msg)
		} else {
			logger.Warn(msg)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.Migrate(ctx, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	st := buildStores(pg, logger)

	var statsCache repository.StatsCache
	if rdb.Available() {
		statsCache = repository.NewRedisStatsCache(rdb.Client)
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	codec := auth.NewCodec(auth.SecretsFromConfig(cfg.Auth))
	carrier := auth.NewCarrier(cfg.App.IsProduction())
	authMiddleware := auth.NewAuthMiddleware(auth.NewResolver(codec))

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if st.inMemory {
		if _, err := service.SeedAdmin(ctx, st.admins, hasher, cfg.Seed); err != nil {
			logger.Fatal("failed to seed in-memory admin", zap.Error(err))
		}
	}

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   st.users,
		AdminRepo:  st.admins,
		Codec:      codec,
		Hasher:     hasher,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	statsService := service.NewStatsService(st.stats, statsCache, cfg.App.StatsCacheTTL(), logger)

	metrics := observability.NewMetrics()

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readinessProbes(pg, rdb), metrics),
		Users:          handlers.NewUsersHandler(authService, carrier),
		Admin:          handlers.NewAdminHandler(authService, statsService, carrier),
		Pages:          handlers.NewPagesHandler(handlers.NewShellRenderer(cfg.App.Name)),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(cfg.App.RequestTimeout()); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// readinessProbes lists the stores /health/ready checks. Redis is always probed; Postgres
// only when configured, since in-memory mode is a supported deployment.
func readinessProbes(pg *persistence.Postgres, rdb *persistence.Redis) map[string]handlers.Pinger {
	probes := map[string]handlers.Pinger{"redis": rdb}
	if pg.Enabled() {
		probes["postgres"] = pg
	}
	return probes
}

// buildStores picks Postgres repositories when a pool is available and in-memory ones otherwise.
func buildStores(pg *persistence.Postgres, logger *zap.Logger) stores {
	if !pg.Enabled() {
		logger.Warn("no database configured; accounts are kept in memory and content counts are zero; the seed admin is created in memory")
		return stores{
			users:    repository.NewMemoryUserRepository(),
			admins:   repository.NewMemoryAdminRepository(),
			stats:    repository.NewMemoryStatsRepository(nil),
			inMemory: true,
		}
	}
	pool := pg.PoolHandle()
	return stores{
		users:  repository.NewUserRepository(pool),
		admins: repository.NewAdminRepository(pool),
		stats:  repository.NewStatsRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
