package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/facturio/backend/internal/facturas"
	"github.com/facturio/backend/internal/tenants"
	"github.com/facturio/backend/pkg/config"
	"github.com/facturio/backend/pkg/httpserver"
	"github.com/facturio/backend/pkg/logger"
	"github.com/facturio/backend/pkg/redis"
	"github.com/facturio/backend/pkg/tenant"
	"github.com/facturio/backend/pkg/tenantdb"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	TenantSuffix string `env:"TENANT_DOMAIN_SUFFIX" envDefault:".facturio.app"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	var (
		appCfg   appConfig
		dbCfg    tenantdb.Config
		httpCfg  httpserver.Config
		redisCfg redis.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&dbCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&redisCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, "facturio-api"),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if dbCfg.DisableRLS {
		log.Warn("row-level security is DISABLED; all tenant isolation is off")
	}

	if err := tenantdb.Migrate(ctx, dbCfg, log); err != nil {
		return err
	}

	db := tenantdb.NewManager(dbCfg,
		tenantdb.WithLogger(log),
		tenantdb.WithIdleEviction(30*time.Minute),
	)

	sharedPool, err := tenantdb.ConnectShared(ctx, dbCfg)
	if err != nil {
		db.Close()
		return err
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		sharedPool.Close()
		db.Close()
		return err
	}

	resolver := tenant.NewCompositeResolver(
		tenant.NewHeaderResolver(""),
		tenant.NewSubdomainResolver(appCfg.TenantSuffix),
	)
	tenantMW := tenant.Middleware(resolver, tenants.NewStore(sharedPool),
		tenant.WithCache(tenant.NewRedisCache(redisClient, "")),
		tenant.WithSkipPaths("/healthz"),
	)

	handler := facturas.NewHandler(facturas.NewRepository(db), log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(tenantMW)
	r.Get("/healthz", httpserver.HealthCheckHandler(log, map[string]func(context.Context) error{
		"postgres": tenantdb.Healthcheck(dbCfg),
		"redis":    redis.Healthcheck(redisClient),
	}))
	r.Mount("/api", handler.Routes())

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(log *slog.Logger) {
			db.Close()
			sharedPool.Close()
			if err := redisClient.Close(); err != nil {
				log.Error("failed to close redis client", "error", err)
			}
			log.Info("tenant pools closed")
		}),
	)

	return srv.Run(ctx, r)
}
