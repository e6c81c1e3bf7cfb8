package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/shivamcrackers/posbill-backend/api/controllers"
	"github.com/shivamcrackers/posbill-backend/api/routes"
	"github.com/shivamcrackers/posbill-backend/internal/cart"
	"github.com/shivamcrackers/posbill-backend/internal/catalog"
	"github.com/shivamcrackers/posbill-backend/internal/invoices"
	"github.com/shivamcrackers/posbill-backend/pkg/config"
	"github.com/shivamcrackers/posbill-backend/pkg/db"
	"github.com/shivamcrackers/posbill-backend/pkg/env"
	"github.com/shivamcrackers/posbill-backend/pkg/logger"
	"github.com/shivamcrackers/posbill-backend/pkg/metrics"
	"github.com/shivamcrackers/posbill-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "posbill-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "posbill-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	if env.GetBool("POSBILL_METRICS_RUNTIME", true) {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	billing := metrics.NewBillingMetrics(registry)

	var (
		snapshotStore catalog.SnapshotStore
		readiness     []controllers.NamedPinger
		closers       []func() error
	)

	switch cfg.Catalog.NormalizedBackend() {
	case config.CatalogBackendRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient.Close)
		readiness = append(readiness, controllers.NamedPinger{Name: "redis", Pinger: redisClient})

		snapshotStore, err = catalog.NewRedisSnapshotStore(redisClient)
		if err != nil {
			logg.Error(context.Background(), "failed to build catalog store", err)
			os.Exit(1)
		}
	case config.CatalogBackendSQLite, config.CatalogBackendPostgres:
		cfg.DB.Driver = cfg.Catalog.NormalizedBackend()
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		closers = append(closers, dbClient.Close)
		readiness = append(readiness, controllers.NamedPinger{Name: "database", Pinger: dbClient})

		snapshotStore, err = catalog.NewGormSnapshotStore(dbClient.DB())
		if err != nil {
			logg.Error(context.Background(), "failed to build catalog store", err)
			os.Exit(1)
		}
	}

	catalogService, err := catalog.NewService(context.Background(), snapshotStore, cfg.Catalog.Key, billing, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewMemoryRepository(), catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	invoiceService, err := invoices.NewService(cartService, catalogService, billing)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Catalog.NormalizedBackend(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, registry, catalogService, cartService, invoiceService, readiness...),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			closeAll(ctx, logg, closers)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	closeAll(ctx, logg, closers)
}

func closeAll(ctx context.Context, logg *logger.Logger, closers []func() error) {
	var combined error
	for _, closeFn := range closers {
		combined = multierr.Append(combined, closeFn())
	}
	if combined != nil {
		logg.Error(ctx, "error closing dependencies", combined)
	}
}
