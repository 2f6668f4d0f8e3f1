package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnbcommerce/storefront-sync/api/routes"
	"github.com/vnbcommerce/storefront-sync/internal/cart"
	"github.com/vnbcommerce/storefront-sync/internal/gateway"
	"github.com/vnbcommerce/storefront-sync/internal/nav"
	"github.com/vnbcommerce/storefront-sync/internal/replica"
	"github.com/vnbcommerce/storefront-sync/internal/session"
	"github.com/vnbcommerce/storefront-sync/pkg/config"
	"github.com/vnbcommerce/storefront-sync/pkg/logger"
	"github.com/vnbcommerce/storefront-sync/pkg/metrics"
	"github.com/vnbcommerce/storefront-sync/pkg/redis"
)

type replicaStore interface {
	cart.ReplicaStore
	replica.Pinger
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "bff"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "bff",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, cleanup, err := buildReplicaStore(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap replica store", err)
		os.Exit(1)
	}
	defer cleanup()

	gatewayClient, err := gateway.New(cfg.Gateway, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build gateway client", err)
		os.Exit(1)
	}

	engine, err := cart.NewEngine(gatewayClient, store, logg, metrics.NewCartSyncMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		logg.Error(context.Background(), "failed to build cart engine", err)
		os.Exit(1)
	}

	navManager, err := nav.NewManager(logg, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to build nav manager", err)
		os.Exit(1)
	}

	sessions, err := session.NewService(gatewayClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build session service", err)
		os.Exit(1)
	}

	// Warm the in-memory state before serving, both absorb failures.
	sessions.Restore(context.Background())
	engine.Refresh(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"replica": cfg.Replica.Driver,
	})
	logg.Info(ctx, "starting bff server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, store, engine, navManager, sessions),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "bff server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildReplicaStore(cfg *config.Config, logg *logger.Logger) (replicaStore, func(), error) {
	noop := func() {}

	switch cfg.Replica.Driver {
	case config.ReplicaDriverSQLite:
		store, err := replica.NewSQLiteStore(cfg.Replica.SQLitePath, cfg.Replica.Key)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logg.Error(context.Background(), "error closing replica store", err)
			}
		}, nil

	case config.ReplicaDriverRedis:
		client, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			return nil, noop, err
		}
		store, err := replica.NewRedisStore(client, cfg.Replica.Key)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := client.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}, nil

	default:
		return replica.NewMemoryStore(), noop, nil
	}
}
