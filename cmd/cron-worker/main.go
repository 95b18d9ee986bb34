package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielcarreno/foodrush-backend/internal/cart"
	"github.com/danielcarreno/foodrush-backend/internal/cron"
	"github.com/danielcarreno/foodrush-backend/internal/orders"
	"github.com/danielcarreno/foodrush-backend/pkg/config"
	"github.com/danielcarreno/foodrush-backend/pkg/db"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
	"github.com/danielcarreno/foodrush-backend/pkg/metrics"
	"github.com/danielcarreno/foodrush-backend/pkg/migrate"
	"github.com/danielcarreno/foodrush-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	var lock cron.Lock = cron.NewLocalLock()
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		lock, err = cron.NewRedisLock(redisClient, cfg.Cron.LockKey, cfg.Cron.LockTTL)
		if err != nil {
			logg.Error(context.Background(), "failed to create worker lock", err)
			os.Exit(1)
		}
	}

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)
	orderRepo := orders.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())

	registry := cron.NewRegistry()

	if cfg.FeatureFlags.OrderSimulation {
		progression, err := cron.NewOrderProgressionJob(orderRepo, logg, cfg.Cron.ProgressionAge)
		if err != nil {
			logg.Error(context.Background(), "failed to create order progression job", err)
			os.Exit(1)
		}
		registry.Register(progression)
	}

	cleanup, err := cron.NewCartCleanupJob(dbClient, cartRepo, logg, cfg.Cron.CartRetention)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart cleanup job", err)
		os.Exit(1)
	}
	registry.Register(cleanup)

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create worker service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
