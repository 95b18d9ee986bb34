package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielcarreno/foodrush-backend/api/controllers"
	"github.com/danielcarreno/foodrush-backend/api/routes"
	"github.com/danielcarreno/foodrush-backend/internal/cart"
	"github.com/danielcarreno/foodrush-backend/internal/catalog"
	"github.com/danielcarreno/foodrush-backend/internal/orders"
	"github.com/danielcarreno/foodrush-backend/pkg/config"
	"github.com/danielcarreno/foodrush-backend/pkg/db"
	"github.com/danielcarreno/foodrush-backend/pkg/geocode"
	"github.com/danielcarreno/foodrush-backend/pkg/logger"
	"github.com/danielcarreno/foodrush-backend/pkg/metrics"
	"github.com/danielcarreno/foodrush-backend/pkg/migrate"
	"github.com/danielcarreno/foodrush-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	pingers := map[string]controllers.Pinger{"database": dbClient}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		pingers["redis"] = redisClient
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	orderMetrics := metrics.NewOrderMetrics(promRegistry)

	productRepo := catalog.NewProductRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())

	if cfg.FeatureFlags.SeedCatalog {
		seeder, err := catalog.NewSeeder(dbClient, productRepo, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog seeder", err)
			os.Exit(1)
		}
		if err := seeder.SeedProducts(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	cartStore, err := cart.NewStore(dbClient, cartRepo, orderMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	sessions, err := cart.NewManager(cartStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart session manager", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(dbClient, orderRepo, cartRepo, cfg.Checkout, orderMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	var geocodeClient *geocode.Client
	if cfg.GoogleMaps.APIKey != "" {
		opts := []geocode.Option{}
		if cfg.GoogleMaps.BaseURL != "" {
			opts = append(opts, geocode.WithBaseURL(cfg.GoogleMaps.BaseURL))
		}
		if redisClient != nil {
			cache, err := geocode.NewRedisCache(redisClient, cfg.GoogleMaps.CacheTTL)
			if err != nil {
				logg.Error(context.Background(), "failed to create geocode cache", err)
				os.Exit(1)
			}
			opts = append(opts, geocode.WithCache(cache))
		}
		geocodeClient, err = geocode.NewClient(cfg.GoogleMaps.APIKey, opts...)
		if err != nil {
			logg.Error(context.Background(), "failed to create geocode client", err)
			os.Exit(1)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			Pingers:       pingers,
			Sessions:      sessions,
			Products:      productRepo,
			Orders:        orderService,
			GeocodeClient: geocodeClient,
			Registry:      promRegistry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
