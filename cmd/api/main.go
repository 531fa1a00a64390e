package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ADEB21/weather-app/api/routes"
	"github.com/ADEB21/weather-app/internal/favorites"
	"github.com/ADEB21/weather-app/internal/history"
	"github.com/ADEB21/weather-app/pkg/config"
	"github.com/ADEB21/weather-app/pkg/db"
	"github.com/ADEB21/weather-app/pkg/instance"
	"github.com/ADEB21/weather-app/pkg/logger"
	"github.com/ADEB21/weather-app/pkg/metrics"
	"github.com/ADEB21/weather-app/pkg/migrate"
	"github.com/ADEB21/weather-app/pkg/openmeteo"
	"github.com/ADEB21/weather-app/pkg/redis"
	"github.com/joho/godotenv"
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
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	closers := []io.Closer{dbClient}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		closers = append(closers, redisClient)
	} else {
		logg.Info(ctx, "redis not configured, idempotency keys disabled")
	}

	registry := metrics.NewRegistry()
	var upstreamMetrics *metrics.UpstreamMetrics
	if cfg.Metrics.Enabled {
		upstreamMetrics = metrics.NewUpstreamMetrics(registry)
	}
	weatherClient := openmeteo.NewClient(cfg.OpenMeteo, openmeteo.WithMetrics(upstreamMetrics))

	favoritesService, err := favorites.NewService(favorites.ServiceParams{
		Repo: favorites.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(ctx, "failed to create favorites service", err)
		os.Exit(1)
	}

	historyService, err := history.NewService(history.ServiceParams{
		Repo: history.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(ctx, "failed to create history service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"addr":      addr,
		"db_driver": dbClient.Driver(),
		"instance":  instance.GetID(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			favoritesService,
			historyService,
			weatherClient,
			weatherClient,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := shutdown(shutdownCtx, server, closers...); err != nil {
		logg.Error(shutdownCtx, "shutdown completed with errors", err)
		exitCode = 1
	}
	logg.Info(context.Background(), "api server stopped")
	if exitCode != 0 {
		stop()
		cancel()
		os.Exit(exitCode)
	}
}
