package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/MichIoan/DP-API-2024-sub000/api/routes"
	"github.com/MichIoan/DP-API-2024-sub000/internal/auth"
	"github.com/MichIoan/DP-API-2024-sub000/internal/media"
	"github.com/MichIoan/DP-API-2024-sub000/internal/profiles"
	"github.com/MichIoan/DP-API-2024-sub000/internal/subscriptions"
	"github.com/MichIoan/DP-API-2024-sub000/internal/users"
	"github.com/MichIoan/DP-API-2024-sub000/internal/watch"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/config"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/instance"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/metrics"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/migrate"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
	} else {
		logg.Warn(ctx, "redis not configured; auth rate limiting disabled")
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	watchMetrics := metrics.NewWatchMetrics(prometheus.DefaultRegisterer)

	tokenRepo := auth.NewTokenRepository(dbClient.DB())
	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		TokenRepo:      tokenRepo,
		DB:             dbClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return err
	}
	usersService, err := users.NewService(users.ServiceParams{
		Repo:    userRepo,
		DB:      dbClient,
		Revoker: tokenRepo,
	})
	if err != nil {
		return err
	}
	profilesService, err := profiles.NewService(profiles.ServiceParams{
		Repo: profiles.NewRepository(dbClient.DB()),
		DB:   dbClient,
	})
	if err != nil {
		return err
	}
	watchService, err := watch.NewService(watch.ServiceParams{
		Repo:    watch.NewRepository(dbClient.DB()),
		DB:      dbClient,
		Metrics: watchMetrics,
	})
	if err != nil {
		return err
	}
	mediaService, err := media.NewService(media.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}
	subscriptionsService, err := subscriptions.NewService(subscriptions.ServiceParams{
		Repo:              subscriptions.NewRepository(dbClient.DB()),
		TransactionRunner: dbClient,
	})
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient,
			prometheus.DefaultGatherer, httpMetrics,
			authService, usersService, profilesService, watchService, mediaService, subscriptionsService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"driver":   cfg.DB.Driver,
		"instance": instance.ID(),
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
