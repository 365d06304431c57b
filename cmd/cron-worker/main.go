package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/MichIoan/DP-API-2024-sub000/internal/auth"
	"github.com/MichIoan/DP-API-2024-sub000/internal/cron"
	"github.com/MichIoan/DP-API-2024-sub000/internal/subscriptions"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/config"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/instance"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/metrics"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/migrate"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/redis"
)

const serviceName = "cron-worker"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "cron worker stopped unexpectedly", err)
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

	var lock cron.Lock = &cron.LocalLock{}
	if cfg.Redis.Enabled() {
		var redisClient *redis.Client
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()

		var redisLock *cron.RedisLock
		redisLock, err = cron.NewRedisLock(redisClient, redisClient.LockKey(serviceName, cfg.App.Env), 0)
		if err != nil {
			return err
		}
		lock = redisLock
	} else {
		logg.Warn(ctx, "redis not configured; using process-local cron lock")
	}

	tokenCleanup, err := cron.NewRefreshTokenCleanupJob(cron.RefreshTokenCleanupJobParams{
		Logger:     logg,
		Repository: auth.NewTokenRepository(dbClient.DB()),
		Grace:      cfg.Cron.RefreshTokenGrace,
	})
	if err != nil {
		return err
	}
	subscriptionExpiry, err := cron.NewSubscriptionExpiryJob(cron.SubscriptionExpiryJobParams{
		Logger:     logg,
		Repository: subscriptions.NewRepository(dbClient.DB()),
		BatchMax:   cfg.Cron.SubscriptionBatchMax,
	})
	if err != nil {
		return err
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(tokenCleanup, subscriptionExpiry),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		return err
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.Cron.Interval.String(),
		"instance": instance.ID(),
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
	return nil
}
