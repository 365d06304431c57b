package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
)

const defaultRefreshTokenGrace = 24 * time.Hour

type refreshTokenPurger interface {
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type RefreshTokenCleanupJobParams struct {
	Logger     *logger.Logger
	Repository refreshTokenPurger
	Grace      time.Duration
}

// NewRefreshTokenCleanupJob deletes refresh tokens that expired or were
// revoked more than Grace ago.
func NewRefreshTokenCleanupJob(params RefreshTokenCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("refresh token repository required")
	}
	grace := params.Grace
	if grace <= 0 {
		grace = defaultRefreshTokenGrace
	}
	return &refreshTokenCleanupJob{
		logg:  params.Logger,
		repo:  params.Repository,
		grace: grace,
		now:   time.Now,
	}, nil
}

type refreshTokenCleanupJob struct {
	logg  *logger.Logger
	repo  refreshTokenPurger
	grace time.Duration
	now   func() time.Time
}

func (j *refreshTokenCleanupJob) Name() string { return "refresh-token-cleanup" }

func (j *refreshTokenCleanupJob) Run(ctx context.Context) (Result, error) {
	cutoff := j.now().UTC().Add(-j.grace)
	deleted, err := j.repo.PurgeExpired(ctx, cutoff)
	if err != nil {
		return Result{}, fmt.Errorf("purge refresh tokens: %w", err)
	}
	j.logg.Info(j.logg.WithField(ctx, "deleted", deleted), "refresh tokens purged")
	return Result{Affected: deleted}, nil
}
