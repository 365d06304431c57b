package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
)

const defaultSubscriptionBatch = 500

type subscriptionExpirer interface {
	ListDue(ctx context.Context, now time.Time, max int) ([]uint, error)
	MarkExpired(ctx context.Context, id uint, now time.Time) (bool, error)
}

type SubscriptionExpiryJobParams struct {
	Logger     *logger.Logger
	Repository subscriptionExpirer
	BatchMax   int
}

// NewSubscriptionExpiryJob moves subscriptions past their end date to EXPIRED.
func NewSubscriptionExpiryJob(params SubscriptionExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("subscription repository required")
	}
	batch := params.BatchMax
	if batch <= 0 {
		batch = defaultSubscriptionBatch
	}
	return &subscriptionExpiryJob{
		logg:  params.Logger,
		repo:  params.Repository,
		batch: batch,
		now:   time.Now,
	}, nil
}

type subscriptionExpiryJob struct {
	logg  *logger.Logger
	repo  subscriptionExpirer
	batch int
	now   func() time.Time
}

func (j *subscriptionExpiryJob) Name() string { return "subscription-expiry" }

// Run expires each due row independently; one failing row does not stop the batch.
func (j *subscriptionExpiryJob) Run(ctx context.Context) (Result, error) {
	now := j.now().UTC()
	ids, err := j.repo.ListDue(ctx, now, j.batch)
	if err != nil {
		return Result{}, fmt.Errorf("list due subscriptions: %w", err)
	}

	var (
		expired int64
		errs    error
	)
	for _, id := range ids {
		ok, err := j.repo.MarkExpired(ctx, id, now)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("subscription %d: %w", id, err))
			continue
		}
		if ok {
			expired++
		}
	}

	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"due":     len(ids),
		"expired": expired,
		"failed":  len(multierr.Errors(errs)),
	}), "subscription expiry complete")
	return Result{Affected: expired}, errs
}
