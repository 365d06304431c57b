package subscriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

var writeMessages = db.ErrorMessages{
	Conflict:       "subscription already exists",
	ForeignKey:     "user not found",
	ForeignKeyCode: pkgerrors.CodeNotFound,
	Fallback:       "save subscription",
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SubscribeRequest is the body of POST /subscriptions/me.
type SubscribeRequest struct {
	Plan string `json:"plan" validate:"required,oneof=BASIC STANDARD PREMIUM basic standard premium"`
}

// Service defines the subscription lifecycle surface.
type Service interface {
	Get(ctx context.Context, userID uint) (*models.Subscription, error)
	Subscribe(ctx context.Context, userID uint, plan string) (*models.Subscription, error)
	Cancel(ctx context.Context, userID uint) (*models.Subscription, error)
}

// ServiceParams groups dependencies for the subscription service.
type ServiceParams struct {
	Repo              *Repository
	TransactionRunner txRunner
	Clock             func() time.Time
}

type service struct {
	repo     *Repository
	txRunner txRunner
	now      func() time.Time
}

// NewService builds a subscription service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subscriptions repo is required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: params.Repo, txRunner: params.TransactionRunner, now: clock}, nil
}

func (s *service) Get(ctx context.Context, userID uint) (*models.Subscription, error) {
	sub, err := s.repo.FindByUser(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	return sub, nil
}

// Subscribe starts a one-month period on plan. An existing EXPIRED or
// CANCELLED row is reused since a user holds at most one subscription.
func (s *service) Subscribe(ctx context.Context, userID uint, rawPlan string) (*models.Subscription, error) {
	plan, err := enums.ParseSubscriptionPlan(strings.ToUpper(strings.TrimSpace(rawPlan)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subscription plan")
	}
	now := s.now().UTC()

	var out *models.Subscription
	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.repo.FindByUser(ctx, tx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
		}

		if existing != nil {
			if existing.Status == enums.SubscriptionStatusActive {
				return pkgerrors.New(pkgerrors.CodeConflict, "subscription already active")
			}
			existing.Plan = plan
			existing.Price = plan.MonthlyPrice()
			existing.Status = enums.SubscriptionStatusActive
			existing.StartDate = now
			existing.EndDate = now.AddDate(0, 1, 0)
			if err := s.repo.Save(tx, existing); err != nil {
				return db.MapError(err, writeMessages)
			}
			out = existing
			return nil
		}

		created := &models.Subscription{
			UserID:    userID,
			Plan:      plan,
			Status:    enums.SubscriptionStatusActive,
			Price:     plan.MonthlyPrice(),
			StartDate: now,
			EndDate:   now.AddDate(0, 1, 0),
		}
		if err := s.repo.Create(tx, created); err != nil {
			return db.MapError(err, writeMessages)
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel stops renewal; access continues until the current end date.
func (s *service) Cancel(ctx context.Context, userID uint) (*models.Subscription, error) {
	var out *models.Subscription
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		sub, err := s.repo.FindByUser(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no active subscription")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
		}
		if sub.Status != enums.SubscriptionStatusActive {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no active subscription")
		}
		sub.Status = enums.SubscriptionStatusCancelled
		if err := s.repo.Save(tx, sub); err != nil {
			return db.MapError(err, writeMessages)
		}
		out = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
