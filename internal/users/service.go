package users

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type tokenRevoker interface {
	RevokeAllForUser(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error
}

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	Repo    *Repository
	DB      txRunner
	Revoker tokenRevoker
	Clock   func() time.Time
}

// Service exposes account-level operations for the authenticated user.
type Service interface {
	GetMe(ctx context.Context, userID uint) (*UserDTO, error)
	DeleteMe(ctx context.Context, userID uint) error
}

type service struct {
	repo    *Repository
	db      txRunner
	revoker tokenRevoker
	now     func() time.Time
}

// NewService builds a users service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Revoker == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token revoker is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		repo:    params.Repo,
		db:      params.DB,
		revoker: params.Revoker,
		now:     clock,
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID uint) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

// DeleteMe soft deletes the account and revokes every refresh token it holds.
func (s *service) DeleteMe(ctx context.Context, userID uint) error {
	now := s.now().UTC()
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		deleted, err := s.repo.SoftDelete(ctx, tx, userID, now)
		if err != nil {
			return db.MapError(err, db.ErrorMessages{Fallback: "delete user"})
		}
		if !deleted {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		if err := s.revoker.RevokeAllForUser(ctx, tx, userID, now); err != nil {
			return db.MapError(err, db.ErrorMessages{Fallback: "revoke refresh tokens"})
		}
		return nil
	})
}
