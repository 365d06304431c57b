package auth

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/internal/repo"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
)

// TokenRepository persists hashed refresh tokens.
type TokenRepository struct {
	repo.Base
}

// NewTokenRepository binds the refresh token repository to db.
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{Base: repo.NewBase(db)}
}

func (r *TokenRepository) Create(ctx context.Context, tx *gorm.DB, token *models.RefreshToken) error {
	return r.Conn(ctx, tx).Create(token).Error
}

// FindByHash loads the token row regardless of its revocation state.
func (r *TokenRepository) FindByHash(ctx context.Context, tx *gorm.DB, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.Conn(ctx, tx).Where("token_hash = ?", hash).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Revoke marks a single live token revoked. Returns false when it was already revoked.
func (r *TokenRepository) Revoke(ctx context.Context, tx *gorm.DB, id uint, at time.Time) (bool, error) {
	res := r.Conn(ctx, tx).
		Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RevokeAllForUser revokes every live token issued to userID.
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error {
	return r.Conn(ctx, tx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at).Error
}

// PurgeExpired deletes tokens that expired or were revoked before cutoff.
func (r *TokenRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.DB(ctx).
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", cutoff, cutoff).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
