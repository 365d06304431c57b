package users

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/internal/repo"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// Repository exposes user persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves a non-deleted user matching email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("email = ? AND deleted_at IS NULL", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a non-deleted user.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("deleted_at IS NULL").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByReferralCode resolves the account that owns code.
func (r *Repository) FindByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("referral_code = ? AND deleted_at IS NULL", code).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ReferralCodeExists reports whether code is already taken.
func (r *Repository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SoftDelete marks the user deleted. Returns false when no live row matched.
func (r *Repository) SoftDelete(ctx context.Context, tx *gorm.DB, id uint, at time.Time) (bool, error) {
	res := r.Conn(ctx, tx).
		Model(&models.User{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"status": enums.UserStatusDeleted, "deleted_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
