package profiles

import (
	"context"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/internal/repo"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
)

// Repository exposes profile persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.DB(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]models.Profile, error) {
	var out []models.Profile
	if err := r.DB(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateWithProcedure calls CreateProfileWithPreferences on tx.
func (r *Repository) CreateWithProcedure(tx *gorm.DB, in CreateInput) error {
	return db.CallProcedure(tx, models.ProcCreateProfile,
		in.UserID, in.Name, in.Age, string(in.ContentClassification), in.Language, in.Autoplay, in.Subtitles)
}

// Insert writes the profile row directly. Used where stored routines are unavailable.
func (r *Repository) Insert(tx *gorm.DB, in CreateInput) error {
	profile := models.Profile{
		UserID:                in.UserID,
		Name:                  in.Name,
		Age:                   in.Age,
		ContentClassification: in.ContentClassification,
		Language:              in.Language,
		Autoplay:              in.Autoplay,
		Subtitles:             in.Subtitles,
	}
	return tx.Create(&profile).Error
}

// FindNewestByName re-reads the profile created for userID under name.
func (r *Repository) FindNewestByName(tx *gorm.DB, userID uint, name string) (*models.Profile, error) {
	var profile models.Profile
	err := tx.Where("user_id = ? AND name = ?", userID, name).
		Order("created_at DESC").
		Order("id DESC").
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update applies fields to the profile and returns false when it does not exist.
func (r *Repository) Update(tx *gorm.DB, id uint, fields map[string]any) (bool, error) {
	res := tx.Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.DB(ctx).Delete(&models.Profile{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
