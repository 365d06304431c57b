package subscriptions

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/internal/repo"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// Repository persists user subscriptions.
type Repository struct {
	repo.Base
}

// NewRepository constructs a subscriptions repo bound to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// FindByUser returns the subscription row for userID in any status.
func (r *Repository) FindByUser(ctx context.Context, tx *gorm.DB, userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.Conn(ctx, tx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *Repository) Create(tx *gorm.DB, sub *models.Subscription) error {
	return tx.Create(sub).Error
}

func (r *Repository) Save(tx *gorm.DB, sub *models.Subscription) error {
	return tx.Save(sub).Error
}

// ListDue returns ids of subscriptions whose end date passed while still
// ACTIVE or CANCELLED.
func (r *Repository) ListDue(ctx context.Context, now time.Time, max int) ([]uint, error) {
	var ids []uint
	q := r.DB(ctx).
		Model(&models.Subscription{}).
		Where("status IN ? AND end_date < ?", []enums.SubscriptionStatus{enums.SubscriptionStatusActive, enums.SubscriptionStatusCancelled}, now).
		Order("end_date ASC")
	if max > 0 {
		q = q.Limit(max)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// MarkExpired flips a due subscription to EXPIRED. Returns false when the row
// was renewed or expired concurrently.
func (r *Repository) MarkExpired(ctx context.Context, id uint, now time.Time) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND status IN ? AND end_date < ?", id, []enums.SubscriptionStatus{enums.SubscriptionStatusActive, enums.SubscriptionStatusCancelled}, now).
		Update("status", enums.SubscriptionStatusExpired)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
