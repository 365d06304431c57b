package watch

import (
	"context"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/internal/repo"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
)

const recommendationsSQL = `
SELECT m.id AS media_id, m.title, m.type AS media_type, m.classification, m.release_date,
       COUNT(DISTINCT wg.genre_id) AS score
FROM age_appropriate_content a
JOIN media m ON m.id = a.media_id
LEFT JOIN media_genres mg ON mg.media_id = m.id
LEFT JOIN (
    SELECT DISTINCT mg2.genre_id
    FROM watch_history wh
    JOIN media_genres mg2 ON mg2.media_id = wh.media_id
    WHERE wh.profile_id = ?
) wg ON wg.genre_id = mg.genre_id
WHERE a.profile_id = ?
  AND m.id NOT IN (SELECT media_id FROM watch_history WHERE profile_id = ?)
GROUP BY m.id, m.title, m.type, m.classification, m.release_date
ORDER BY score DESC, m.release_date DESC, m.id ASC
LIMIT ?`

// Repository exposes watch list and watch history persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a watch repo bound to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func (r *Repository) MediaExists(ctx context.Context, tx *gorm.DB, mediaID uint) (bool, error) {
	var count int64
	if err := r.Conn(ctx, tx).Model(&models.Media{}).Where("id = ?", mediaID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddToWatchList calls the AddToWatchList procedure when routines are
// available and inserts the row directly otherwise.
func (r *Repository) AddToWatchList(tx *gorm.DB, routines bool, profileID, mediaID uint) error {
	if routines {
		return db.CallProcedure(tx, models.ProcAddToWatchList, profileID, mediaID)
	}
	return tx.Create(&models.WatchList{ProfileID: profileID, MediaID: mediaID}).Error
}

// NewestWatchListEntry returns the most recently created row for the pair.
func (r *Repository) NewestWatchListEntry(tx *gorm.DB, profileID, mediaID uint) (*models.WatchList, error) {
	var entry models.WatchList
	err := tx.Where("profile_id = ? AND media_id = ?", profileID, mediaID).
		Order("created_at DESC").
		Order("id DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) RemoveFromWatchList(ctx context.Context, profileID, mediaID uint) (bool, error) {
	res := r.DB(ctx).
		Where("profile_id = ? AND media_id = ?", profileID, mediaID).
		Delete(&models.WatchList{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindHistoryForPair returns the newest history row for (profile, media).
func (r *Repository) FindHistoryForPair(tx *gorm.DB, profileID, mediaID uint) (*models.WatchHistory, error) {
	var entry models.WatchHistory
	err := tx.Where("profile_id = ? AND media_id = ?", profileID, mediaID).
		Order("watched_at DESC").
		Order("id DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) CreateHistory(tx *gorm.DB, entry *models.WatchHistory) error {
	return tx.Create(entry).Error
}

func (r *Repository) SaveHistory(tx *gorm.DB, entry *models.WatchHistory) error {
	return tx.Save(entry).Error
}

func (r *Repository) FindHistoryByID(ctx context.Context, tx *gorm.DB, id uint) (*models.WatchHistory, error) {
	var entry models.WatchHistory
	if err := r.Conn(ctx, tx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) DeleteHistory(ctx context.Context, id uint) (bool, error) {
	res := r.DB(ctx).Delete(&models.WatchHistory{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) HistoryDetails(ctx context.Context, profileID uint, limit int) ([]models.WatchHistoryDetail, error) {
	out := []models.WatchHistoryDetail{}
	err := db.QueryView(r.DB(ctx), &out, db.ViewQuery{
		View:  models.ViewWatchHistoryDetails,
		Where: map[string]any{"profile_id": profileID},
		Order: []db.OrderBy{{Column: "watched_at", Desc: true}, {Column: "id", Desc: true}},
		Limit: limit,
	})
	return out, err
}

func (r *Repository) WatchListDetails(ctx context.Context, profileID uint, limit int) ([]models.WatchListDetail, error) {
	out := []models.WatchListDetail{}
	err := db.QueryView(r.DB(ctx), &out, db.ViewQuery{
		View:  models.ViewWatchListDetails,
		Where: map[string]any{"profile_id": profileID},
		Order: []db.OrderBy{{Column: "added_at", Desc: true}, {Column: "id", Desc: true}},
		Limit: limit,
	})
	return out, err
}

func (r *Repository) AgeAppropriate(ctx context.Context, profileID uint, limit int) ([]models.AgeAppropriateMedia, error) {
	out := []models.AgeAppropriateMedia{}
	err := db.QueryView(r.DB(ctx), &out, db.ViewQuery{
		View:  models.ViewAgeAppropriate,
		Where: map[string]any{"profile_id": profileID},
		Order: []db.OrderBy{{Column: "release_date", Desc: true}, {Column: "media_id"}},
		Limit: limit,
	})
	return out, err
}

// Recommendations ranks unwatched, age-appropriate media for the profile.
func (r *Repository) Recommendations(ctx context.Context, routines bool, profileID uint, limit int) ([]models.Recommendation, error) {
	out := []models.Recommendation{}
	if routines {
		err := db.CallFunction(r.DB(ctx), &out, models.FuncGetRecommendedMedia, profileID, limit)
		return out, err
	}
	err := r.DB(ctx).Raw(recommendationsSQL, profileID, profileID, profileID, limit).Scan(&out).Error
	return out, err
}

