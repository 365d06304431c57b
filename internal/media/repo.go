package media

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/internal/repo"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
)

const searchClause = `LOWER(m.title) LIKE ? ESCAPE '\' OR LOWER(m.description) LIKE ? ESCAPE '\' OR LOWER(g.name) LIKE ? ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Repository exposes catalog reads.
type Repository struct {
	repo.Base
}

// NewRepository constructs a catalog repository bound to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

// FindByID retrieves a media record with its genres and subtitles.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Media, error) {
	var m models.Media
	err := r.DB(ctx).
		Preload("Genres", func(tx *gorm.DB) *gorm.DB { return tx.Order("genres.name ASC") }).
		Preload("Subtitles", func(tx *gorm.DB) *gorm.DB { return tx.Order("language ASC") }).
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Media{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search matches query case-insensitively against title, description and
// genre name. Each media row appears at most once.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Media, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	matches := r.DB(ctx).
		Table("media AS m").
		Select("m.id").
		Joins("LEFT JOIN media_genres mg ON mg.media_id = m.id").
		Joins("LEFT JOIN genres g ON g.id = mg.genre_id").
		Where(searchClause, pattern, pattern, pattern)

	out := []models.Media{}
	err := r.DB(ctx).
		Preload("Genres").
		Where("id IN (?)", matches).
		Order("id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB(ctx).Model(&models.Media{}).Count(&total).Error
	return total, err
}

func (r *Repository) List(ctx context.Context, offset, limit int) ([]models.Media, error) {
	out := []models.Media{}
	err := r.DB(ctx).
		Preload("Genres").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *Repository) ListSeries(ctx context.Context) ([]models.Series, error) {
	out := []models.Series{}
	err := r.DB(ctx).Order("title ASC").Order("id ASC").Find(&out).Error
	return out, err
}

// FindSeries loads a series with its seasons and their episodes in order.
func (r *Repository) FindSeries(ctx context.Context, id uint) (*models.Series, error) {
	var series models.Series
	err := r.DB(ctx).
		Preload("Seasons", func(tx *gorm.DB) *gorm.DB { return tx.Order("season_number ASC") }).
		Preload("Seasons.Episodes", func(tx *gorm.DB) *gorm.DB { return tx.Order("episode_number ASC").Order("id ASC") }).
		First(&series, id).Error
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *Repository) ListGenres(ctx context.Context) ([]models.Genre, error) {
	out := []models.Genre{}
	err := r.DB(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *Repository) ListSubtitles(ctx context.Context, mediaID uint) ([]models.Subtitle, error) {
	out := []models.Subtitle{}
	err := r.DB(ctx).Where("media_id = ?", mediaID).Order("language ASC").Find(&out).Error
	return out, err
}
