package watch

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/metrics"
)

var (
	watchListMessages = db.ErrorMessages{
		NotFound:       "watch list entry not found",
		Conflict:       "media already in watch list",
		ForeignKey:     "profile or media not found",
		ForeignKeyCode: pkgerrors.CodeNotFound,
		InvalidData:    "watch list entry rejected",
		Fallback:       "add to watch list",
	}
	historyMessages = db.ErrorMessages{
		NotFound:       "watch history entry not found",
		Conflict:       "watch history entry already exists",
		ForeignKey:     "profile or media not found",
		ForeignKeyCode: pkgerrors.CodeNotFound,
		InvalidData:    "watch history entry rejected",
		Fallback:       "record watch history",
	}

	mediaLookupMessages = db.ErrorMessages{Fallback: "load media"}
)

type database interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	SupportsRoutines() bool
}

type eventRecorder interface {
	Inc(action string)
}

// ServiceParams groups dependencies for the watch-state service.
type ServiceParams struct {
	Repo    *Repository
	DB      database
	Metrics eventRecorder
	Clock   func() time.Time
}

// Service manages profile-scoped watch lists and watch history. Callers are
// expected to have verified profile ownership already.
type Service interface {
	AddToWatchList(ctx context.Context, profileID, mediaID uint) (*models.WatchList, error)
	RemoveFromWatchList(ctx context.Context, profileID, mediaID uint) (bool, error)
	GetWatchList(ctx context.Context, profileID uint, limit int) ([]models.WatchListDetail, error)
	MarkAsWatched(ctx context.Context, in MarkAsWatchedInput) (*models.WatchHistory, error)
	GetHistory(ctx context.Context, profileID uint, limit int) ([]models.WatchHistoryDetail, error)
	FindHistory(ctx context.Context, historyID uint) (*models.WatchHistory, error)
	UpdateHistory(ctx context.Context, historyID uint, patch HistoryPatch) (*models.WatchHistory, error)
	DeleteHistory(ctx context.Context, historyID uint) (bool, error)
	GetRecommendations(ctx context.Context, profileID uint, limit int) ([]models.Recommendation, error)
	GetAgeAppropriateContent(ctx context.Context, profileID uint, limit int) ([]models.AgeAppropriateMedia, error)
}

type service struct {
	repo    *Repository
	db      database
	metrics eventRecorder
	now     func() time.Time
}

// NewService builds a watch-state service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "watch repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "database is required")
	}
	recorder := params.Metrics
	if recorder == nil {
		recorder = (*metrics.WatchMetrics)(nil)
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		repo:    params.Repo,
		db:      params.DB,
		metrics: recorder,
		now:     clock,
	}, nil
}

// AddToWatchList stores the bookmark and re-reads the newest row for the pair.
func (s *service) AddToWatchList(ctx context.Context, profileID, mediaID uint) (*models.WatchList, error) {
	if err := s.ensureMedia(ctx, nil, mediaID); err != nil {
		return nil, err
	}

	var entry *models.WatchList
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.AddToWatchList(tx, s.db.SupportsRoutines(), profileID, mediaID); err != nil {
			return db.MapError(err, watchListMessages)
		}
		found, err := s.repo.NewestWatchListEntry(tx, profileID, mediaID)
		if err != nil {
			return db.MapError(err, watchListMessages)
		}
		entry = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.Inc(metrics.WatchActionListAdd)
	return entry, nil
}

func (s *service) RemoveFromWatchList(ctx context.Context, profileID, mediaID uint) (bool, error) {
	removed, err := s.repo.RemoveFromWatchList(ctx, profileID, mediaID)
	if err != nil {
		return false, db.MapError(err, watchListMessages)
	}
	if removed {
		s.metrics.Inc(metrics.WatchActionListRemove)
	}
	return removed, nil
}

func (s *service) GetWatchList(ctx context.Context, profileID uint, limit int) ([]models.WatchListDetail, error) {
	out, err := s.repo.WatchListDetails(ctx, profileID, boundLimit(limit, DefaultWatchListLimit))
	if err != nil {
		return nil, db.MapError(err, db.ErrorMessages{Fallback: "load watch list"})
	}
	return out, nil
}

// MarkAsWatched updates the existing (profile, media) row in place or creates
// one, inside a single transaction. Concurrent first watches of the same pair
// can both miss the lookup and insert two rows; reads use the newest.
func (s *service) MarkAsWatched(ctx context.Context, in MarkAsWatchedInput) (*models.WatchHistory, error) {
	progress := FullProgress
	if in.Progress != nil {
		progress = *in.Progress
	}
	now := s.now().UTC()

	var entry *models.WatchHistory
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ensureMedia(ctx, tx, in.MediaID); err != nil {
			return err
		}

		existing, err := s.repo.FindHistoryForPair(tx, in.ProfileID, in.MediaID)
		switch {
		case err == nil:
			applyProgress(existing, progress, now)
			if in.ResumeTo != nil {
				existing.ResumeTo = in.ResumeTo
			}
			if err := s.repo.SaveHistory(tx, existing); err != nil {
				return db.MapError(err, historyMessages)
			}
			entry = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := &models.WatchHistory{
				ProfileID:     in.ProfileID,
				MediaID:       in.MediaID,
				Progress:      progress,
				ResumeTo:      in.ResumeTo,
				WatchedAt:     now,
				ViewingStatus: enums.ViewingStatusForProgress(progress),
			}
			if progress >= FullProgress {
				created.TimesWatched = 1
			}
			if err := s.repo.CreateHistory(tx, created); err != nil {
				return db.MapError(err, historyMessages)
			}
			entry = created
		default:
			return db.MapError(err, historyMessages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Inc(metrics.WatchActionWatched)
	if entry.IsCompleted() {
		s.metrics.Inc(metrics.WatchActionCompleted)
	}
	return entry, nil
}

func (s *service) GetHistory(ctx context.Context, profileID uint, limit int) ([]models.WatchHistoryDetail, error) {
	out, err := s.repo.HistoryDetails(ctx, profileID, boundLimit(limit, DefaultHistoryLimit))
	if err != nil {
		return nil, db.MapError(err, db.ErrorMessages{Fallback: "load watch history"})
	}
	return out, nil
}

func (s *service) FindHistory(ctx context.Context, historyID uint) (*models.WatchHistory, error) {
	entry, err := s.repo.FindHistoryByID(ctx, nil, historyID)
	if err != nil {
		return nil, db.MapError(err, historyMessages)
	}
	return entry, nil
}

// UpdateHistory applies patch by primary key. A missing row yields (nil, nil).
func (s *service) UpdateHistory(ctx context.Context, historyID uint, patch HistoryPatch) (*models.WatchHistory, error) {
	if patch.ViewingStatus != nil && !patch.ViewingStatus.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "invalid viewing status")
	}
	now := s.now().UTC()

	var entry *models.WatchHistory
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.repo.FindHistoryByID(ctx, tx, historyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return db.MapError(err, historyMessages)
		}
		if patch.Progress != nil {
			applyProgress(existing, *patch.Progress, now)
		}
		if patch.ResumeTo != nil {
			existing.ResumeTo = patch.ResumeTo
		}
		if patch.ViewingStatus != nil {
			existing.ViewingStatus = *patch.ViewingStatus
		}
		if err := s.repo.SaveHistory(tx, existing); err != nil {
			return db.MapError(err, historyMessages)
		}
		entry = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteHistory removes the row by primary key. A missing row yields false.
func (s *service) DeleteHistory(ctx context.Context, historyID uint) (bool, error) {
	deleted, err := s.repo.DeleteHistory(ctx, historyID)
	if err != nil {
		return false, db.MapError(err, historyMessages)
	}
	if deleted {
		s.metrics.Inc(metrics.WatchActionHistoryDel)
	}
	return deleted, nil
}

// GetRecommendations treats the ranking as opaque; ordering is the backend's.
func (s *service) GetRecommendations(ctx context.Context, profileID uint, limit int) ([]models.Recommendation, error) {
	out, err := s.repo.Recommendations(ctx, s.db.SupportsRoutines(), profileID, boundLimit(limit, DefaultRecommendationsLimit))
	if err != nil {
		return nil, db.MapError(err, db.ErrorMessages{NotFound: "profile not found", Fallback: "load recommendations"})
	}
	return out, nil
}

func (s *service) GetAgeAppropriateContent(ctx context.Context, profileID uint, limit int) ([]models.AgeAppropriateMedia, error) {
	out, err := s.repo.AgeAppropriate(ctx, profileID, boundLimit(limit, DefaultAgeAppropriateLimit))
	if err != nil {
		return nil, db.MapError(err, db.ErrorMessages{Fallback: "load age appropriate content"})
	}
	return out, nil
}

func (s *service) ensureMedia(ctx context.Context, tx *gorm.DB, mediaID uint) error {
	exists, err := s.repo.MediaExists(ctx, tx, mediaID)
	if err != nil {
		return db.MapError(err, mediaLookupMessages)
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	return nil
}

// applyProgress counts a rewatch only when progress crosses into completion.
func applyProgress(entry *models.WatchHistory, progress int, at time.Time) {
	if progress >= FullProgress && entry.Progress < FullProgress {
		entry.TimesWatched++
	}
	entry.Progress = progress
	entry.WatchedAt = at
	entry.ViewingStatus = enums.ViewingStatusForProgress(progress)
}

func boundLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
