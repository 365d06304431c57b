package media

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/pagination"
)

// Service exposes read access to the catalog.
type Service interface {
	SearchMedia(ctx context.Context, query string, limit int) (*SearchResult, error)
	GetMedia(ctx context.Context, id uint) (*models.Media, error)
	ListMedia(ctx context.Context, params pagination.Params) (*ListResult, error)
	ListSeries(ctx context.Context) ([]models.Series, error)
	GetSeries(ctx context.Context, id uint) (*models.Series, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	ListSubtitles(ctx context.Context, mediaID uint) ([]models.Subtitle, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service backed by repo.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media repo is required")
	}
	return &service{repo: repo}, nil
}

// SearchMedia returns at most limit matches; no relevance ranking is applied.
func (s *service) SearchMedia(ctx context.Context, query string, limit int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	rows, err := s.repo.Search(ctx, query, normalizeSearchLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search media")
	}
	return &SearchResult{Results: rows, Count: len(rows)}, nil
}

func (s *service) GetMedia(ctx context.Context, id uint) (*models.Media, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "media not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	return m, nil
}

func (s *service) ListMedia(ctx context.Context, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count media")
	}
	items, err := s.repo.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}
	return &ListResult{Items: items, Pagination: pagination.NewPage(params, total)}, nil
}

func (s *service) ListSeries(ctx context.Context) ([]models.Series, error) {
	out, err := s.repo.ListSeries(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list series")
	}
	return out, nil
}

func (s *service) GetSeries(ctx context.Context, id uint) (*models.Series, error) {
	series, err := s.repo.FindSeries(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "series not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load series")
	}
	return series, nil
}

func (s *service) ListGenres(ctx context.Context) ([]models.Genre, error) {
	out, err := s.repo.ListGenres(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list genres")
	}
	return out, nil
}

func (s *service) ListSubtitles(ctx context.Context, mediaID uint) ([]models.Subtitle, error) {
	exists, err := s.repo.Exists(ctx, mediaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	out, err := s.repo.ListSubtitles(ctx, mediaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subtitles")
	}
	return out, nil
}
