package profiles

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

const defaultLanguage = "en"

var (
	writeMessages = db.ErrorMessages{
		NotFound:    "profile not found",
		Conflict:    "profile name already exists",
		ForeignKey:  "user not found",
		InvalidData: "profile data rejected",

		ForeignKeyCode: pkgerrors.CodeNotFound,
		Fallback:       "save profile",
	}
	deleteMessages = db.ErrorMessages{
		NotFound:   "profile not found",
		ForeignKey: "profile has watch history or watch list entries",
		Fallback:   "delete profile",
	}
)

type database interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	SupportsRoutines() bool
}

// ServiceParams groups dependencies for the profiles service.
type ServiceParams struct {
	Repo *Repository
	DB   database
}

// Service exposes profile management for account owners.
type Service interface {
	FindProfile(ctx context.Context, id uint) (*models.Profile, error)
	ListProfiles(ctx context.Context, userID uint) ([]models.Profile, error)
	CountProfiles(ctx context.Context, userID uint) (int64, error)
	CreateProfile(ctx context.Context, userID uint, req CreateProfileRequest) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id uint) error
}

type service struct {
	repo *Repository
	db   database
}

// NewService builds a profiles service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profiles repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "database is required")
	}
	return &service{repo: params.Repo, db: params.DB}, nil
}

// FindProfile always reads the current row; ownership checks depend on it.
func (s *service) FindProfile(ctx context.Context, id uint) (*models.Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}

func (s *service) ListProfiles(ctx context.Context, userID uint) ([]models.Profile, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list profiles")
	}
	if out == nil {
		out = []models.Profile{}
	}
	return out, nil
}

func (s *service) CountProfiles(ctx context.Context, userID uint) (int64, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count profiles")
	}
	return count, nil
}

// CreateProfile runs CreateProfileWithPreferences and reads the new row back
// in the same transaction.
func (s *service) CreateProfile(ctx context.Context, userID uint, req CreateProfileRequest) (*models.Profile, error) {
	in, err := resolveCreateInput(userID, req)
	if err != nil {
		return nil, err
	}

	var created *models.Profile
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		var writeErr error
		if s.db.SupportsRoutines() {
			writeErr = s.repo.CreateWithProcedure(tx, in)
		} else {
			writeErr = s.repo.Insert(tx, in)
		}
		if writeErr != nil {
			return db.MapError(writeErr, writeMessages)
		}
		profile, err := s.repo.FindNewestByName(tx, in.UserID, in.Name)
		if err != nil {
			return db.MapError(err, writeMessages)
		}
		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*models.Profile, error) {
	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}

	var updated models.Profile
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if len(fields) > 0 {
			found, err := s.repo.Update(tx, id, fields)
			if err != nil {
				return db.MapError(err, writeMessages)
			}
			if !found {
				return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
			}
		}
		if err := tx.First(&updated, id).Error; err != nil {
			return db.MapError(err, writeMessages)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) DeleteProfile(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return db.MapError(err, deleteMessages)
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	return nil
}

func resolveCreateInput(userID uint, req CreateProfileRequest) (CreateInput, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" || req.Age == nil {
		return CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "name and age are required")
	}
	if *req.Age < 0 {
		return CreateInput{}, pkgerrors.New(pkgerrors.CodeUnprocessable, "age must not be negative")
	}

	classification := enums.MaxForAge(*req.Age)
	if raw := strings.TrimSpace(req.ContentClassification); raw != "" {
		parsed, err := enums.ParseContentClassification(raw)
		if err != nil {
			return CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, "invalid content classification")
		}
		classification = parsed
	}

	in := CreateInput{
		UserID:                userID,
		Name:                  strings.TrimSpace(*req.Name),
		Age:                   *req.Age,
		ContentClassification: classification,
		Language:              defaultLanguage,
		Autoplay:              true,
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		in.Language = lang
	}
	if req.Autoplay != nil {
		in.Autoplay = *req.Autoplay
	}
	if req.Subtitles != nil {
		in.Subtitles = *req.Subtitles
	}
	return in, nil
}

func updateFields(req UpdateProfileRequest) (map[string]any, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Age != nil {
		if *req.Age < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "age must not be negative")
		}
		fields["age"] = *req.Age
	}
	if req.ContentClassification != nil {
		parsed, err := enums.ParseContentClassification(*req.ContentClassification)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, "invalid content classification")
		}
		fields["content_classification"] = parsed
	}
	if req.Language != nil {
		fields["language"] = strings.TrimSpace(*req.Language)
	}
	if req.Autoplay != nil {
		fields["autoplay"] = *req.Autoplay
	}
	if req.Subtitles != nil {
		fields["subtitles"] = *req.Subtitles
	}
	return fields, nil
}
