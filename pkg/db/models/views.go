package models

import (
	"time"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// View and routine names. Identifiers are quoted verbatim by the db helpers.
const (
	ViewWatchHistoryDetails = "watch_history_details"
	ViewWatchListDetails    = "watch_list_details"
	ViewAgeAppropriate      = "age_appropriate_content"
	ProcAddToWatchList      = "AddToWatchList"
	ProcCreateProfile       = "CreateProfileWithPreferences"
	FuncGetRecommendedMedia = "GetRecommendedContent"
)

// WatchHistoryDetail is a row of the watch_history_details view.
type WatchHistoryDetail struct {
	ID             uint                        `gorm:"column:id" json:"id"`
	ProfileID      uint                        `gorm:"column:profile_id" json:"profile_id"`
	MediaID        uint                        `gorm:"column:media_id" json:"media_id"`
	Progress       int                         `gorm:"column:progress" json:"progress"`
	ResumeTo       *string                     `gorm:"column:resume_to" json:"resume_to,omitempty"`
	TimesWatched   int                         `gorm:"column:times_watched" json:"times_watched"`
	WatchedAt      time.Time                   `gorm:"column:watched_at" json:"watched_at"`
	ViewingStatus  enums.ViewingStatus         `gorm:"column:viewing_status" json:"viewing_status"`
	Title          string                      `gorm:"column:title" json:"title"`
	MediaType      enums.MediaType             `gorm:"column:media_type" json:"media_type"`
	Duration       string                      `gorm:"column:duration" json:"duration"`
	Classification enums.ContentClassification `gorm:"column:classification" json:"classification"`
	SeasonID       *uint                       `gorm:"column:season_id" json:"season_id,omitempty"`
	EpisodeNumber  *int                        `gorm:"column:episode_number" json:"episode_number,omitempty"`
}

func (WatchHistoryDetail) TableName() string { return ViewWatchHistoryDetails }

// WatchListDetail is a row of the watch_list_details view.
type WatchListDetail struct {
	ID             uint                        `gorm:"column:id" json:"id"`
	ProfileID      uint                        `gorm:"column:profile_id" json:"profile_id"`
	MediaID        uint                        `gorm:"column:media_id" json:"media_id"`
	AddedAt        time.Time                   `gorm:"column:added_at" json:"added_at"`
	Title          string                      `gorm:"column:title" json:"title"`
	MediaType      enums.MediaType             `gorm:"column:media_type" json:"media_type"`
	Duration       string                      `gorm:"column:duration" json:"duration"`
	Classification enums.ContentClassification `gorm:"column:classification" json:"classification"`
	ReleaseDate    time.Time                   `gorm:"column:release_date" json:"release_date"`
}

func (WatchListDetail) TableName() string { return ViewWatchListDetails }

// AgeAppropriateMedia is a row of the age_appropriate_content view.
type AgeAppropriateMedia struct {
	ProfileID      uint                        `gorm:"column:profile_id" json:"profile_id"`
	MediaID        uint                        `gorm:"column:media_id" json:"media_id"`
	Title          string                      `gorm:"column:title" json:"title"`
	MediaType      enums.MediaType             `gorm:"column:media_type" json:"media_type"`
	Classification enums.ContentClassification `gorm:"column:classification" json:"classification"`
	Duration       string                      `gorm:"column:duration" json:"duration"`
	ReleaseDate    time.Time                   `gorm:"column:release_date" json:"release_date"`
}

func (AgeAppropriateMedia) TableName() string { return ViewAgeAppropriate }

// Recommendation is a row returned by GetRecommendedContent.
type Recommendation struct {
	MediaID        uint                        `gorm:"column:media_id" json:"media_id"`
	Title          string                      `gorm:"column:title" json:"title"`
	MediaType      enums.MediaType             `gorm:"column:media_type" json:"media_type"`
	Classification enums.ContentClassification `gorm:"column:classification" json:"classification"`
	ReleaseDate    time.Time                   `gorm:"column:release_date" json:"release_date"`
	Score          int                         `gorm:"column:score" json:"score"`
}
