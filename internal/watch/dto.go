package watch

import "github.com/MichIoan/DP-API-2024-sub000/pkg/enums"

const (
	DefaultHistoryLimit         = 20
	DefaultWatchListLimit       = 20
	DefaultRecommendationsLimit = 10
	DefaultAgeAppropriateLimit  = 20
	MaxLimit                    = 100

	// FullProgress is the progress recorded when a caller omits it.
	FullProgress = 100
)

// AddToWatchListRequest is the body of POST /media/watchlist.
type AddToWatchListRequest struct {
	ProfileID *uint `json:"profileId"`
	MediaID   *uint `json:"mediaId"`
}

// MarkAsWatchedRequest is the body of POST /media/history. Progress is an
// integer percentage and is stored as given.
type MarkAsWatchedRequest struct {
	ProfileID *uint   `json:"profileId"`
	MediaID   *uint   `json:"mediaId"`
	Progress  *int    `json:"progress"`
	ResumeTo  *string `json:"resumeTo" validate:"omitempty,clock"`
}

// HistoryPatch is the body of PATCH /media/history/{historyId}.
type HistoryPatch struct {
	Progress      *int                 `json:"progress"`
	ResumeTo      *string              `json:"resumeTo" validate:"omitempty,clock"`
	ViewingStatus *enums.ViewingStatus `json:"viewingStatus"`
}

// MarkAsWatchedInput is the service-level form of a watch event.
type MarkAsWatchedInput struct {
	ProfileID uint
	MediaID   uint
	Progress  *int
	ResumeTo  *string
}
