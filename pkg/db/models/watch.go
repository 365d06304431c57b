package models

import (
	"time"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// WatchHistory records how far a profile got through a media item.
// One row per (profile, media) is expected but not enforced by a constraint.
type WatchHistory struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	ProfileID     uint                `gorm:"column:profile_id;not null;index:watch_history_profile_media_idx" json:"profile_id"`
	Profile       *Profile            `gorm:"foreignKey:ProfileID;constraint:OnDelete:RESTRICT" json:"-"`
	MediaID       uint                `gorm:"column:media_id;not null;index:watch_history_profile_media_idx" json:"media_id"`
	Media         *Media              `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE" json:"-"`
	Progress      int                 `gorm:"column:progress;not null;default:0" json:"progress"`
	ResumeTo      *string             `gorm:"column:resume_to" json:"resume_to,omitempty"`
	TimesWatched  int                 `gorm:"column:times_watched;not null;default:0" json:"times_watched"`
	WatchedAt     time.Time           `gorm:"column:watched_at;not null" json:"watched_at"`
	ViewingStatus enums.ViewingStatus `gorm:"column:viewing_status;type:text;not null;default:STARTED" json:"viewing_status"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WatchHistory) TableName() string { return "watch_history" }

// IsCompleted reports whether the entry reached the end of the media.
func (h WatchHistory) IsCompleted() bool {
	return h.ViewingStatus == enums.ViewingStatusCompleted || h.Progress >= 100
}

// IsRecent reports whether the entry was touched within window before now.
func (h WatchHistory) IsRecent(now time.Time, window time.Duration) bool {
	if h.WatchedAt.IsZero() || h.WatchedAt.After(now) {
		return false
	}
	return now.Sub(h.WatchedAt) <= window
}

// WatchList is a bookmark of a media item by a profile.
type WatchList struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"column:profile_id;not null;uniqueIndex:watch_list_profile_media_key" json:"profile_id"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID;constraint:OnDelete:RESTRICT" json:"-"`
	MediaID   uint      `gorm:"column:media_id;not null;uniqueIndex:watch_list_profile_media_key" json:"media_id"`
	Media     *Media    `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WatchList) TableName() string { return "watch_list" }
