package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// Media is a playable title: a movie, or an episode when SeasonID is set.
type Media struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	SeasonID       *uint                       `gorm:"column:season_id;index:media_season_id_idx" json:"season_id,omitempty"`
	EpisodeNumber  *int                        `gorm:"column:episode_number" json:"episode_number,omitempty"`
	Title          string                      `gorm:"column:title;type:text;not null" json:"title"`
	Description    string                      `gorm:"column:description;type:text" json:"description"`
	Duration       string                      `gorm:"column:duration;type:text;not null;default:'00:00:00'" json:"duration"`
	ReleaseDate    time.Time                   `gorm:"column:release_date;not null" json:"release_date"`
	Classification enums.ContentClassification `gorm:"column:classification;type:text;not null" json:"classification"`
	Type           enums.MediaType             `gorm:"column:type;type:text;not null" json:"type"`
	Genres         []Genre                     `gorm:"many2many:media_genres;constraint:OnDelete:CASCADE" json:"genres,omitempty"`
	Subtitles      []Subtitle                  `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE" json:"subtitles,omitempty"`
	CreatedAt      time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Media) TableName() string { return "media" }

// IsEpisode reports whether the media belongs to a season.
func (m Media) IsEpisode() bool {
	return m.SeasonID != nil || m.Type == enums.MediaTypeEpisode
}

// DurationSeconds parses the HH:MM:SS duration.
func (m Media) DurationSeconds() (int, error) {
	return ParseClock(m.Duration)
}

// DurationMinutes rounds the duration up to whole minutes.
func (m Media) DurationMinutes() (int, error) {
	secs, err := m.DurationSeconds()
	if err != nil {
		return 0, err
	}
	return (secs + 59) / 60, nil
}

// IsRecentRelease reports whether the release date falls within window before now.
// Future release dates are not recent.
func (m Media) IsRecentRelease(now time.Time, window time.Duration) bool {
	if m.ReleaseDate.IsZero() || m.ReleaseDate.After(now) {
		return false
	}
	return now.Sub(m.ReleaseDate) <= window
}

// ParseClock converts an HH:MM:SS string into seconds.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM:SS", value)
	}
	var fields [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid clock value %q", value)
		}
		if i > 0 && n > 59 {
			return 0, fmt.Errorf("invalid clock value %q: field out of range", value)
		}
		fields[i] = n
	}
	return fields[0]*3600 + fields[1]*60 + fields[2], nil
}

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
