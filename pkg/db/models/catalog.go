package models

import "time"

// Series groups seasons of episodic media.
type Series struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"column:title;type:text;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Seasons     []Season  `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE" json:"seasons,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Series) TableName() string { return "series" }

type Season struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SeriesID     uint      `gorm:"column:series_id;not null;uniqueIndex:seasons_series_number_key" json:"series_id"`
	SeasonNumber int       `gorm:"column:season_number;not null;uniqueIndex:seasons_series_number_key" json:"season_number"`
	Title        string    `gorm:"column:title;type:text" json:"title,omitempty"`
	Episodes     []Media   `gorm:"foreignKey:SeasonID;constraint:OnDelete:CASCADE" json:"episodes,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Season) TableName() string { return "seasons" }

type Genre struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:text;not null;uniqueIndex:genres_name_key" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
}

func (Genre) TableName() string { return "genres" }

type Subtitle struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	MediaID  uint   `gorm:"column:media_id;not null;index:subtitles_media_id_idx" json:"media_id"`
	Language string `gorm:"column:language;type:text;not null" json:"language"`
	FilePath string `gorm:"column:file_path;type:text;not null" json:"file_path"`
}

func (Subtitle) TableName() string { return "subtitles" }
