package models

import (
	"time"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// Profile is a viewer persona under a user account. Watch state hangs off profiles.
// Boolean preferences carry no gorm default so a false value is written as given;
// creation defaults live in the profiles service.
type Profile struct {
	ID                    uint                        `gorm:"primaryKey" json:"id"`
	UserID                uint                        `gorm:"column:user_id;not null;index:profiles_user_id_idx;uniqueIndex:profiles_user_name_key" json:"user_id"`
	User                  *User                       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name                  string                      `gorm:"column:name;type:text;not null;uniqueIndex:profiles_user_name_key" json:"name"`
	Age                   int                         `gorm:"column:age;not null" json:"age"`
	ContentClassification enums.ContentClassification `gorm:"column:content_classification;type:text;not null;default:PG13" json:"content_classification"`
	Language              string                      `gorm:"column:language;type:text;not null;default:en" json:"language"`
	Autoplay              bool                        `gorm:"column:autoplay;not null" json:"autoplay"`
	Subtitles             bool                        `gorm:"column:subtitles;not null" json:"subtitles"`
	CreatedAt             time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// OwnedBy reports whether the profile belongs to userID.
func (p Profile) OwnedBy(userID uint) bool {
	return p.UserID == userID
}

// CanWatch combines the profile's preference cap with its age.
func (p Profile) CanWatch(rating enums.ContentClassification) bool {
	return p.ContentClassification.Permits(rating) && p.Age >= rating.MinimumAge()
}
