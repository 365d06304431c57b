package models

import (
	"time"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// User is the account that owns profiles and a subscription.
type User struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Email        string           `gorm:"type:text;not null;uniqueIndex:users_email_key" json:"email"`
	PasswordHash string           `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole   `gorm:"column:role;type:text;not null;default:USER" json:"role"`
	Status       enums.UserStatus `gorm:"column:status;type:text;not null;default:ACTIVE" json:"status"`
	ReferralCode string           `gorm:"column:referral_code;not null;uniqueIndex:users_referral_code_key" json:"referral_code"`
	ReferredBy   *uint            `gorm:"column:referred_by" json:"referred_by,omitempty"`
	Referrer     *User            `gorm:"foreignKey:ReferredBy;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt    *time.Time       `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }

// IsDeleted reports whether the account was soft deleted.
func (u User) IsDeleted() bool {
	return u.DeletedAt != nil || u.Status == enums.UserStatusDeleted
}
