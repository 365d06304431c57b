package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// Subscription is the zero-or-one plan attached to a user.
type Subscription struct {
	ID        uint                     `gorm:"primaryKey" json:"id"`
	UserID    uint                     `gorm:"column:user_id;not null;uniqueIndex:subscriptions_user_id_key" json:"user_id"`
	User      *User                    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Plan      enums.SubscriptionPlan   `gorm:"column:plan;type:text;not null" json:"plan"`
	Status    enums.SubscriptionStatus `gorm:"column:status;type:text;not null;default:ACTIVE" json:"status"`
	Price     decimal.Decimal          `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	StartDate time.Time                `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   time.Time                `gorm:"column:end_date;not null" json:"end_date"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// IsActive reports whether the subscription currently grants access.
// Cancelled subscriptions run until their end date.
func (s Subscription) IsActive(now time.Time) bool {
	switch s.Status {
	case enums.SubscriptionStatusActive, enums.SubscriptionStatusCancelled:
		return now.Before(s.EndDate)
	default:
		return false
	}
}

// RefreshToken stores the sha-256 of an issued refresh token.
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"column:user_id;not null;index:refresh_tokens_user_id_idx"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TokenHash string     `gorm:"column:token_hash;not null;uniqueIndex:refresh_tokens_token_hash_key"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null"`
	RevokedAt *time.Time `gorm:"column:revoked_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

// Usable reports whether the token can still be exchanged.
func (t RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// All lists every table-backed model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&Series{},
		&Season{},
		&Genre{},
		&Media{},
		&Subtitle{},
		&WatchHistory{},
		&WatchList{},
		&Subscription{},
		&RefreshToken{},
	}
}
