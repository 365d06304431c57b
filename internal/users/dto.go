package users

import (
	"time"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID           uint             `json:"id"`
	Email        string           `json:"email"`
	Role         enums.UserRole   `json:"role"`
	Status       enums.UserStatus `json:"status"`
	ReferralCode string           `json:"referral_code"`
	ReferredBy   *uint            `json:"referred_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	ReferralCode string
	ReferredBy   *uint
	Role         enums.UserRole
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		Status:       u.Status,
		ReferralCode: u.ReferralCode,
		ReferredBy:   u.ReferredBy,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if !role.IsValid() {
		role = enums.UserRoleUser
	}
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         role,
		Status:       enums.UserStatusActive,
		ReferralCode: c.ReferralCode,
		ReferredBy:   c.ReferredBy,
	}
}
