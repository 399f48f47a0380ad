// File: internal/user/model.go
package user

import (
	"time"

	"devlink_backend/internal/common"

	"github.com/google/uuid"
)

// User represents an account that owns a profile.
type User struct {
	common.BaseModel         // Embeds ID, CreatedAt, UpdatedAt
	FirebaseUID      *string `gorm:"type:varchar(255);uniqueIndex"`
	Email            *string `gorm:"type:varchar(255);uniqueIndex"`
	Name             *string `gorm:"type:varchar(150)"`
	AvatarURL        *string `gorm:"type:text"`
	Role             string  `gorm:"type:varchar(50);not null;default:'user'"`
	LastLoginAt      *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     *string   `json:"email,omitempty"`
	Name      *string   `json:"name,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
