// File: internal/user/adapter.go
package user

import (
	"devlink_backend/internal/shared"
)

// DBToShared converts a GORM user.User model to a shared.User view.
func DBToShared(dbUser *User) *shared.User {
	if dbUser == nil {
		return nil
	}
	return &shared.User{
		ID:        dbUser.ID,
		Email:     dbUser.Email,
		Name:      dbUser.Name,
		AvatarURL: dbUser.AvatarURL,
		Role:      dbUser.Role,
		CreatedAt: dbUser.CreatedAt,
		UpdatedAt: dbUser.UpdatedAt,
	}
}
