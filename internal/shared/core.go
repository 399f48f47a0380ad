package shared

import (
	"context"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
)

// User is the cross-package view of an account, kept free of
// persistence concerns so middleware and handlers can depend on it
// without importing the user package.
type User struct {
	ID        uuid.UUID
	Email     *string
	Name      *string
	AvatarURL *string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service defines the user operations the auth middleware needs.
type Service interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	GetOrCreateUserFromFirebaseClaims(ctx context.Context, firebaseToken *firebaseauth.Token) (usr *User, wasCreated bool, err error)
}
