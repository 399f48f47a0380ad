// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devlink_backend/internal/common"
	"devlink_backend/internal/config"
	"devlink_backend/internal/shared"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceImplementation implements the shared.Service interface.
type ServiceImplementation struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

var _ shared.Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// GetUserByID retrieves a user by their local ID.
func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// GetUserByFirebaseUID retrieves a user by their Firebase UID.
func (s *ServiceImplementation) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*shared.User, error) {
	dbUser, err := s.repo.FindByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}
	return DBToShared(dbUser), nil
}

// GetOrCreateUserFromFirebaseClaims resolves the local user record for a
// verified Firebase token, provisioning one on first sight and keeping
// name/avatar claims in sync afterwards.
func (s *ServiceImplementation) GetOrCreateUserFromFirebaseClaims(ctx context.Context, firebaseToken *firebaseauth.Token) (*shared.User, bool, error) {
	if firebaseToken == nil || firebaseToken.UID == "" {
		return nil, false, common.ErrUnauthorized.WithDetails("Firebase token is missing a UID.")
	}

	email, _ := firebaseToken.Claims["email"].(string)
	name, _ := firebaseToken.Claims["name"].(string)
	picture, _ := firebaseToken.Claims["picture"].(string)

	dbUser, err := s.repo.FindByFirebaseUID(ctx, firebaseToken.UID)
	if err != nil {
		if !common.IsNotFound(err) {
			s.logger.Error("Failed to look up user by Firebase UID", zap.Error(err), zap.String("uid", firebaseToken.UID))
			return nil, false, fmt.Errorf("failed to look up user: %w", err)
		}

		uid := firebaseToken.UID
		newUser := &User{
			FirebaseUID: &uid,
			Role:        common.RoleUser,
		}
		if email != "" {
			newUser.Email = &email
		}
		if name != "" {
			newUser.Name = &name
		}
		if picture != "" {
			newUser.AvatarURL = &picture
		}
		now := time.Now()
		newUser.LastLoginAt = &now

		if err := s.repo.Create(ctx, newUser); err != nil {
			var apiErr *common.APIError
			if errors.As(err, &apiErr) {
				return nil, false, apiErr
			}
			s.logger.Error("Failed to provision user from Firebase claims", zap.Error(err), zap.String("uid", firebaseToken.UID))
			return nil, false, fmt.Errorf("failed to create user: %w", err)
		}

		s.logger.Info("Provisioned new user from Firebase claims", zap.String("userID", newUser.ID.String()))
		return DBToShared(newUser), true, nil
	}

	// Keep mutable claims in sync on subsequent logins.
	changed := false
	if name != "" && (dbUser.Name == nil || *dbUser.Name != name) {
		dbUser.Name = &name
		changed = true
	}
	if picture != "" && (dbUser.AvatarURL == nil || *dbUser.AvatarURL != picture) {
		dbUser.AvatarURL = &picture
		changed = true
	}
	now := time.Now()
	dbUser.LastLoginAt = &now

	if err := s.repo.Update(ctx, dbUser); err != nil {
		// Claim sync is best effort; authentication still succeeds.
		s.logger.Warn("Failed to sync user claims", zap.Error(err), zap.String("userID", dbUser.ID.String()), zap.Bool("changed", changed))
	}

	return DBToShared(dbUser), false, nil
}
