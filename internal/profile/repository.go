// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devlink_backend/internal/common"
	"devlink_backend/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for profile data operations.
type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	FindPage(ctx context.Context, offset, limit int) ([]Profile, error)
	Upsert(ctx context.Context, profile *Profile, updateColumns []string) error
	Save(ctx context.Context, profile *Profile) error
	DeleteWithOwner(ctx context.Context, userID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// FindByUserID retrieves the profile owned by the given user.
func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("There is no profile for this user.")
		}
		return nil, err
	}
	return &p, nil
}

// FindByID retrieves a profile by its own ID.
func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found.")
		}
		return nil, err
	}
	return &p, nil
}

// FindAll retrieves every profile with its owner preloaded.
func (r *gormRepository) FindAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// FindPage retrieves a batch of profiles for the search-index sync.
func (r *gormRepository) FindPage(ctx context.Context, offset, limit int) ([]Profile, error) {
	var profiles []Profile
	err := r.db.WithContext(ctx).Preload("User").
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert writes the profile as a single INSERT ... ON CONFLICT (user_id)
// DO UPDATE statement restricted to updateColumns. The check-then-write
// is one statement, so concurrent upserts for the same owner cannot
// create duplicate rows.
func (r *gormRepository) Upsert(ctx context.Context, profile *Profile, updateColumns []string) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "foreign key constraint") {
			return common.ErrNotFound.WithDetails("Owner user does not exist.")
		}
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// Save persists the full profile document.
func (r *gormRepository) Save(ctx context.Context, profile *Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// DeleteWithOwner removes the profile and its owning user record as one
// transaction. Absent rows are tolerated so the operation is idempotent.
func (r *gormRepository) DeleteWithOwner(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Profile{}, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		if err := tx.Delete(&user.User{}, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
