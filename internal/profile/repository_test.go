package profile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"devlink_backend/internal/common"
	"devlink_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupProfileTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))

	// The profiles table is created by hand: the production column
	// types (text[], jsonb) are Postgres-specific, but their values
	// serialize to plain text, which SQLite stores as-is.
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS profiles (
		id text PRIMARY KEY,
		created_at datetime NOT NULL DEFAULT current_timestamp,
		updated_at datetime NOT NULL DEFAULT current_timestamp,
		user_id text NOT NULL UNIQUE,
		status text NOT NULL,
		company text,
		website text,
		location text,
		bio text,
		github_username text,
		skills text NOT NULL,
		social_youtube text,
		social_facebook text,
		social_twitter text,
		social_instagram text,
		social_linkedin text,
		experience text NOT NULL DEFAULT '[]',
		education text NOT NULL DEFAULT '[]'
	)`).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM profiles")
		db.Exec("DELETE FROM users")
	})
	return db
}

func seedOwner(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	email := fmt.Sprintf("%s@example.com", uuid.NewString())
	u := &user.User{Email: &email, Role: common.RoleUser}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestUpsert_CreateThenPartialMerge(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	owner := seedOwner(t, db)

	company := "Acme"
	location := "Seattle"
	p1, cols1 := BuildUpsert(owner.ID, UpsertProfileRequest{
		Status:   "Developer",
		Skills:   "go, postgres",
		Company:  &company,
		Location: &location,
	})
	require.NoError(t, repo.Upsert(ctx, p1, cols1))

	first, err := repo.FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	firstID := first.ID

	bio := "Hello"
	empty := ""
	p2, cols2 := BuildUpsert(owner.ID, UpsertProfileRequest{
		Status:   "Senior Developer",
		Skills:   "go",
		Bio:      &bio,
		Location: &empty,
	})
	require.NoError(t, repo.Upsert(ctx, p2, cols2))

	var count int64
	require.NoError(t, db.Model(&Profile{}).Where("user_id = ?", owner.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := repo.FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, firstID, stored.ID)

	// Overlapping fields take the second patch's values.
	assert.Equal(t, "Senior Developer", stored.Status)
	assert.Equal(t, []string{"go"}, []string(stored.Skills))

	// Fields only the first patch supplied are retained.
	require.NotNil(t, stored.Company)
	assert.Equal(t, "Acme", *stored.Company)
	require.NotNil(t, stored.Location)
	assert.Equal(t, "Seattle", *stored.Location)

	// Fields only the second patch supplied are applied.
	require.NotNil(t, stored.Bio)
	assert.Equal(t, "Hello", *stored.Bio)

	// Fields supplied by neither patch stay empty.
	assert.Nil(t, stored.Website)
	assert.Nil(t, stored.GithubUsername)
	assert.Nil(t, stored.Social.Youtube)
}

func TestUpsert_RepeatedForSameOwnerKeepsOneRow(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	owner := seedOwner(t, db)

	for i := 0; i < 3; i++ {
		p, cols := BuildUpsert(owner.ID, UpsertProfileRequest{
			Status: fmt.Sprintf("Developer %d", i),
			Skills: "go",
		})
		require.NoError(t, repo.Upsert(ctx, p, cols))
	}

	var count int64
	require.NoError(t, db.Model(&Profile{}).Where("user_id = ?", owner.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := repo.FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Developer 2", stored.Status)
}

func TestUpsert_LeavesHistoryListsUntouched(t *testing.T) {
	db := setupProfileTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	owner := seedOwner(t, db)

	p1, cols1 := BuildUpsert(owner.ID, UpsertProfileRequest{Status: "Developer", Skills: "go"})
	require.NoError(t, repo.Upsert(ctx, p1, cols1))

	stored, err := repo.FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	stored.Experience = prependEntry(stored.Experience, ExperienceEntry{
		ID:      uuid.New(),
		Title:   "Backend Engineer",
		Company: "Acme",
		From:    time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, repo.Save(ctx, stored))

	p2, cols2 := BuildUpsert(owner.ID, UpsertProfileRequest{Status: "Senior Developer", Skills: "go, k8s"})
	require.NoError(t, repo.Upsert(ctx, p2, cols2))

	reloaded, err := repo.FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Developer", reloaded.Status)
	require.Len(t, reloaded.Experience, 1)
	assert.Equal(t, "Backend Engineer", reloaded.Experience[0].Title)
}
