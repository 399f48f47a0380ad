package user

import (
	"context"
	"errors"
	"testing"

	"devlink_backend/internal/common"
	"devlink_backend/internal/config"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error) {
	args := m.Called(ctx, firebaseUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *ServiceImplementation {
	return NewService(repo, &config.Config{}, zap.NewNop())
}

func firebaseToken(uid, email, name string) *firebaseauth.Token {
	return &firebaseauth.Token{
		UID: uid,
		Claims: map[string]interface{}{
			"email":   email,
			"name":    name,
			"picture": "https://example.com/pic.jpg",
		},
	}
}

func TestGetOrCreate_ProvisionsNewUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	mockRepo.On("FindByFirebaseUID", mock.Anything, "new-uid").Return(nil, common.ErrNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Run(func(args mock.Arguments) {
		u := args.Get(1).(*User)
		u.ID = uuid.New()
	}).Return(nil)

	usr, created, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), firebaseToken("new-uid", "new@example.com", "New User"))

	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, usr)
	assert.Equal(t, "new@example.com", *usr.Email)
	assert.Equal(t, "New User", *usr.Name)
	assert.Equal(t, common.RoleUser, usr.Role)
	mockRepo.AssertExpectations(t)
}

func TestGetOrCreate_ReturnsExistingUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	uid := "known-uid"
	email := "known@example.com"
	name := "Known User"
	existing := &User{
		FirebaseUID: &uid,
		Email:       &email,
		Name:        &name,
		Role:        common.RoleUser,
	}
	existing.ID = uuid.New()

	mockRepo.On("FindByFirebaseUID", mock.Anything, uid).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, existing).Return(nil)

	usr, created, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), firebaseToken(uid, email, name))

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, usr.ID)
	mockRepo.AssertExpectations(t)
}

func TestGetOrCreate_SyncsChangedName(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	uid := "rename-uid"
	oldName := "Old Name"
	existing := &User{FirebaseUID: &uid, Name: &oldName, Role: common.RoleUser}
	existing.ID = uuid.New()

	mockRepo.On("FindByFirebaseUID", mock.Anything, uid).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, existing).Return(nil)

	usr, _, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), firebaseToken(uid, "", "New Name"))

	require.NoError(t, err)
	assert.Equal(t, "New Name", *usr.Name)
}

func TestGetOrCreate_ClaimSyncFailureStillAuthenticates(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	uid := "flaky-uid"
	existing := &User{FirebaseUID: &uid, Role: common.RoleUser}
	existing.ID = uuid.New()

	mockRepo.On("FindByFirebaseUID", mock.Anything, uid).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, existing).Return(errors.New("db down"))

	usr, created, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), firebaseToken(uid, "", "Name"))

	require.NoError(t, err)
	assert.False(t, created)
	assert.NotNil(t, usr)
}

func TestGetOrCreate_NilTokenIsUnauthorized(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newTestService(mockRepo)

	usr, created, err := svc.GetOrCreateUserFromFirebaseClaims(context.Background(), nil)

	assert.Nil(t, usr)
	assert.False(t, created)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}
