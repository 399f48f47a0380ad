package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"devlink_backend/internal/common"
	"devlink_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockProfileRepository is a mock type for profile.Repository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context) ([]Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Profile), args.Error(1)
}

func (m *MockProfileRepository) FindPage(ctx context.Context, offset, limit int) ([]Profile, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *Profile, updateColumns []string) error {
	args := m.Called(ctx, profile, updateColumns)
	return args.Error(0)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteWithOwner(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTestService(repo Repository) Service {
	logger := zap.NewNop()
	cfg := &config.Config{}
	return NewService(repo, nil, cfg, logger)
}

func TestGetByID_MalformedIDIsNotFound(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	p, err := svc.GetByID(context.Background(), "not-a-uuid")

	assert.Nil(t, p)
	assert.True(t, common.IsNotFound(err))
	mockRepo.AssertNotCalled(t, "FindByID")
}

func TestGetByID_Found(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	id := uuid.New()
	stored := &Profile{Status: "Developer"}
	mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)

	p, err := svc.GetByID(context.Background(), id.String())

	assert.NoError(t, err)
	assert.Equal(t, stored, p)
	mockRepo.AssertExpectations(t)
}

func TestUpsert_ReloadsStoredProfile(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	req := UpsertProfileRequest{Status: "Developer", Skills: "go, postgres"}

	stored := &Profile{UserID: ownerID, Status: "Developer"}
	mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*profile.Profile"), mock.Anything).Return(nil)
	mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(stored, nil)

	p, err := svc.Upsert(context.Background(), ownerID, req)

	assert.NoError(t, err)
	assert.Equal(t, stored, p)
	mockRepo.AssertExpectations(t)

	// The column set drives the merge: absent fields must not be listed.
	call := mockRepo.Calls[0]
	columns := call.Arguments.Get(2).([]string)
	assert.ElementsMatch(t, []string{"status", "skills", "updated_at"}, columns)
}

func TestUpsert_StoreErrorSurfaces(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	mockRepo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	p, err := svc.Upsert(context.Background(), ownerID, UpsertProfileRequest{Status: "Dev", Skills: "go"})

	assert.Nil(t, p)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "FindByUserID")
}

func TestAddExperience_PrependsNewestFirst(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	existing := ExperienceEntry{ID: uuid.New(), Title: "Old Job", Company: "Acme", From: time.Now()}
	stored := &Profile{UserID: ownerID, Status: "Dev", Experience: ExperienceList{existing}}

	mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(stored, nil)
	mockRepo.On("Save", mock.Anything, stored).Return(nil)

	p, err := svc.AddExperience(context.Background(), ownerID, AddExperienceRequest{
		Title:   "New Job",
		Company: "Globex",
		From:    "2023-05-01",
	})

	assert.NoError(t, err)
	assert.Len(t, p.Experience, 2)
	assert.Equal(t, "New Job", p.Experience[0].Title)
	assert.Equal(t, "Old Job", p.Experience[1].Title)
	assert.NotEqual(t, uuid.Nil, p.Experience[0].ID)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), p.Experience[0].From)
	mockRepo.AssertExpectations(t)
}

func TestAddExperience_BadDateIsRejected(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	stored := &Profile{UserID: ownerID, Status: "Dev"}
	mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(stored, nil)

	p, err := svc.AddExperience(context.Background(), ownerID, AddExperienceRequest{
		Title:   "Job",
		Company: "Acme",
		From:    "05/01/2023",
	})

	assert.Nil(t, p)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestAddExperience_MissingProfile(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(nil, common.ErrNotFound)

	p, err := svc.AddExperience(context.Background(), ownerID, AddExperienceRequest{
		Title: "Job", Company: "Acme", From: "2023-05-01",
	})

	assert.Nil(t, p)
	assert.True(t, common.IsNotFound(err))
}

func TestRemoveExperience_UnknownIDIsNoOp(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	existing := ExperienceEntry{ID: uuid.New(), Title: "Job", Company: "Acme"}
	stored := &Profile{UserID: ownerID, Status: "Dev", Experience: ExperienceList{existing}}
	mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(stored, nil)

	p, err := svc.RemoveExperience(context.Background(), ownerID, uuid.New().String())

	assert.NoError(t, err)
	assert.Len(t, p.Experience, 1)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestRemoveExperience_MalformedIDIsNoOp(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	stored := &Profile{UserID: ownerID, Status: "Dev"}
	mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(stored, nil)

	p, err := svc.RemoveExperience(context.Background(), ownerID, "garbage")

	assert.NoError(t, err)
	assert.NotNil(t, p)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestRemoveExperience_RemovesAndPersists(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	target := ExperienceEntry{ID: uuid.New(), Title: "Drop Me", Company: "Acme"}
	keep := ExperienceEntry{ID: uuid.New(), Title: "Keep Me", Company: "Acme"}
	stored := &Profile{UserID: ownerID, Status: "Dev", Experience: ExperienceList{target, keep}}

	mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(stored, nil)
	mockRepo.On("Save", mock.Anything, stored).Return(nil)

	p, err := svc.RemoveExperience(context.Background(), ownerID, target.ID.String())

	assert.NoError(t, err)
	assert.Len(t, p.Experience, 1)
	assert.Equal(t, keep.ID, p.Experience[0].ID)
	mockRepo.AssertExpectations(t)
}

func TestRemoveEducation_SaveFailureSurfaces(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	target := EducationEntry{ID: uuid.New(), School: "State", Degree: "BSc", FieldOfStudy: "CS"}
	stored := &Profile{UserID: ownerID, Status: "Dev", Education: EducationList{target}}

	mockRepo.On("FindByUserID", mock.Anything, ownerID).Return(stored, nil)
	mockRepo.On("Save", mock.Anything, stored).Return(errors.New("db down"))

	p, err := svc.RemoveEducation(context.Background(), ownerID, target.ID.String())

	assert.Nil(t, p)
	assert.Error(t, err)
}

func TestDeleteOwner_Succeeds(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	ownerID := uuid.New()
	mockRepo.On("DeleteWithOwner", mock.Anything, ownerID).Return(nil)

	assert.NoError(t, svc.DeleteOwner(context.Background(), ownerID))
	mockRepo.AssertExpectations(t)
}

func TestSearch_UnavailableWithoutClient(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	svc := newTestService(mockRepo)

	hits, pagination, err := svc.Search(context.Background(), "go", 1, 10)

	assert.Nil(t, hits)
	assert.Nil(t, pagination)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apiErr.Code)
}
