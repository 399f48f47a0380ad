// File: internal/profile/service.go
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devlink_backend/internal/common"
	"devlink_backend/internal/config"
	platformes "devlink_backend/internal/platform/elasticsearch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for profile business logic.
type Service interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	GetByID(ctx context.Context, rawID string) (*Profile, error)
	GetAll(ctx context.Context) ([]Profile, error)
	Upsert(ctx context.Context, ownerID uuid.UUID, req UpsertProfileRequest) (*Profile, error)
	DeleteOwner(ctx context.Context, ownerID uuid.UUID) error
	AddExperience(ctx context.Context, ownerID uuid.UUID, req AddExperienceRequest) (*Profile, error)
	RemoveExperience(ctx context.Context, ownerID uuid.UUID, rawEntryID string) (*Profile, error)
	AddEducation(ctx context.Context, ownerID uuid.UUID, req AddEducationRequest) (*Profile, error)
	RemoveEducation(ctx context.Context, ownerID uuid.UUID, rawEntryID string) (*Profile, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]SearchHit, *common.Pagination, error)
}

// SearchHit is one profile returned from the search index.
type SearchHit struct {
	UserID         string   `json:"user_id"`
	UserName       string   `json:"user_name,omitempty"`
	Status         string   `json:"status"`
	Company        string   `json:"company,omitempty"`
	Location       string   `json:"location,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	GithubUsername string   `json:"github_username,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

// ServiceImplementation implements the profile Service interface.
type ServiceImplementation struct {
	repo     Repository
	esClient *platformes.ESClientWrapper
	cfg      *config.Config
	logger   *zap.Logger
}

// NewService creates a new profile service. esClient may be nil when the
// search index is not configured; search requests then fail cleanly.
func NewService(repo Repository, esClient *platformes.ESClientWrapper, cfg *config.Config, logger *zap.Logger) Service {
	return &ServiceImplementation{
		repo:     repo,
		esClient: esClient,
		cfg:      cfg,
		logger:   logger,
	}
}

// GetByOwner returns the profile owned by the given user.
func (s *ServiceImplementation) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error) {
	return s.repo.FindByUserID(ctx, ownerID)
}

// GetByID returns a profile by its own identifier. A malformed id is
// indistinguishable from an absent one: both yield not-found.
func (s *ServiceImplementation) GetByID(ctx context.Context, rawID string) (*Profile, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		s.logger.Debug("Malformed profile ID treated as not found", zap.String("rawID", rawID))
		return nil, common.ErrNotFound.WithDetails("Profile not found.")
	}
	return s.repo.FindByID(ctx, id)
}

// GetAll returns every profile.
func (s *ServiceImplementation) GetAll(ctx context.Context) ([]Profile, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve profiles.")
	}
	return profiles, nil
}

// Upsert creates the owner's profile on first call and partially updates
// it afterwards. Only fields supplied in the payload change; history
// lists are never touched here.
func (s *ServiceImplementation) Upsert(ctx context.Context, ownerID uuid.UUID, req UpsertProfileRequest) (*Profile, error) {
	p, columns := BuildUpsert(ownerID, req)

	if err := s.repo.Upsert(ctx, p, columns); err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		s.logger.Error("Failed to upsert profile", zap.Error(err), zap.String("ownerID", ownerID.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not save profile.")
	}

	// Re-read so the caller sees the stored row, merged fields and
	// owner join included.
	stored, err := s.repo.FindByUserID(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to reload profile after upsert", zap.Error(err), zap.String("ownerID", ownerID.String()))
		return nil, err
	}
	return stored, nil
}

// DeleteOwner removes the profile and the owning user as one logical
// operation. Deleting an already-absent owner succeeds.
func (s *ServiceImplementation) DeleteOwner(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.repo.DeleteWithOwner(ctx, ownerID); err != nil {
		s.logger.Error("Failed to delete profile and owner", zap.Error(err), zap.String("ownerID", ownerID.String()))
		return common.ErrInternalServer.WithDetails("Could not delete account.")
	}
	return nil
}

// AddExperience prepends a new employment entry and persists the profile.
func (s *ServiceImplementation) AddExperience(ctx context.Context, ownerID uuid.UUID, req AddExperienceRequest) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	entry := ExperienceEntry{
		ID:      uuid.New(),
		Title:   req.Title,
		Company: req.Company,
		From:    from,
		To:      to,
		Current: req.Current,
	}
	if req.Location != nil {
		entry.Location = *req.Location
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	p.Experience = prependEntry(p.Experience, entry)
	if err := s.persistHistory(ctx, p, ExperienceListName); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveExperience removes an employment entry by id. A malformed or
// unknown id leaves the profile unchanged.
func (s *ServiceImplementation) RemoveExperience(ctx context.Context, ownerID uuid.UUID, rawEntryID string) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entryID, err := uuid.Parse(rawEntryID)
	if err != nil {
		s.logger.Debug("Malformed experience entry ID, nothing removed", zap.String("rawEntryID", rawEntryID))
		return p, nil
	}

	updated, removed := removeEntryByID(p.Experience, entryID)
	if !removed {
		return p, nil
	}
	p.Experience = updated
	if err := s.persistHistory(ctx, p, ExperienceListName); err != nil {
		return nil, err
	}
	return p, nil
}

// AddEducation prepends a new education entry and persists the profile.
func (s *ServiceImplementation) AddEducation(ctx context.Context, ownerID uuid.UUID, req AddEducationRequest) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	entry := EducationEntry{
		ID:           uuid.New(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	p.Education = prependEntry(p.Education, entry)
	if err := s.persistHistory(ctx, p, EducationListName); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveEducation removes an education entry by id. A malformed or
// unknown id leaves the profile unchanged.
func (s *ServiceImplementation) RemoveEducation(ctx context.Context, ownerID uuid.UUID, rawEntryID string) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entryID, err := uuid.Parse(rawEntryID)
	if err != nil {
		s.logger.Debug("Malformed education entry ID, nothing removed", zap.String("rawEntryID", rawEntryID))
		return p, nil
	}

	updated, removed := removeEntryByID(p.Education, entryID)
	if !removed {
		return p, nil
	}
	p.Education = updated
	if err := s.persistHistory(ctx, p, EducationListName); err != nil {
		return nil, err
	}
	return p, nil
}

// persistHistory saves the mutated profile document. Store failures are
// surfaced, never swallowed.
func (s *ServiceImplementation) persistHistory(ctx context.Context, p *Profile, list HistoryListName) error {
	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("Failed to persist history list mutation",
			zap.Error(err),
			zap.String("list", string(list)),
			zap.String("ownerID", p.UserID.String()),
		)
		return common.ErrInternalServer.WithDetails("Could not save profile.")
	}
	return nil
}

func parseDateRange(fromRaw string, toRaw *string) (time.Time, *time.Time, error) {
	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		return time.Time{}, nil, common.ErrBadRequest.WithDetails("The from field must be a valid date (YYYY-MM-DD).")
	}
	if toRaw == nil {
		return from, nil, nil
	}
	to, err := time.Parse("2006-01-02", *toRaw)
	if err != nil {
		return time.Time{}, nil, common.ErrBadRequest.WithDetails("The to field must be a valid date (YYYY-MM-DD).")
	}
	return from, &to, nil
}

// Search queries the profiles search index.
func (s *ServiceImplementation) Search(ctx context.Context, query string, page, pageSize int) ([]SearchHit, *common.Pagination, error) {
	if s.esClient == nil {
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Profile search is not available.")
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	body := map[string]interface{}{
		"from": (page - 1) * pageSize,
		"size": pageSize,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"status^2", "skills^2", "bio", "company", "location", "user_name"},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(platformes.ProfilesIndexName),
		s.esClient.Search.WithBody(bytes.NewReader(payload)),
		s.esClient.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		s.logger.Error("Profile search request failed", zap.Error(err))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Profile search is not available.")
	}
	defer res.Body.Close()

	if res.IsError() {
		s.logger.Error("Profile search returned an error", zap.String("status", res.Status()))
		return nil, nil, common.ErrInternalServer.WithDetails("Profile search failed.")
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source SearchHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		s.logger.Error("Failed to decode profile search response", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Profile search failed.")
	}

	hits := make([]SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, h.Source)
	}
	pagination := common.NewPagination(parsed.Hits.Total.Value, page, pageSize)
	return hits, pagination, nil
}
