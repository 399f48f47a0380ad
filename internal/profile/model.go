// File: internal/profile/model.go
package profile

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"devlink_backend/internal/common"
	"devlink_backend/internal/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SocialLinks holds the optional social media links of a profile. It is
// embedded so the structure is always present on a profile, even when
// every link is empty.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty" gorm:"type:text"`
	Facebook  *string `json:"facebook,omitempty" gorm:"type:text"`
	Twitter   *string `json:"twitter,omitempty" gorm:"type:text"`
	Instagram *string `json:"instagram,omitempty" gorm:"type:text"`
	Linkedin  *string `json:"linkedin,omitempty" gorm:"type:text"`
}

// ExperienceEntry is one position in the employment history list.
type ExperienceEntry struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// EntryID returns the stable identity of the entry within its list.
func (e ExperienceEntry) EntryID() uuid.UUID { return e.ID }

// EducationEntry is one school in the education history list.
type EducationEntry struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// EntryID returns the stable identity of the entry within its list.
func (e EducationEntry) EntryID() uuid.UUID { return e.ID }

// ExperienceList is stored as a single JSONB document so the whole list
// is read and written together.
type ExperienceList []ExperienceEntry

// Value implements driver.Valuer for ExperienceList.
func (l ExperienceList) Value() (driver.Value, error) {
	if l == nil {
		l = ExperienceList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for ExperienceList.
func (l *ExperienceList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

// EducationList is stored as a single JSONB document.
type EducationList []EducationEntry

// Value implements driver.Valuer for EducationList.
func (l EducationList) Value() (driver.Value, error) {
	if l == nil {
		l = EducationList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for EducationList.
func (l *EducationList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

func scanJSONList(value interface{}, target interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("failed to scan history list: unsupported type %T", value)
	}
}

// Profile is the extended record kept one-to-one with a user.
type Profile struct {
	common.BaseModel
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	User           *user.User     `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Status         string         `gorm:"type:varchar(150);not null"`
	Company        *string        `gorm:"type:varchar(150)"`
	Website        *string        `gorm:"type:text"`
	Location       *string        `gorm:"type:varchar(150)"`
	Bio            *string        `gorm:"type:text"`
	GithubUsername *string        `gorm:"type:varchar(100)"`
	Skills         pq.StringArray `gorm:"type:text[];not null"`
	Social         SocialLinks    `gorm:"embedded;embeddedPrefix:social_"`
	Experience     ExperienceList `gorm:"type:jsonb;not null;default:'[]'"`
	Education      EducationList  `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}

// HistoryListName selects one of the two embedded history lists.
type HistoryListName string

const (
	ExperienceListName HistoryListName = "experience"
	EducationListName  HistoryListName = "education"
)

// --- DTOs for API ---

// UpsertProfileRequest carries the partial-update payload for create and
// update alike. Skills arrive as a single comma-separated string.
type UpsertProfileRequest struct {
	Status         string  `json:"status" binding:"required,max=150"`
	Skills         string  `json:"skills" binding:"required"`
	Company        *string `json:"company,omitempty" binding:"omitempty,max=150"`
	Website        *string `json:"website,omitempty" binding:"omitempty,max=2048"`
	Location       *string `json:"location,omitempty" binding:"omitempty,max=150"`
	Bio            *string `json:"bio,omitempty"`
	GithubUsername *string `json:"githubusername,omitempty" binding:"omitempty,max=100"`
	Youtube        *string `json:"youtube,omitempty" binding:"omitempty,max=2048"`
	Facebook       *string `json:"facebook,omitempty" binding:"omitempty,max=2048"`
	Twitter        *string `json:"twitter,omitempty" binding:"omitempty,max=2048"`
	Instagram      *string `json:"instagram,omitempty" binding:"omitempty,max=2048"`
	Linkedin       *string `json:"linkedin,omitempty" binding:"omitempty,max=2048"`
}

// AddExperienceRequest validates a new employment history entry.
type AddExperienceRequest struct {
	Title       string  `json:"title" binding:"required,max=150"`
	Company     string  `json:"company" binding:"required,max=150"`
	Location    *string `json:"location,omitempty" binding:"omitempty,max=150"`
	From        string  `json:"from" binding:"required,datetime=2006-01-02"`
	To          *string `json:"to,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Current     bool    `json:"current"`
	Description *string `json:"description,omitempty"`
}

// AddEducationRequest validates a new education history entry.
type AddEducationRequest struct {
	School       string  `json:"school" binding:"required,max=150"`
	Degree       string  `json:"degree" binding:"required,max=150"`
	FieldOfStudy string  `json:"fieldofstudy" binding:"required,max=150"`
	From         string  `json:"from" binding:"required,datetime=2006-01-02"`
	To           *string `json:"to,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Current      bool    `json:"current"`
	Description  *string `json:"description,omitempty"`
}

// ProfileResponse is the API representation of a profile, joined with
// the owning user's public fields.
type ProfileResponse struct {
	ID             uuid.UUID          `json:"id"`
	UserID         uuid.UUID          `json:"user_id"`
	User           *user.UserResponse `json:"user,omitempty"`
	Status         string             `json:"status"`
	Company        *string            `json:"company,omitempty"`
	Website        *string            `json:"website,omitempty"`
	Location       *string            `json:"location,omitempty"`
	Bio            *string            `json:"bio,omitempty"`
	GithubUsername *string            `json:"githubusername,omitempty"`
	Skills         []string           `json:"skills"`
	Social         SocialLinks        `json:"social"`
	Experience     []ExperienceEntry  `json:"experience"`
	Education      []EducationEntry   `json:"education"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ToProfileResponse converts a Profile model to its API representation.
func ToProfileResponse(p *Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		Status:         p.Status,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Skills:         []string(p.Skills),
		Social:         p.Social,
		Experience:     p.Experience,
		Education:      p.Education,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if resp.Experience == nil {
		resp.Experience = []ExperienceEntry{}
	}
	if resp.Education == nil {
		resp.Education = []EducationEntry{}
	}
	if p.User != nil {
		userResp := user.ToUserResponse(p.User)
		resp.User = &userResp
	}
	return resp
}
