// File: internal/profile/esutil/util.go
// Package esutil converts profile rows into search index documents.
package esutil

import (
	"encoding/json"
	"fmt"
	"time"

	"devlink_backend/internal/profile"
)

// searchDoc mirrors the mapping of the profiles index.
type searchDoc struct {
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	Status         string    `json:"status"`
	Company        string    `json:"company,omitempty"`
	Website        string    `json:"website,omitempty"`
	Location       string    `json:"location,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	GithubUsername string    `json:"github_username,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileToSearchDoc serializes a profile for indexing.
func ProfileToSearchDoc(p *profile.Profile) (string, error) {
	doc := searchDoc{
		UserID:    p.UserID.String(),
		Status:    p.Status,
		Skills:    p.Skills,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User != nil && p.User.Name != nil {
		doc.UserName = *p.User.Name
	}
	if p.Company != nil {
		doc.Company = *p.Company
	}
	if p.Website != nil {
		doc.Website = *p.Website
	}
	if p.Location != nil {
		doc.Location = *p.Location
	}
	if p.Bio != nil {
		doc.Bio = *p.Bio
	}
	if p.GithubUsername != nil {
		doc.GithubUsername = *p.GithubUsername
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile %s for indexing: %w", p.ID, err)
	}
	return string(payload), nil
}
