// File: internal/profile/merge.go
package profile

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SplitSkills turns the comma-separated skills input into the stored
// list: split on ',' and trim whitespace around each token. Empty
// tokens (from a trailing or doubled comma) are kept as produced, for
// compatibility with existing clients.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, len(parts))
	for i, p := range parts {
		skills[i] = strings.TrimSpace(p)
	}
	return skills
}

// supplied reports whether an optional field carries a usable value.
// An explicit empty string counts as absent, so sending "" can never
// blank a stored value.
func supplied(v *string) bool {
	return v != nil && *v != ""
}

// BuildUpsert maps the partial-update payload onto a Profile value and
// reports which columns the payload actually supplied. The column set
// drives the ON CONFLICT update so fields absent or empty in the
// payload are left untouched on an existing row.
func BuildUpsert(ownerID uuid.UUID, req UpsertProfileRequest) (*Profile, []string) {
	p := &Profile{
		UserID: ownerID,
		Status: req.Status,
		Skills: pq.StringArray(SplitSkills(req.Skills)),
	}
	// Required fields and updated_at are always written.
	columns := []string{"status", "skills", "updated_at"}

	if supplied(req.Company) {
		p.Company = req.Company
		columns = append(columns, "company")
	}
	if supplied(req.Website) {
		p.Website = req.Website
		columns = append(columns, "website")
	}
	if supplied(req.Location) {
		p.Location = req.Location
		columns = append(columns, "location")
	}
	if supplied(req.Bio) {
		p.Bio = req.Bio
		columns = append(columns, "bio")
	}
	if supplied(req.GithubUsername) {
		p.GithubUsername = req.GithubUsername
		columns = append(columns, "github_username")
	}

	// Social links merge individually: only supplied sub-fields change.
	if supplied(req.Youtube) {
		p.Social.Youtube = req.Youtube
		columns = append(columns, "social_youtube")
	}
	if supplied(req.Facebook) {
		p.Social.Facebook = req.Facebook
		columns = append(columns, "social_facebook")
	}
	if supplied(req.Twitter) {
		p.Social.Twitter = req.Twitter
		columns = append(columns, "social_twitter")
	}
	if supplied(req.Instagram) {
		p.Social.Instagram = req.Instagram
		columns = append(columns, "social_instagram")
	}
	if supplied(req.Linkedin) {
		p.Social.Linkedin = req.Linkedin
		columns = append(columns, "social_linkedin")
	}

	return p, columns
}
