package profile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"node", "react", "mongo"}, SplitSkills("node, react , mongo"))
	assert.Equal(t, []string{"go"}, SplitSkills("go"))
	// Trailing and doubled commas produce empty tokens, matching what
	// existing clients already receive.
	assert.Equal(t, []string{"go", ""}, SplitSkills("go,"))
	assert.Equal(t, []string{"go", "", "rust"}, SplitSkills("go,,rust"))
	assert.Equal(t, []string{""}, SplitSkills(""))
}

func TestBuildUpsert_RequiredFieldsOnly(t *testing.T) {
	ownerID := uuid.New()
	req := UpsertProfileRequest{
		Status: "Developer",
		Skills: "go, postgres",
	}

	p, columns := BuildUpsert(ownerID, req)

	assert.Equal(t, ownerID, p.UserID)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"go", "postgres"}, []string(p.Skills))
	assert.Nil(t, p.Company)
	assert.Nil(t, p.Bio)
	assert.ElementsMatch(t, []string{"status", "skills", "updated_at"}, columns)
}

func TestBuildUpsert_SuppliedFieldsAddColumns(t *testing.T) {
	company := "Acme"
	bio := "Hello"
	youtube := "https://youtube.com/c/acme"
	req := UpsertProfileRequest{
		Status:  "Senior Developer",
		Skills:  "go",
		Company: &company,
		Bio:     &bio,
		Youtube: &youtube,
	}

	p, columns := BuildUpsert(uuid.New(), req)

	assert.Equal(t, &company, p.Company)
	assert.Equal(t, &bio, p.Bio)
	assert.Equal(t, &youtube, p.Social.Youtube)
	assert.Contains(t, columns, "company")
	assert.Contains(t, columns, "bio")
	assert.Contains(t, columns, "social_youtube")
	assert.NotContains(t, columns, "website")
	assert.NotContains(t, columns, "social_twitter")
}

func TestBuildUpsert_EmptyStringIsAbsent(t *testing.T) {
	// An explicit empty string is treated like an absent field, so it
	// never reaches the update column set and cannot blank a stored
	// value.
	empty := ""
	req := UpsertProfileRequest{
		Status:   "Developer",
		Skills:   "go",
		Location: &empty,
		Youtube:  &empty,
	}

	p, columns := BuildUpsert(uuid.New(), req)

	assert.Nil(t, p.Location)
	assert.Nil(t, p.Social.Youtube)
	assert.NotContains(t, columns, "location")
	assert.NotContains(t, columns, "social_youtube")
	assert.ElementsMatch(t, []string{"status", "skills", "updated_at"}, columns)
}
