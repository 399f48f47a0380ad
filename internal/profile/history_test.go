package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func expEntry(title string) ExperienceEntry {
	return ExperienceEntry{
		ID:      uuid.New(),
		Title:   title,
		Company: "Acme",
		From:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPrependEntry_NewestFirst(t *testing.T) {
	e1 := expEntry("first")
	e2 := expEntry("second")

	list := prependEntry(ExperienceList{}, e1)
	list = prependEntry(list, e2)

	assert.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestPrependEntry_DoesNotMutateOriginal(t *testing.T) {
	e1 := expEntry("first")
	original := ExperienceList{e1}

	_ = prependEntry(original, expEntry("second"))

	assert.Len(t, original, 1)
	assert.Equal(t, "first", original[0].Title)
}

func TestRemoveEntryByID(t *testing.T) {
	e1 := expEntry("keep")
	e2 := expEntry("drop")
	e3 := expEntry("keep too")
	list := ExperienceList{e1, e2, e3}

	updated, removed := removeEntryByID(list, e2.ID)

	assert.True(t, removed)
	assert.Len(t, updated, 2)
	assert.Equal(t, e1.ID, updated[0].ID)
	assert.Equal(t, e3.ID, updated[1].ID)
}

func TestRemoveEntryByID_UnknownIDIsNoOp(t *testing.T) {
	e1 := expEntry("only")
	list := ExperienceList{e1}

	updated, removed := removeEntryByID(list, uuid.New())

	assert.False(t, removed)
	assert.Len(t, updated, 1)
	assert.Equal(t, e1.ID, updated[0].ID)
}

func TestRemoveEntryByID_Education(t *testing.T) {
	e := EducationEntry{
		ID:           uuid.New(),
		School:       "State",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	list := EducationList{e}

	updated, removed := removeEntryByID(list, e.ID)

	assert.True(t, removed)
	assert.Empty(t, updated)
}
