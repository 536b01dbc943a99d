package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResumeDocument_AssignIDs(t *testing.T) {
	doc := ResumeDocument{
		Experience: []ExperienceEntry{{Title: "A"}, {ID: 4, Title: "B"}, {Title: "C"}},
		Education:  []EducationEntry{{Degree: "BSc"}, {Degree: "MSc"}},
	}
	doc.AssignIDs()

	assert.Equal(t, 5, doc.Experience[0].ID)
	assert.Equal(t, 4, doc.Experience[1].ID)
	assert.Equal(t, 6, doc.Experience[2].ID)
	assert.Equal(t, 1, doc.Education[0].ID)
	assert.Equal(t, 2, doc.Education[1].ID)
}

func TestResumeDocument_AddExperience(t *testing.T) {
	doc := ResumeDocument{}
	assert.Equal(t, 1, doc.AddExperience(ExperienceEntry{Title: "First"}))
	assert.Equal(t, 2, doc.AddExperience(ExperienceEntry{ID: 99, Title: "Second"}))

	doc.Experience = doc.Experience[1:]
	assert.Equal(t, 3, doc.AddExperience(ExperienceEntry{Title: "Third"}))
	assert.Len(t, doc.Experience, 2)
}
