package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veen-app/veen-api/internal/model"
)

func sampleResume() model.ResumeDocument {
	return model.ResumeDocument{
		Name:     "Jane Doe",
		Title:    "Backend Engineer",
		Email:    "jane@example.com",
		Phone:    "+1 555 0100",
		Location: "Berlin",
		LinkedIn: "linkedin.com/in/jane",
		GitHub:   "github.com/jane",
		Summary:  "Builds APIs.",
		Experience: []model.ExperienceEntry{
			{ID: 1, Title: "Engineer", Company: "Acme", Duration: "2020-2023", Description: "Wrote Go services"},
			{ID: 2, Title: "Intern", Company: "Initech", Duration: "2019", Description: "Fixed bugs"},
		},
		Education: []model.EducationEntry{{ID: 1, Degree: "BSc Computer Science", Institution: "TU Berlin", Duration: "2015-2019"}},
		Skills:    []string{"Go", "SQL"},
		Projects:  []string{"veen"},
	}
}

func TestMerge_NoOverlapKeepsOriginal(t *testing.T) {
	original := sampleResume()

	merged := Merge([]byte(`{"unrelated": "value", "score": 7}`), original)

	assert.Equal(t, original, merged)
}

func TestMerge_NonObjectKeepsOriginal(t *testing.T) {
	original := sampleResume()

	assert.Equal(t, original, Merge([]byte(`["a", "b"]`), original))
	assert.Equal(t, original, Merge([]byte(`not json`), original))
}

func TestMerge_EmptyValuesFallBack(t *testing.T) {
	original := sampleResume()

	merged := Merge([]byte(`{"name": "", "summary": "   ", "skills": []}`), original)

	assert.Equal(t, original.Name, merged.Name)
	assert.Equal(t, original.Summary, merged.Summary)
	assert.Equal(t, original.Skills, merged.Skills)
}

func TestMerge_AIKeyVariants(t *testing.T) {
	ai := `{
		"name": "Jane D.",
		"contact": {"email": "jd@example.com", "phone": "", "location": "Munich"},
		"links": {"LinkedIn": "linkedin.com/in/jd"},
		"professional_summary": "Ships reliable Go services.",
		"skills": ["Go", "go", "Kubernetes"],
		"projects": [{"name": "veen", "description": "resume tailoring"}, "OSS maintainer"]
	}`

	merged := Merge([]byte(ai), sampleResume())

	assert.Equal(t, "Jane D.", merged.Name)
	assert.Equal(t, "Backend Engineer", merged.Title)
	assert.Equal(t, "jd@example.com", merged.Email)
	assert.Equal(t, "+1 555 0100", merged.Phone)
	assert.Equal(t, "Munich", merged.Location)
	assert.Equal(t, "linkedin.com/in/jd", merged.LinkedIn)
	assert.Equal(t, "github.com/jane", merged.GitHub)
	assert.Equal(t, "Ships reliable Go services.", merged.Summary)
	assert.Equal(t, []string{"Go", "Kubernetes"}, merged.Skills)
	assert.Equal(t, []string{"veen - resume tailoring", "OSS maintainer"}, merged.Projects)
}

func TestMerge_SkillsAsCommaString(t *testing.T) {
	merged := Merge([]byte(`{"skills": "Go, Postgres , ,Docker"}`), sampleResume())

	assert.Equal(t, []string{"Go", "Postgres", "Docker"}, merged.Skills)
}

func TestMerge_ExperiencePerEntry(t *testing.T) {
	ai := `{"professional_experience": [
		{"title": "Senior Engineer", "description": "Led the payments team"},
		"Automated releases",
		{"title": "Freelancer", "company": "Self", "duration": "2024"}
	]}`

	merged := Merge([]byte(ai), sampleResume())

	assert.Len(t, merged.Experience, 3)
	assert.Equal(t, model.ExperienceEntry{
		ID: 1, Title: "Senior Engineer", Company: "Acme", Duration: "2020-2023", Description: "Led the payments team",
	}, merged.Experience[0])
	assert.Equal(t, model.ExperienceEntry{
		ID: 2, Title: "Intern", Company: "Initech", Duration: "2019", Description: "Automated releases",
	}, merged.Experience[1])
	assert.Equal(t, 3, merged.Experience[2].ID)
	assert.Equal(t, "Freelancer", merged.Experience[2].Title)
}

func TestMerge_ShorterAIExperienceKeepsTail(t *testing.T) {
	merged := Merge([]byte(`{"experience": [{"description": "Rewritten"}]}`), sampleResume())

	assert.Len(t, merged.Experience, 2)
	assert.Equal(t, "Rewritten", merged.Experience[0].Description)
	assert.Equal(t, sampleResume().Experience[1], merged.Experience[1])
}

func TestMerge_StringEducation(t *testing.T) {
	t.Run("does not replace structured education", func(t *testing.T) {
		merged := Merge([]byte(`{"education": "BSc CS, TU Berlin"}`), sampleResume())
		assert.Equal(t, sampleResume().Education, merged.Education)
	})

	t.Run("fills empty education", func(t *testing.T) {
		merged := Merge([]byte(`{"education": "BSc CS, TU Berlin"}`), model.ResumeDocument{})
		assert.Equal(t, []model.EducationEntry{{ID: 1, Degree: "BSc CS, TU Berlin"}}, merged.Education)
	})

	t.Run("structured entries merge per field", func(t *testing.T) {
		merged := Merge([]byte(`{"education": [{"degree": "MSc", "school": "LMU"}]}`), sampleResume())
		assert.Equal(t, []model.EducationEntry{{ID: 1, Degree: "MSc", Institution: "LMU", Duration: "2015-2019"}}, merged.Education)
	})
}

func TestMerge_DoesNotMutateOriginal(t *testing.T) {
	original := sampleResume()

	_ = Merge([]byte(`{"experience": [{"title": "Changed"}], "skills": ["Rust"]}`), original)

	assert.Equal(t, sampleResume(), original)
}

func TestFromJSON(t *testing.T) {
	doc := FromJSON([]byte(`{"name": "Sam", "email": "sam@example.com", "experience": [{"title": "Dev", "company": "X"}]}`))

	assert.Equal(t, "Sam", doc.Name)
	assert.Equal(t, "sam@example.com", doc.Email)
	assert.Equal(t, []model.ExperienceEntry{{ID: 1, Title: "Dev", Company: "X"}}, doc.Experience)
	assert.Nil(t, doc.Skills)
}

func TestMerge_WrongShapeFallsThroughToNextKey(t *testing.T) {
	t.Run("object summary does not hide string summary", func(t *testing.T) {
		merged := Merge([]byte(`{"professional_summary": {"text": "x"}, "summary": "AI summary"}`), model.ResumeDocument{Summary: "orig"})
		assert.Equal(t, "AI summary", merged.Summary)
	})

	t.Run("object contact does not hide email", func(t *testing.T) {
		merged := Merge([]byte(`{"contact": {"email": {"primary": "a@b.c"}}, "email": "jd@example.com"}`), sampleResume())
		assert.Equal(t, "jd@example.com", merged.Email)
	})

	t.Run("string experience does not hide experience array", func(t *testing.T) {
		merged := Merge([]byte(`{"professional_experience": "see below", "experience": [{"title": "Eng", "company": "Acme"}]}`), model.ResumeDocument{})
		assert.Equal(t, []model.ExperienceEntry{{ID: 1, Title: "Eng", Company: "Acme"}}, merged.Experience)
	})

	t.Run("array education is preferred over string", func(t *testing.T) {
		merged := Merge([]byte(`{"education": [{"degree": "MSc", "institution": "LMU"}]}`), model.ResumeDocument{})
		assert.Equal(t, []model.EducationEntry{{ID: 1, Degree: "MSc", Institution: "LMU"}}, merged.Education)
	})

	t.Run("object skills fall back to original", func(t *testing.T) {
		merged := Merge([]byte(`{"skills": {"languages": ["Go"]}}`), sampleResume())
		assert.Equal(t, sampleResume().Skills, merged.Skills)
	})
}
