// Package resume reconciles AI output with structured resumes and renders
// the plain-text preview.
package resume

// Candidate gjson paths for each logical field, checked in order. The first
// path holding a non-empty value wins.
var (
	nameKeys       = []string{"name"}
	titleKeys      = []string{"title"}
	emailKeys      = []string{"contact.email", "email"}
	phoneKeys      = []string{"contact.phone", "phone"}
	locationKeys   = []string{"contact.location", "location"}
	linkedInKeys   = []string{"links.LinkedIn", "links.linkedin", "linkedin"}
	gitHubKeys     = []string{"links.GitHub", "links.github", "github"}
	summaryKeys    = []string{"professional_summary", "summary"}
	experienceKeys = []string{"professional_experience", "experience"}
	skillsKeys     = []string{"skills"}
	educationKeys  = []string{"education"}
	projectsKeys   = []string{"projects"}
)

// Keys inside a single experience, education or project object.
var (
	expTitleKeys       = []string{"title", "role", "position"}
	expCompanyKeys     = []string{"company", "employer", "organization"}
	expDurationKeys    = []string{"duration", "dates", "period"}
	expDescriptionKeys = []string{"description", "bullets", "highlights"}

	eduDegreeKeys      = []string{"degree", "qualification"}
	eduInstitutionKeys = []string{"institution", "school", "university"}
	eduDurationKeys    = []string{"duration", "dates", "year"}

	projectNameKeys = []string{"name", "title"}
	projectDescKeys = []string{"description"}
)
