package model

// ResumeDocument is the structured resume edited by the builder and
// rewritten by the tailoring pipeline.
type ResumeDocument struct {
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Location   string            `json:"location"`
	LinkedIn   string            `json:"linkedin"`
	GitHub     string            `json:"github"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
	Projects   []string          `json:"projects"`
}

// ExperienceEntry ID is a sequence number local to the owning document.
type ExperienceEntry struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type EducationEntry struct {
	ID          int    `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
}

// AssignIDs gives every entry without an id the next free sequence number.
// Existing ids are left alone.
func (d *ResumeDocument) AssignIDs() {
	next := 0
	for _, e := range d.Experience {
		if e.ID > next {
			next = e.ID
		}
	}
	for i := range d.Experience {
		if d.Experience[i].ID == 0 {
			next++
			d.Experience[i].ID = next
		}
	}

	next = 0
	for _, e := range d.Education {
		if e.ID > next {
			next = e.ID
		}
	}
	for i := range d.Education {
		if d.Education[i].ID == 0 {
			next++
			d.Education[i].ID = next
		}
	}
}

// AddExperience appends an entry and returns the id it was given.
func (d *ResumeDocument) AddExperience(e ExperienceEntry) int {
	e.ID = 0
	for _, existing := range d.Experience {
		if existing.ID > e.ID {
			e.ID = existing.ID
		}
	}
	e.ID++
	d.Experience = append(d.Experience, e)
	return e.ID
}
