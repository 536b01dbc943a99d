package resume

import (
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/veen-app/veen-api/internal/model"
)

// Merge reconciles an AI response with the original resume. For every
// field the AI value is used when present and non-empty, otherwise the
// original value is kept. Experience is merged entry by entry so a partial
// AI entry never blanks out the original title, company or dates. A bare
// string education (the shape Gemini returns) only fills an empty original.
//
// Merge never fails: non-object input returns a copy of the original.
func Merge(aiJSON []byte, original model.ResumeDocument) model.ResumeDocument {
	merged := clone(original)

	ai := gjson.ParseBytes(aiJSON)
	if !ai.IsObject() {
		return merged
	}

	merged.Name = firstString(ai, nameKeys, original.Name)
	merged.Title = firstString(ai, titleKeys, original.Title)
	merged.Email = firstString(ai, emailKeys, original.Email)
	merged.Phone = firstString(ai, phoneKeys, original.Phone)
	merged.Location = firstString(ai, locationKeys, original.Location)
	merged.LinkedIn = firstString(ai, linkedInKeys, original.LinkedIn)
	merged.GitHub = firstString(ai, gitHubKeys, original.GitHub)
	merged.Summary = firstString(ai, summaryKeys, original.Summary)

	merged.Experience = mergeExperience(lookupList(ai, experienceKeys, hasItems), merged.Experience)
	merged.Education = mergeEducation(lookupList(ai, educationKeys, hasItems), merged.Education)

	if skills := stringList(lookupList(ai, skillsKeys, hasStrings)); len(skills) > 0 {
		merged.Skills = dedupe(skills)
	}
	if projects := projectList(lookupList(ai, projectsKeys, hasProjects)); len(projects) > 0 {
		merged.Projects = projects
	}

	return merged
}

// FromJSON reads an AI-shaped or builder-shaped document on its own.
func FromJSON(raw []byte) model.ResumeDocument {
	return Merge(raw, model.ResumeDocument{})
}

func clone(doc model.ResumeDocument) model.ResumeDocument {
	out := doc
	out.Experience = slices.Clone(doc.Experience)
	out.Education = slices.Clone(doc.Education)
	out.Skills = slices.Clone(doc.Skills)
	out.Projects = slices.Clone(doc.Projects)
	return out
}

// lookup returns the first candidate path whose value is usable. A key that
// exists with the wrong shape falls through to the next candidate.
func lookup(obj gjson.Result, keys []string, usable func(gjson.Result) bool) gjson.Result {
	for _, key := range keys {
		if r := obj.Get(key); r.Exists() && usable(r) {
			return r
		}
	}
	return gjson.Result{}
}

// lookupList prefers an array candidate and only then accepts a string one.
func lookupList(obj gjson.Result, keys []string, usable func(gjson.Result) bool) gjson.Result {
	if r := lookup(obj, keys, func(r gjson.Result) bool { return r.IsArray() && usable(r) }); r.Exists() {
		return r
	}
	return lookup(obj, keys, func(r gjson.Result) bool { return r.Type == gjson.String && usable(r) })
}

func hasScalar(r gjson.Result) bool { return scalar(r) != "" }

func hasItems(r gjson.Result) bool {
	if r.IsArray() {
		return len(r.Array()) > 0
	}
	return strings.TrimSpace(r.String()) != ""
}

func hasStrings(r gjson.Result) bool { return len(stringList(r)) > 0 }

func hasProjects(r gjson.Result) bool { return len(projectList(r)) > 0 }

func firstString(obj gjson.Result, keys []string, fallback string) string {
	if s := scalar(lookup(obj, keys, hasScalar)); s != "" {
		return s
	}
	return fallback
}

// scalar returns a trimmed string for string and number results, and a
// newline-joined list for arrays of scalars.
func scalar(r gjson.Result) string {
	switch {
	case r.Type == gjson.String || r.Type == gjson.Number:
		return strings.TrimSpace(r.String())
	case r.IsArray():
		return strings.Join(stringList(r), "\n")
	}
	return ""
}

func stringList(r gjson.Result) []string {
	var out []string
	switch {
	case r.IsArray():
		for _, item := range r.Array() {
			if item.Type == gjson.String || item.Type == gjson.Number {
				if s := strings.TrimSpace(item.String()); s != "" {
					out = append(out, s)
				}
			}
		}
	case r.Type == gjson.String:
		for _, part := range strings.Split(r.String(), ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func orElse(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func mergeExperience(ai gjson.Result, original []model.ExperienceEntry) []model.ExperienceEntry {
	if !ai.IsArray() {
		return original
	}
	items := ai.Array()

	size := len(original)
	if len(items) > size {
		size = len(items)
	}
	nextID := 0
	for _, e := range original {
		if e.ID > nextID {
			nextID = e.ID
		}
	}

	out := make([]model.ExperienceEntry, 0, size)
	for i := 0; i < size; i++ {
		var base model.ExperienceEntry
		hasBase := i < len(original)
		if hasBase {
			base = original[i]
		}
		if i >= len(items) {
			out = append(out, base)
			continue
		}

		item := items[i]
		var entry model.ExperienceEntry
		if item.IsObject() {
			entry = model.ExperienceEntry{
				Title:       firstString(item, expTitleKeys, base.Title),
				Company:     firstString(item, expCompanyKeys, base.Company),
				Duration:    firstString(item, expDurationKeys, base.Duration),
				Description: firstString(item, expDescriptionKeys, base.Description),
			}
		} else {
			entry = base
			entry.Description = orElse(scalar(item), base.Description)
		}

		if hasBase {
			entry.ID = base.ID
		} else {
			nextID++
			entry.ID = nextID
		}
		out = append(out, entry)
	}
	return out
}

func mergeEducation(ai gjson.Result, original []model.EducationEntry) []model.EducationEntry {
	if ai.Type == gjson.String {
		if len(original) > 0 {
			return original
		}
		return []model.EducationEntry{{ID: 1, Degree: strings.TrimSpace(ai.String())}}
	}
	if !ai.IsArray() {
		return original
	}
	items := ai.Array()

	size := len(original)
	if len(items) > size {
		size = len(items)
	}
	nextID := 0
	for _, e := range original {
		if e.ID > nextID {
			nextID = e.ID
		}
	}

	out := make([]model.EducationEntry, 0, size)
	for i := 0; i < size; i++ {
		var base model.EducationEntry
		hasBase := i < len(original)
		if hasBase {
			base = original[i]
		}
		if i >= len(items) {
			out = append(out, base)
			continue
		}

		item := items[i]
		var entry model.EducationEntry
		if item.IsObject() {
			entry = model.EducationEntry{
				Degree:      firstString(item, eduDegreeKeys, base.Degree),
				Institution: firstString(item, eduInstitutionKeys, base.Institution),
				Duration:    firstString(item, eduDurationKeys, base.Duration),
			}
		} else if hasBase {
			// an unstructured line does not replace a structured entry
			entry = base
		} else {
			entry = model.EducationEntry{Degree: scalar(item)}
		}

		if hasBase {
			entry.ID = base.ID
		} else {
			nextID++
			entry.ID = nextID
		}
		out = append(out, entry)
	}
	return out
}

func projectList(r gjson.Result) []string {
	if !r.IsArray() {
		return stringList(r)
	}
	var out []string
	for _, item := range r.Array() {
		if item.IsObject() {
			name := firstString(item, projectNameKeys, "")
			desc := firstString(item, projectDescKeys, "")
			switch {
			case name != "" && desc != "":
				out = append(out, name+" - "+desc)
			case name != "":
				out = append(out, name)
			case desc != "":
				out = append(out, desc)
			}
			continue
		}
		if s := scalar(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
