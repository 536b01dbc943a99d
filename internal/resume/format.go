package resume

import (
	"strings"
	"unicode/utf8"

	"github.com/veen-app/veen-api/internal/model"
)

const contactPrefix = "Contact: "

// FormatPlainText renders the preview shown next to the original resume.
// Sections appear in a fixed order and empty sections are left out.
func FormatPlainText(doc model.ResumeDocument) string {
	var b strings.Builder

	name := oneLine(doc.Name)
	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(oneLine(doc.Title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(name)))
	b.WriteString("\n\n")

	if contact := ContactLine(doc); contact != "" {
		b.WriteString(contactPrefix)
		b.WriteString(contact)
		b.WriteString("\n")
	}
	if links := linksLine(doc); links != "" {
		b.WriteString("Links: ")
		b.WriteString(links)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if doc.Summary != "" {
		section(&b, "PROFESSIONAL SUMMARY", 25)
		b.WriteString(doc.Summary)
		b.WriteString("\n\n")
	}

	if len(doc.Experience) > 0 {
		section(&b, "EXPERIENCE", 10)
		for _, exp := range doc.Experience {
			b.WriteString(exp.Title)
			if exp.Company != "" {
				b.WriteString(" at ")
				b.WriteString(exp.Company)
			}
			if exp.Duration != "" {
				b.WriteString(" (")
				b.WriteString(exp.Duration)
				b.WriteString(")")
			}
			b.WriteString("\n")
			if exp.Description != "" {
				b.WriteString("\t- ")
				b.WriteString(exp.Description)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(doc.Skills) > 0 {
		section(&b, "SKILLS", 6)
		b.WriteString(strings.Join(doc.Skills, " | "))
		b.WriteString("\n\n")
	}

	if len(doc.Education) > 0 {
		section(&b, "EDUCATION", 10)
		for _, edu := range doc.Education {
			b.WriteString(edu.Degree)
			if edu.Institution != "" {
				b.WriteString(", ")
				b.WriteString(edu.Institution)
			}
			if edu.Duration != "" {
				b.WriteString(" (")
				b.WriteString(edu.Duration)
				b.WriteString(")")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(doc.Projects) > 0 {
		section(&b, "PROJECTS/CERTIFICATIONS", 25)
		b.WriteString(strings.Join(doc.Projects, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

func section(b *strings.Builder, header string, rule int) {
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", rule))
	b.WriteString("\n")
}

// ContactLine joins the non-empty email, phone and location with " | ".
func ContactLine(doc model.ResumeDocument) string {
	return joinNonEmpty(" | ", oneLine(doc.Email), oneLine(doc.Phone), oneLine(doc.Location))
}

func linksLine(doc model.ResumeDocument) string {
	var parts []string
	if doc.LinkedIn != "" {
		parts = append(parts, "LinkedIn ("+oneLine(doc.LinkedIn)+")")
	}
	if doc.GitHub != "" {
		parts = append(parts, "GitHub ("+oneLine(doc.GitHub)+")")
	}
	return strings.Join(parts, " | ")
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// oneLine keeps header fields on a single line so ParseHeader finds the
// contact line at a fixed offset.
func oneLine(s string) string {
	return lineBreaks.Replace(s)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// ParseHeader recovers the name and the contact line from text produced by
// FormatPlainText. The contact line is only looked for in the header block.
func ParseHeader(text string) (name, contact string) {
	lines := strings.Split(text, "\n")
	name = lines[0]
	for i := 4; i < len(lines) && lines[i] != ""; i++ {
		if strings.HasPrefix(lines[i], contactPrefix) {
			return name, strings.TrimPrefix(lines[i], contactPrefix)
		}
	}
	return name, ""
}
