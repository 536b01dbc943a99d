package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/veen-app/veen-api/internal/model"
)

type PDFService struct {
	renderer PDFRenderer
	now      func() time.Time
}

func NewPDFService(renderer PDFRenderer) *PDFService {
	return &PDFService{renderer: renderer, now: time.Now}
}

// GenerateResumePDF lays out a structured resume on an A4 page.
func (s *PDFService) GenerateResumePDF(ctx context.Context, doc model.ResumeDocument) ([]byte, error) {
	html, err := BuildResumeHTML(doc)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("render resume pdf: %w", err)
	}
	return pdf, nil
}

// GenerateTextOnlyPDF prints plain text as-is.
func (s *PDFService) GenerateTextOnlyPDF(ctx context.Context, text string) ([]byte, error) {
	html, err := BuildTextHTML(text)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("render text pdf: %w", err)
	}
	return pdf, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName builds "<Name_With_Underscores><suffix>-<unix millis>.pdf".
func (s *PDFService) FileName(name, suffix string) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = "tailored-resume"
	}
	base = whitespaceRun.ReplaceAllString(base, "_")
	return fmt.Sprintf("%s%s-%d.pdf", base, suffix, s.now().UnixMilli())
}

var templateFuncs = template.FuncMap{
	"bullets": func(description string) []string {
		var out []string
		for _, line := range strings.Split(description, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	},
	"joinNonEmpty": func(sep string, parts ...string) string {
		var out []string
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				out = append(out, p)
			}
		}
		return strings.Join(out, sep)
	},
	"join": strings.Join,
}

var resumeTemplate = template.Must(template.New("resume").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #333333; font-size: 10pt; }
h1 { font-size: 24pt; text-align: center; margin: 0; color: #000000; }
.title { font-size: 14pt; text-align: center; color: #2563eb; }
.contact { text-align: center; color: #666666; }
hr { border: 0; border-top: 2px solid #2563eb; margin: 12px 0; }
h2 { font-size: 14pt; color: #000000; margin: 14px 0 6px; }
.entry-head { font-size: 11pt; }
.entry-head b { color: #000000; }
.muted { color: #666666; }
ul { margin: 4px 0 8px 15px; padding: 0; }
p.summary { text-align: justify; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<div class="title">{{.Title}}</div>
{{with joinNonEmpty " | " .Email .Phone .Location}}<div class="contact">{{.}}</div>{{end}}
{{if or .LinkedIn .GitHub}}<div class="contact">{{with .LinkedIn}}LinkedIn: {{.}}{{end}}{{if and .LinkedIn .GitHub}} | {{end}}{{with .GitHub}}GitHub: {{.}}{{end}}</div>{{end}}
<hr>
{{if .Summary}}<h2>PROFESSIONAL SUMMARY</h2>
<p class="summary">{{.Summary}}</p>{{end}}
{{if .Experience}}<h2>PROFESSIONAL EXPERIENCE</h2>
{{range .Experience}}<div class="entry-head"><b>{{.Title}}</b>{{with .Company}} | {{.}}{{end}}{{with .Duration}} <span class="muted">({{.}})</span>{{end}}</div>
{{with bullets .Description}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{end}}{{end}}
{{if .Education}}<h2>EDUCATION</h2>
{{range .Education}}<div class="entry-head"><b>{{.Degree}}</b>{{with .Institution}} | {{.}}{{end}}{{with .Duration}} <span class="muted">({{.}})</span>{{end}}</div>
{{end}}{{end}}
{{if .Skills}}<h2>SKILLS</h2>
<p>{{join .Skills " • "}}</p>{{end}}
{{if .Projects}}<h2>PROJECTS &amp; CERTIFICATIONS</h2>
<ul>{{range .Projects}}<li>{{.}}</li>{{end}}</ul>{{end}}
</body>
</html>
`))

var textTemplate = template.Must(template.New("text").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; color: #000000; }
pre { white-space: pre-wrap; font-family: inherit; line-height: 1.3; }
</style>
</head>
<body><pre>{{.}}</pre></body>
</html>
`))

func BuildResumeHTML(doc model.ResumeDocument) (string, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return buf.String(), nil
}

func BuildTextHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, text); err != nil {
		return "", fmt.Errorf("execute text template: %w", err)
	}
	return buf.String(), nil
}
