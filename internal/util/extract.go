package util

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFormat is returned for uploads whose text cannot be read
// server side (legacy .doc). Callers fall back to pasted text.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractText returns the plain text of an uploaded resume. ext is the
// lower-case extension including the dot.
func ExtractText(path, ext string) (string, error) {
	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = ExtractPDFText(path)
	case ".docx":
		text, err = ExtractDocxText(path)
	case ".txt":
		var raw []byte
		raw, err = os.ReadFile(path)
		text = string(raw)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ExtractPDFText reads the text layer with MuPDF and falls back to the pure
// Go reader when MuPDF finds nothing.
func ExtractPDFText(path string) (string, error) {
	text, err := extractPDFFitz(path)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if err != nil {
		log.Printf("fitz extraction failed for %s: %v", path, err)
	}

	text, fallbackErr := extractPDFPlain(path)
	if fallbackErr != nil {
		if err != nil {
			return "", fmt.Errorf("failed to extract PDF text: %w", errors.Join(err, fallbackErr))
		}
		return "", fmt.Errorf("failed to extract PDF text: %w", fallbackErr)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text extracted from PDF (PDF might be empty or scanned)")
	}
	return text, nil
}

func extractPDFFitz(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n+1, err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}
	return fullText.String(), nil
}

func extractPDFPlain(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
	blankLines       = regexp.MustCompile(`\n{3,}`)
)

func ExtractDocxText(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer r.Close()

	return docxXMLToText(r.Editable().GetContent()), nil
}

// docxXMLToText flattens word/document.xml into lines, one per paragraph.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = blankLines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
