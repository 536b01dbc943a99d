package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/veen-app/veen-api/internal/model"
	"github.com/veen-app/veen-api/internal/service"
)

// fakeProvider replays scripted answers and counts calls.
type fakeProvider struct {
	name string

	mu      sync.Mutex
	calls   int
	answers []fakeAnswer
	prompts []string
}

type fakeAnswer struct {
	text string
	err  error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) GenerateJSON(ctx context.Context, systemInstruction, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	idx := f.calls
	f.calls++
	if idx >= len(f.answers) {
		idx = len(f.answers) - 1
	}
	return f.answers[idx].text, f.answers[idx].err
}

func (f *fakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func answering(name string, answers ...fakeAnswer) *fakeProvider {
	return &fakeProvider{name: name, answers: answers}
}

func rateLimited(name string) fakeAnswer {
	return fakeAnswer{err: &service.StatusError{Provider: name, Code: 429, Message: "rate limited"}}
}

func instantRetry() service.RetryPolicy {
	p := service.DefaultRetryPolicy()
	p.Sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return p
}

type fakePDF struct {
	resumeCalls int
	textCalls   int
	lastDoc     model.ResumeDocument
	lastText    string
	err         error
}

func (f *fakePDF) GenerateResumePDF(ctx context.Context, doc model.ResumeDocument) ([]byte, error) {
	f.resumeCalls++
	f.lastDoc = doc
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-resume"), nil
}

func (f *fakePDF) GenerateTextOnlyPDF(ctx context.Context, text string) ([]byte, error) {
	f.textCalls++
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-text"), nil
}

func (f *fakePDF) FileName(name, suffix string) string {
	if name == "" {
		name = "tailored-resume"
	}
	return name + suffix + ".pdf"
}
