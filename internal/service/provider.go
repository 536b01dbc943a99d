package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// LLMProvider sends one prompt to a vendor completion endpoint and returns
// the structured JSON text found in the vendor's response. Implementations
// make exactly one attempt per call.
type LLMProvider interface {
	Name() string
	GenerateJSON(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// ErrNoStructuredContent is returned when a 2xx vendor response carries no
// JSON payload where the vendor is expected to put it.
var ErrNoStructuredContent = errors.New("no structured content received")

// StatusError is a non-2xx vendor response.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s responded with status %d", e.Provider, e.Code)
	}
	return fmt.Sprintf("%s responded with status %d: %s", e.Provider, e.Code, e.Message)
}

// IsRateLimited reports whether err is a vendor 429.
func IsRateLimited(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests
	}
	return false
}
