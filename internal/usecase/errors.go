package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veen-app/veen-api/internal/model"
)

// ValidationError is a request missing required fields or carrying values
// outside the accepted set.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(names, ", "))
}

// ConfigurationError means no credential is configured for any provider the
// request may use.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("Unsupported AI provider: %s", e.Provider)
}

// PlanRestrictionError is returned when the plan tier does not include the
// requested provider or feature.
type PlanRestrictionError struct {
	Plan    model.Plan
	Feature string
}

func (e *PlanRestrictionError) Error() string {
	return fmt.Sprintf("%s is not available on the %s plan", e.Feature, e.Plan)
}

// ProviderError is a vendor call that failed after retries or returned
// content that is not a JSON object.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
