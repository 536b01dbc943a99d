package model

import "strings"

type Plan string

const (
	PlanFree     Plan = "Free"
	PlanPro      Plan = "Pro"
	PlanUltimate Plan = "Ultimate"
)

// ParsePlan matches plan names case-insensitively.
func ParsePlan(raw string) (Plan, bool) {
	for _, p := range []Plan{PlanFree, PlanPro, PlanUltimate} {
		if strings.EqualFold(strings.TrimSpace(raw), string(p)) {
			return p, true
		}
	}
	return "", false
}

// AllowsProvider reports whether the plan may call the given vendor.
// Free is limited to gemini.
func (p Plan) AllowsProvider(provider Provider) bool {
	if p == PlanFree {
		return provider == ProviderGemini
	}
	return true
}

// AllowsPDFExport is false for the Free plan.
func (p Plan) AllowsPDFExport() bool {
	return p != PlanFree
}

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

func ParseProvider(raw string) (Provider, bool) {
	switch Provider(strings.ToLower(strings.TrimSpace(raw))) {
	case ProviderGemini:
		return ProviderGemini, true
	case ProviderOpenAI:
		return ProviderOpenAI, true
	}
	return "", false
}

// Alternate returns the other supported vendor.
func (p Provider) Alternate() Provider {
	if p == ProviderGemini {
		return ProviderOpenAI
	}
	return ProviderGemini
}

// DisplayName is the vendor name used in error messages.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGemini:
		return "Gemini"
	case ProviderOpenAI:
		return "OpenAI"
	}
	return string(p)
}
