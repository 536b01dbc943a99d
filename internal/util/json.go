package util

import "strings"

// CleanJSON strips a markdown code fence and any chatter around the outermost
// JSON object in an LLM answer.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		if nl := strings.Index(clean, "\n"); nl >= 0 && !strings.HasPrefix(strings.TrimSpace(clean[:nl]), "{") {
			clean = clean[nl+1:]
		}
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
		clean = strings.TrimSpace(clean)
	}

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}
	return clean
}
