// Package ai holds the model-backed collaborators of the generator: duty
// text generation for job descriptions and entity-field extraction from
// registry statement text.
//
// Both collaborators fail soft. An unavailable client or a model error
// never aborts a batch; duties degrade to a short diagnostic or an empty
// string and extraction degrades to nil.
package ai

import (
	"context"
	"strings"
)

// DutyGenerator produces a bulleted duty list for a position title.
type DutyGenerator interface {
	GenerateDuties(ctx context.Context, position string) string
}

// Extractor pulls employer requisites out of raw registry statement text.
// A nil result means extraction was not possible.
type Extractor interface {
	ExtractEntityFields(ctx context.Context, rawText string) map[string]string
}

// SanitizeJSON strips markdown code fences and any prose around the
// outermost JSON object, leaving just the object text. Models wrap JSON
// answers inconsistently; this undoes the common wrappings.
func SanitizeJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "```") {
		s = strings.ReplaceAll(s, "```json", "")
		s = strings.ReplaceAll(s, "```", "")
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end >= start {
		s = s[start : end+1]
	}
	return s
}
