package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable id for one recommendation run.
// Format: {operation}-{label}-{8charHexUUID}
//
// Example:
//   - Input: operation="recommend", label="Downtown Vancouver"
//   - Output: "recommend-downtown-vancouver-a3f8e2b1"
//
// An empty label is omitted.
func GenerateRunID(operation, label string) string {
	slug := slugify(label)
	if slug == "" {
		return operation + "-" + generateShortUUID()
	}
	return operation + "-" + slug + "-" + generateShortUUID()
}

// slugify lowercases the label and collapses anything that is not a letter or
// digit into single hyphens.
func slugify(label string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
