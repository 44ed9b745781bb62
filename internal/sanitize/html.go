package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes.
	// Used for fields that must be plain text (titles, locations, names).
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe user-generated content with basic formatting.
	// Used for event descriptions.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML tags and returns trimmed plain text.
func Text(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// HTML sanitizes HTML content, keeping safe formatting tags and removing
// scripts, iframes, event handlers and style attributes.
func HTML(input string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(input))
}
