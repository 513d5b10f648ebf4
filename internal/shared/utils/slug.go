package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
)

// GenerateSlug derives a URL-safe identifier from a title:
// lowercase, strip everything outside word chars/whitespace/hyphen, collapse
// runs of whitespace/underscore/hyphen into one hyphen, trim hyphens.
// An empty result falls back to "rascunho-{timestamp}".
//
// A slug is assigned exactly once, at first persistence; it is never
// recomputed when the title changes later.
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return fmt.Sprintf("rascunho-%d", time.Now().UnixMilli())
	}
	return slug
}
