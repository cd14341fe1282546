// internal/utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify derives a URL-safe identifier from a product name: lowercase,
// whitespace collapsed to hyphens, everything outside [a-z0-9-] stripped.
// "Gaming PC #1" becomes "gaming-pc-1".
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = nonSlugRe.ReplaceAllString(slug, "")
	return slug
}
