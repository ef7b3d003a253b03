package utils

import (
	"path"
	"regexp"
	"strings"
)

var (
	urlSlugRegex      = regexp.MustCompile(`^[a-z0-9\p{Hangul}]+(?:-[a-z0-9\p{Hangul}]+)*$`)
	unsafeFilePattern = regexp.MustCompile(`[^a-zA-Z0-9._\-\p{Hangul}]+`)
)

// IsValidUrlSlug reports whether s is lower-case words joined by single dashes.
func IsValidUrlSlug(s string) bool {
	return urlSlugRegex.MatchString(s)
}

// SanitizeFilename strips directories and replaces characters unsafe in object keys.
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeFilePattern.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}
