// Package validation holds the field checks shared by the submission handlers.
package validation

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EmailPattern is the local@domain.tld shape. No DNS or MX lookups are made.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s matches EmailPattern.
func IsEmail(s string) bool {
	return EmailPattern.MatchString(s)
}

// HasAtSign is the weaker check used by the newsletter and waitlist endpoints.
// "x@y" passes here and fails IsEmail.
func HasAtSign(s string) bool {
	return s != "" && strings.Contains(s, "@")
}

// NormalizeEmail trims and lowercases an address before storage.
func NormalizeEmail(s string) string {
	// cases.Caser keeps state between calls and must not be shared across goroutines.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// FirstNonEmpty returns the first value that is non-empty after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
