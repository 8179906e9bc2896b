// Package sanitize provides pure cleaning and screening functions for
// untrusted input before it reaches storage or business logic.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// MaxNameLength caps display names.
const MaxNameLength = 100

var (
	emailDisallowed = regexp.MustCompile(`[^a-z0-9@._+-]`)
	htmlTags        = regexp.MustCompile(`<[^>]*>`)

	// Indicators of an XSS payload. Matching any of these rejects the
	// value outright rather than attempting to repair it.
	xssPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)<iframe`),
		regexp.MustCompile(`(?i)<object`),
		regexp.MustCompile(`(?i)<embed`),
		regexp.MustCompile(`(?i)eval\(`),
		regexp.MustCompile(`(?i)expression\(`),
	}
)

// Input strips NUL and control characters (newline, tab, and carriage
// return survive) and trims surrounding whitespace.
func Input(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Email normalizes an email address: whitespace removed, lowercased,
// characters outside the permitted set stripped. Shape validation is the
// caller's job; this only cleans.
func Email(s string) string {
	cleaned := strings.Join(strings.Fields(s), "")
	cleaned = strings.ToLower(cleaned)
	return emailDisallowed.ReplaceAllString(cleaned, "")
}

// Name cleans a display name: control characters out, HTML tags removed,
// capped at MaxNameLength runes.
func Name(s string) string {
	cleaned := Input(s)
	cleaned = htmlTags.ReplaceAllString(cleaned, "")
	runes := []rune(cleaned)
	if len(runes) > MaxNameLength {
		cleaned = string(runes[:MaxNameLength])
	}
	return strings.TrimSpace(cleaned)
}

// Truncate caps free text at max runes after basic cleaning.
func Truncate(s string, max int) string {
	cleaned := Input(s)
	runes := []rune(cleaned)
	if len(runes) > max {
		cleaned = string(runes[:max])
	}
	return cleaned
}

// ContainsXSS reports whether the value carries any known script
// injection indicator.
func ContainsXSS(s string) bool {
	for _, p := range xssPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ValidID reports whether s has the expected opaque-identifier shape.
// Malformed identifiers are rejected before they reach storage.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
