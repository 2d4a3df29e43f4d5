// Package linkedin derives the canonical identity key and live URL slug for
// nominees from their LinkedIn profile URLs.
package linkedin

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidURL is returned when the input does not look like a LinkedIn URL
var ErrInvalidURL = errors.New("invalid LinkedIn URL")

// Normalize canonicalizes a LinkedIn URL: trims whitespace, lowercases,
// strips the scheme, a leading "www.", any query string or fragment, and a
// trailing slash. "https://www.LinkedIn.com/in/Jane-Doe/" and
// "linkedin.com/in/jane-doe" normalize to the same string.
func Normalize(rawURL string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	if s == "" {
		return "", ErrInvalidURL
	}

	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")

	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "/")

	if !strings.HasPrefix(s, "linkedin.com/") {
		return "", ErrInvalidURL
	}

	return s, nil
}

// BuildUniqueKey derives the uniqueness key for a nomination from its
// category and the nominee's LinkedIn URL. Pure and deterministic: the same
// category and profile always yield the same key regardless of case, scheme
// or trailing-slash differences in the input.
func BuildUniqueKey(category, linkedInURL string) (string, error) {
	normalized, err := Normalize(linkedInURL)
	if err != nil {
		return "", err
	}
	return category + "|" + normalized, nil
}

// Slugify converts a display name into a URL slug: lowercase, alphanumerics
// kept, everything else collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
