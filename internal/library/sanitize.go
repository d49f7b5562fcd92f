package library

import (
	"strings"
	"unicode"
)

// SanitizeBookName reduces a raw name to the characters allowed in a book
// directory: letters, digits, spaces, hyphens and underscores. Surrounding
// whitespace is trimmed. Returns ErrInvalidName when nothing survives.
func SanitizeBookName(name string) (string, error) {
	clean := sanitize(name, false)
	if clean == "" {
		return "", ErrInvalidName
	}
	return clean, nil
}

// SanitizeChapterName filters like SanitizeBookName but additionally keeps
// dots, and normalizes the result to carry a .md extension.
func SanitizeChapterName(name string) (string, error) {
	clean := sanitize(name, true)
	if strings.TrimSuffix(clean, ".md") == "" {
		return "", ErrInvalidName
	}
	if !strings.HasSuffix(clean, ".md") {
		clean += ".md"
	}
	return clean, nil
}

func sanitize(name string, allowDot bool) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == '.' && allowDot:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
