package service

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// sanitizeString collapses whitespace and trims the result.
func sanitizeString(value string) string {
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// clampLimit returns fallback for non-positive values and ceiling for values
// above it.
func clampLimit(value, fallback, ceiling int) int {
	if value <= 0 {
		value = fallback
	}
	if ceiling > 0 && value > ceiling {
		value = ceiling
	}
	return value
}
