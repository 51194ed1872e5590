package utils

import "strings"

// NormalizeQuery trims surrounding whitespace and lowercases a raw query
// string. All query comparisons in the ranking pipeline run on this form.
func NormalizeQuery(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Truncate returns s truncated to maxLen characters, with "..." appended if
// truncated. If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
