package validators

import (
	"strings"
	"unicode/utf8"
)

// SanitizeString trims whitespace and truncates to maxLen runes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || utf8.RuneCountInString(trimmed) <= maxLen {
		return trimmed
	}
	runes := []rune(trimmed)
	return string(runes[:maxLen])
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
