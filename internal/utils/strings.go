package utils

import "strings"

// MaskSecret keeps the first and last four characters of s.
// Values of twelve characters or fewer are masked completely.
func MaskSecret(s string) string {
	if len(s) <= 12 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}
