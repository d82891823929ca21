package normalization

import "strings"

// ParseInputString trims surrounding whitespace and collapses interior runs
// of whitespace to a single space.
func ParseInputString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
