package util

import "strings"

// DigitsOnly strips every non-digit character from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone reports whether s contains exactly 10 digits once
// non-digit characters are stripped.
func IsValidPhone(s string) bool {
	return len(DigitsOnly(s)) == 10
}

// FormatPhone renders a normalized 10-digit number as XXX-XXX-XXXX
// for display. Anything else is returned unchanged; an empty number
// renders as "-".
func FormatPhone(s string) string {
	if s == "" {
		return "-"
	}
	if len(s) == 10 {
		return s[:3] + "-" + s[3:6] + "-" + s[6:]
	}
	return s
}
