// Package shared provides common utility functions used across multiple
// packages in the toolchain-resolver codebase.
package shared

import (
	"strings"
	"unicode"
)

// CloneStrings returns a copy of values that is never nil, so emitted
// records serialize empty lists as [] rather than omitting them.
func CloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// ContainsString reports whether value is present in values.
func ContainsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

// HasControlCharacter reports whether value contains a NUL or any other
// control character.
func HasControlCharacter(value string) bool {
	return strings.IndexFunc(value, unicode.IsControl) >= 0
}

// TrimAll trims whitespace from every entry and drops empty ones.
func TrimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
