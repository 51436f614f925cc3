// Package strings holds small text helpers for terminal output.
package strings

import (
	"strings"
)

// DefaultMaxLen is the column width used for free-form text in tables.
const DefaultMaxLen = 60

// minTruncateLen leaves room for one character plus the ellipsis.
const minTruncateLen = 4

// Truncate collapses whitespace (including newlines) into single spaces and
// cuts s to at most maxLen runes, ending with "..." when something was cut.
func Truncate(s string, maxLen int) string {
	if maxLen < minTruncateLen {
		maxLen = minTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
