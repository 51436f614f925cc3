package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short", input: "redis:6", maxLen: 20, want: "redis:6"},
		{name: "exact", input: "abcdef", maxLen: 6, want: "abcdef"},
		{name: "cut", input: "database system is ready", maxLen: 10, want: "databas..."},
		{name: "whitespace collapsed", input: "a\n\tb   c", maxLen: 20, want: "a b c"},
		{name: "runes", input: "äöüäöüäöü", maxLen: 5, want: "äö..."},
		{name: "tiny max clamped", input: "abcdef", maxLen: 1, want: "a..."},
		{name: "empty", input: "", maxLen: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxLen))
		})
	}
}
