package linescan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldContains(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     bool
	}{
		{"say hello world", "HELLO", true},
		{"SAY HELLO WORLD", "hello", true},
		{"say hello world", "", true},
		{"", "", true},
		{"", "a", false},
		{"hell", "hello", false},
		{"abcabd", "ABD", true},
		{"[x]", "[X]", true},
		// '@' and '`' sit next to the ASCII letter ranges and must not fold.
		{"@", "`", false},
		// Only ASCII is folded.
		{"ÄPFEL", "äpfel", false},
		{"äpfel", "äPFEL", true},
	}

	for _, tt := range tests {
		t.Run(tt.haystack+"/"+tt.needle, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldContains([]byte(tt.haystack), []byte(tt.needle)))
		})
	}
}
