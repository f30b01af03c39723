package pathment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCandidate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com/docs.", "https://example.com/docs"},
		{"https://example.com, and more", "https://example.com"},
		{"https://example.com/a. Next sentence", "https://example.com/a"},
		{"https://example.com/a)", "https://example.com/a"},
		{"https://en.wikipedia.org/wiki/Go_(language)", "https://en.wikipedia.org/wiki/Go_(language)"},
		{"https://example.com/x]).", "https://example.com/x"},
		{"  www.example.org;  ", "www.example.org"},
		{`"quoted"`, `"quoted`},
		{"user@example.com!?", "user@example.com"},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := CleanCandidate(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, CleanCandidate(got), "cleaning must be idempotent")
		})
	}
}
