package utils

import (
	"strings"
	"testing"
)

func TestQuerySanitizer_Sanitize(t *testing.T) {
	s := NewQuerySanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain query untouched", "chip shortage news", "chip shortage news"},
		{"empty query", "", ""},
		{"strips html tags", "<b>breaking</b> news", "breaking news"},
		{"strips script blocks", "<script>alert(1)</script>search", "alert(1) search"},
		{"collapses whitespace", "too   many\t\tspaces", "too many spaces"},
		{"trims edges", "  padded  ", "padded"},
		{"strips control characters", "a\x00b\x07c", "abc"},
		{"newlines collapse to spaces", "line one\nline two", "line one line two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuerySanitizer_Sanitize_CapsLength(t *testing.T) {
	s := NewQuerySanitizer()

	long := strings.Repeat("a", 5000)
	got := s.Sanitize(long)
	if len(got) != maxQueryLength {
		t.Errorf("len(Sanitize(long)) = %d, want %d", len(got), maxQueryLength)
	}
}
