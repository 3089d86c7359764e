package driver

import (
	"strings"
	"testing"
)

func TestBuildMetadataFilter(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		expected string
	}{
		{
			name:     "url filter",
			key:      "url",
			value:    "https://example.com/a",
			expected: `url = "https://example.com/a" AND type = "news"`,
		},
		{
			name:     "source filter",
			key:      "source",
			value:    "example.com",
			expected: `source = "example.com" AND type = "news"`,
		},
		{
			name:     "value with quotes",
			key:      "source",
			value:    `evil"injection`,
			expected: `source = "evil\"injection" AND type = "news"`,
		},
		{
			name:     "value with backslash",
			key:      "source",
			value:    `back\slash`,
			expected: `source = "back\\slash" AND type = "news"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildMetadataFilter(tt.key, tt.value)
			if result != tt.expected {
				t.Errorf("buildMetadataFilter(%q, %q) = %q, want %q", tt.key, tt.value, result, tt.expected)
			}
		})
	}
}

func TestBuildMetadataFilter_SecurityValidation(t *testing.T) {
	securityTests := []struct {
		name           string
		maliciousValue string
	}{
		{
			name:           "filter bypass attempt",
			maliciousValue: `x" OR type = "secret`,
		},
		{
			name:           "complex injection",
			maliciousValue: `x" OR (type = "secret" AND is_shared = "true")`,
		},
	}

	for _, tt := range securityTests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildMetadataFilter("url", tt.maliciousValue)

			// Every quote of the malicious value must come out escaped.
			inner := strings.TrimPrefix(result, `url = "`)
			inner = strings.TrimSuffix(inner, ` AND type = "news"`)
			inner = strings.TrimSuffix(inner, `"`)
			for i := 0; i < len(inner); i++ {
				if inner[i] == '"' && (i == 0 || inner[i-1] != '\\') {
					t.Errorf("unescaped quote in filter value: %q", result)
					break
				}
			}
		})
	}
}

func TestBuildTypeFilter(t *testing.T) {
	if got := buildTypeFilter(); got != `type = "news"` {
		t.Errorf("buildTypeFilter() = %q, want %q", got, `type = "news"`)
	}
}
