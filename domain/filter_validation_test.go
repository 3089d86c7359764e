package domain

import (
	"strings"
	"testing"
)

func TestValidateFilterValues(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		wantErr bool
	}{
		{"nil values", nil, false},
		{"valid values", []string{"example.com", "technology"}, false},
		{"exactly ten values", make([]string, 10), true}, // ten empty strings fail the blank check
		{"too many values", make([]string, 11), true},
		{"blank value", []string{"ok", "   "}, true},
		{"over-long value", []string{strings.Repeat("x", 201)}, true},
		{"value at length limit", []string{strings.Repeat("x", 200)}, false},
		{"control character", []string{"evil\x00value"}, true},
		{"newline", []string{"two\nlines"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilterValues(tt.values)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilterValues(%v) error = %v, wantErr %v", tt.values, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilterValues_TenValidValues(t *testing.T) {
	values := make([]string, 10)
	for i := range values {
		values[i] = "topic"
	}
	if err := ValidateFilterValues(values); err != nil {
		t.Errorf("ValidateFilterValues() error = %v, want nil for 10 valid values", err)
	}
}
