package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateFilterValues validates source/topic filter values before they are
// interpolated into store filter expressions.
func ValidateFilterValues(values []string) error {
	if len(values) > 10 {
		return fmt.Errorf("too many filter values: maximum 10 allowed, got %d", len(values))
	}

	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("empty or whitespace-only filter value not allowed")
		}

		if len(v) > 200 {
			return fmt.Errorf("filter value too long: maximum 200 characters, got %d", len(v))
		}

		for _, r := range v {
			if unicode.IsControl(r) {
				return fmt.Errorf("control characters not allowed in filter value: %s", v)
			}
		}
	}

	return nil
}
