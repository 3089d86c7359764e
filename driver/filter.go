package driver

import (
	"fmt"
	"strings"
)

// escapeFilterValue escapes special characters in Meilisearch filter values.
func escapeFilterValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	return value
}

// buildMetadataFilter creates a secure Meilisearch filter matching one
// metadata field exactly. The type guard keeps queries inside the news
// corpus even when the index is shared.
func buildMetadataFilter(key, value string) string {
	return fmt.Sprintf("%s = \"%s\" AND type = \"%s\"", key, escapeFilterValue(value), newsType)
}

// buildTypeFilter restricts a query to news documents.
func buildTypeFilter() string {
	return fmt.Sprintf("type = \"%s\"", newsType)
}

const newsType = "news"
