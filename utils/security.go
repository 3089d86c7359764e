// Package utils provides sanitization of free-text search queries before
// they reach the knowledge store.
package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// maxQueryLength caps query text sent to the store.
const maxQueryLength = 1000

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// QuerySanitizer normalizes free-text queries: HTML and control characters
// are stripped, whitespace collapsed, length capped. Sanitization never
// fails; a hostile query degrades to an empty one.
type QuerySanitizer struct{}

func NewQuerySanitizer() *QuerySanitizer {
	return &QuerySanitizer{}
}

// Sanitize returns the cleaned form of query.
func (s *QuerySanitizer) Sanitize(query string) string {
	if query == "" {
		return ""
	}

	query = htmlTagPattern.ReplaceAllString(query, " ")
	query = stripControlChars(query)
	query = whitespacePattern.ReplaceAllString(query, " ")
	query = strings.TrimSpace(query)

	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
	}

	return query
}

func stripControlChars(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)
}
