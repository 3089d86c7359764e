package domain

import (
	"strconv"
	"strings"
	"time"
)

// DefaultSearchLimit is applied when SearchOptions.Limit is unset.
const DefaultSearchLimit = 10

// SearchOptions describes one logical search request against the engine.
// The zero value means "everything, newest first, default limit".
type SearchOptions struct {
	Query               string
	ConversationContext string
	Limit               int
	FromDate            *time.Time
	ToDate              *time.Time
	Sources             []string
	Topics              []string
}

// EffectiveLimit returns Limit, or DefaultSearchLimit when unset.
func (o SearchOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultSearchLimit
	}
	return o.Limit
}

// HasQuery reports whether the request carries any query text at all.
// Requests without one are served by listing the store instead of querying.
func (o SearchOptions) HasQuery() bool {
	return o.Query != "" || o.ConversationContext != ""
}

// QueryText composes the text sent to the store's semantic query.
func (o SearchOptions) QueryText() string {
	if o.ConversationContext == "" {
		return o.Query
	}
	if o.Query == "" {
		return o.ConversationContext
	}
	return o.Query + "\n" + o.ConversationContext
}

// CacheKey derives the normalized cache key for these options. Fields are
// emitted in a fixed order and absent fields are omitted, so semantically
// identical options always map to the same key. Slice element order is
// significant.
func (o SearchOptions) CacheKey() string {
	var b strings.Builder

	if o.Query != "" {
		b.WriteString("q=")
		b.WriteString(o.Query)
		b.WriteByte('\n')
	}
	if o.ConversationContext != "" {
		b.WriteString("ctx=")
		b.WriteString(o.ConversationContext)
		b.WriteByte('\n')
	}
	b.WriteString("limit=")
	b.WriteString(strconv.Itoa(o.EffectiveLimit()))
	b.WriteByte('\n')
	if o.FromDate != nil {
		b.WriteString("from=")
		b.WriteString(strconv.FormatInt(o.FromDate.UnixMilli(), 10))
		b.WriteByte('\n')
	}
	if o.ToDate != nil {
		b.WriteString("to=")
		b.WriteString(strconv.FormatInt(o.ToDate.UnixMilli(), 10))
		b.WriteByte('\n')
	}
	if len(o.Sources) > 0 {
		b.WriteString("sources=")
		b.WriteString(strings.Join(o.Sources, ","))
		b.WriteByte('\n')
	}
	if len(o.Topics) > 0 {
		b.WriteString("topics=")
		b.WriteString(strings.Join(o.Topics, ","))
		b.WriteByte('\n')
	}

	return b.String()
}

// ComplexityMultiplier estimates how much post-filtering will shrink a raw
// result batch, so the store query can be inflated to compensate. Base 1;
// tight date ranges and extra filters each raise it.
func (o SearchOptions) ComplexityMultiplier() int {
	multiplier := 1

	switch {
	case o.FromDate != nil && o.ToDate != nil:
		span := o.ToDate.Sub(*o.FromDate)
		switch {
		case span < 7*24*time.Hour:
			multiplier += 5
		case span < 30*24*time.Hour:
			multiplier += 4
		default:
			multiplier += 3
		}
	case o.FromDate != nil || o.ToDate != nil:
		multiplier += 2
	}

	if len(o.Topics) > 0 {
		multiplier++
	}
	if len(o.Sources) > 0 {
		multiplier++
	}

	return multiplier
}

// Matches is the post-filter predicate: type must be news, the publication
// date must fall inside the inclusive bounds, and source/topics filters
// must hit when present.
func (o SearchOptions) Matches(entry KnowledgeEntry) bool {
	if entry.Metadata.Type != EntryTypeNews {
		return false
	}
	if o.FromDate != nil && entry.Metadata.PublishedAt.Before(*o.FromDate) {
		return false
	}
	if o.ToDate != nil && entry.Metadata.PublishedAt.After(*o.ToDate) {
		return false
	}
	if len(o.Sources) > 0 {
		if entry.Metadata.Source == "" || !containsString(o.Sources, entry.Metadata.Source) {
			return false
		}
	}
	if len(o.Topics) > 0 && !intersects(o.Topics, entry.Metadata.Topics) {
		return false
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
