package port

import (
	"context"
	"time"
)

// SearchKind selects the provider's result corpus.
type SearchKind string

const (
	SearchKindNews    SearchKind = "news"
	SearchKindGeneral SearchKind = "general"
)

// ProviderOptions tunes one provider search call.
type ProviderOptions struct {
	Kind              SearchKind
	Limit             int
	RecencyWindowDays int
}

// ProviderResult is one raw search hit as the provider returned it. Dates
// are unparsed strings; the ingestion pipeline recovers timestamps.
type ProviderResult struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	PublishedDate string
	Source        string
}

// ProviderResponse is the full provider payload for one query.
type ProviderResponse struct {
	Results   []ProviderResult
	Answer    string
	FetchedAt time.Time
}

// SearchProvider is the external web-search service news is ingested from.
type SearchProvider interface {
	Search(ctx context.Context, query string, opts ProviderOptions) (*ProviderResponse, error)
}
