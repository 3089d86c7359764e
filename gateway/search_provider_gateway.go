package gateway

import (
	"context"
	"time"

	"news-engine/domain"
	"news-engine/driver"
	"news-engine/port"
)

// ProviderDriver is the driver-level contract for the web search API.
type ProviderDriver interface {
	Search(ctx context.Context, query, topic string, limit, recencyDays int) ([]driver.ProviderResultDriver, string, error)
}

// SearchProviderGateway adapts the provider driver to the domain-level
// SearchProvider port.
type SearchProviderGateway struct {
	driver ProviderDriver
	now    func() time.Time
}

func NewSearchProviderGateway(driver ProviderDriver) *SearchProviderGateway {
	return &SearchProviderGateway{
		driver: driver,
		now:    time.Now,
	}
}

func (g *SearchProviderGateway) Search(ctx context.Context, query string, opts port.ProviderOptions) (*port.ProviderResponse, error) {
	kind := string(opts.Kind)
	if kind == "" {
		kind = string(port.SearchKindGeneral)
	}

	results, answer, err := g.driver.Search(ctx, query, kind, opts.Limit, opts.RecencyWindowDays)
	if err != nil {
		return nil, &domain.ProviderError{
			Op:  "Search",
			Err: err.Error(),
		}
	}

	converted := make([]port.ProviderResult, len(results))
	for i, r := range results {
		converted[i] = port.ProviderResult{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			RawContent:    r.RawContent,
			PublishedDate: r.PublishedDate,
			Source:        r.Source,
		}
	}

	return &port.ProviderResponse{
		Results:   converted,
		Answer:    answer,
		FetchedAt: g.now(),
	}, nil
}
