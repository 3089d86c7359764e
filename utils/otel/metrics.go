package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all OTel metric instruments for news-engine.
var Metrics *NewsEngineMetrics

// NewsEngineMetrics contains all metric instruments.
type NewsEngineMetrics struct {
	FetchedTotal    metric.Int64Counter
	StoredTotal     metric.Int64Counter
	DuplicatesTotal metric.Int64Counter
	PurgedTotal     metric.Int64Counter
	CacheHitsTotal  metric.Int64Counter
	ErrorsTotal     metric.Int64Counter
	FetchDuration   metric.Float64Histogram
	SearchDuration  metric.Float64Histogram
}

// InitMetrics initializes all metric instruments.
func InitMetrics() error {
	meter := otel.Meter("news-engine")

	fetchedTotal, err := meter.Int64Counter("news_engine_fetched_total",
		metric.WithDescription("Total number of provider results fetched"),
	)
	if err != nil {
		return err
	}

	storedTotal, err := meter.Int64Counter("news_engine_stored_total",
		metric.WithDescription("Total number of entries persisted to the knowledge store"),
	)
	if err != nil {
		return err
	}

	duplicatesTotal, err := meter.Int64Counter("news_engine_duplicates_total",
		metric.WithDescription("Total number of candidates skipped as duplicates"),
	)
	if err != nil {
		return err
	}

	purgedTotal, err := meter.Int64Counter("news_engine_purged_total",
		metric.WithDescription("Total number of entries deleted by retention purge"),
	)
	if err != nil {
		return err
	}

	cacheHitsTotal, err := meter.Int64Counter("news_engine_cache_hits_total",
		metric.WithDescription("Total number of searches served from cache"),
	)
	if err != nil {
		return err
	}

	errorsTotal, err := meter.Int64Counter("news_engine_errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return err
	}

	fetchDuration, err := meter.Float64Histogram("news_engine_fetch_duration_seconds",
		metric.WithDescription("Ingestion round duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	searchDuration, err := meter.Float64Histogram("news_engine_search_duration_seconds",
		metric.WithDescription("Search request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	Metrics = &NewsEngineMetrics{
		FetchedTotal:    fetchedTotal,
		StoredTotal:     storedTotal,
		DuplicatesTotal: duplicatesTotal,
		PurgedTotal:     purgedTotal,
		CacheHitsTotal:  cacheHitsTotal,
		ErrorsTotal:     errorsTotal,
		FetchDuration:   fetchDuration,
		SearchDuration:  searchDuration,
	}

	return nil
}
