package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"news-engine/domain"
	"news-engine/port"
	appOtel "news-engine/utils/otel"
)

const (
	fetchResultLimit       = 5
	fetchRecencyWindowDays = 7
	topicQueryPrefix       = "latest news about "
)

// FetchSummary aggregates one ingestion round across topics.
type FetchSummary struct {
	// RunID correlates log records of one ingestion round.
	RunID string
	// PerTopic maps each requested topic to the entries it produced.
	// A failed topic maps to an empty slice.
	PerTopic map[string][]domain.KnowledgeEntry
	// Combined is the flattened entry list across all topics.
	Combined []domain.KnowledgeEntry
}

// IngestNewsUsecase runs the per-topic fetch → parse → dedupe → persist
// pipeline.
type IngestNewsUsecase struct {
	provider port.SearchProvider
	store    port.KnowledgeStore
	dedup    *DuplicateChecker
	dates    *DateExtractor
	logger   *slog.Logger
	now      func() time.Time
}

func NewIngestNewsUsecase(provider port.SearchProvider, store port.KnowledgeStore, dedup *DuplicateChecker, dates *DateExtractor, logger *slog.Logger) *IngestNewsUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestNewsUsecase{
		provider: provider,
		store:    store,
		dedup:    dedup,
		dates:    dates,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the usecase's clock. Test hook.
func (u *IngestNewsUsecase) WithClock(now func() time.Time) *IngestNewsUsecase {
	u.now = now
	return u
}

// FetchTopic ingests one topic and returns the entries it stored. Provider
// failure is returned to the caller; per-item failures only skip the item.
func (u *IngestNewsUsecase) FetchTopic(ctx context.Context, topic string) ([]domain.KnowledgeEntry, error) {
	resp, err := u.provider.Search(ctx, topicQueryPrefix+topic, port.ProviderOptions{
		Kind:              port.SearchKindNews,
		Limit:             fetchResultLimit,
		RecencyWindowDays: fetchRecencyWindowDays,
	})
	if err != nil {
		return nil, err
	}

	recordFetched(ctx, topic, len(resp.Results))

	stored := make([]domain.KnowledgeEntry, 0, len(resp.Results))
	for _, result := range resp.Results {
		if result.Title == "" || result.Content == "" {
			u.logger.Debug("skipping provider result without title or content",
				"topic", topic,
				"url", result.URL,
			)
			continue
		}

		item, err := domain.NewNewsItem(
			result.Title,
			result.Content,
			u.resolveSource(result),
			result.URL,
			u.resolvePublishedAt(result),
			[]string{topic},
			result.RawContent,
		)
		if err != nil {
			u.logger.Debug("skipping malformed provider result",
				"topic", topic,
				"error", err,
			)
			continue
		}

		if u.dedup.IsDuplicate(ctx, item) {
			recordDuplicate(ctx, topic)
			u.logger.Debug("skipping duplicate article",
				"topic", topic,
				"title", item.Title(),
			)
			continue
		}

		entry := domain.NewKnowledgeEntry(item, u.now())
		if _, err := u.store.Put(ctx, entry); err != nil {
			u.logger.Warn("failed to persist article, skipping",
				"topic", topic,
				"title", item.Title(),
				"error", err,
			)
			continue
		}

		stored = append(stored, entry)
	}

	recordStored(ctx, topic, len(stored))
	return stored, nil
}

// FetchTopics ingests each topic concurrently. One topic's failure is
// logged and yields an empty result for that topic; the round always
// completes for the others.
func (u *IngestNewsUsecase) FetchTopics(ctx context.Context, topics []string) (*FetchSummary, error) {
	summary := &FetchSummary{
		RunID:    uuid.NewString(),
		PerTopic: make(map[string][]domain.KnowledgeEntry, len(topics)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, topic := range topics {
		topic := topic
		g.Go(func() error {
			entries, err := u.FetchTopic(gctx, topic)
			if err != nil {
				u.logger.Error("topic fetch failed",
					"run_id", summary.RunID,
					"topic", topic,
					"error", err,
				)
				entries = []domain.KnowledgeEntry{}
			}

			mu.Lock()
			summary.PerTopic[topic] = entries
			summary.Combined = append(summary.Combined, entries...)
			mu.Unlock()
			return nil // topic failures never abort the round
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	u.logger.Info("ingestion round complete",
		"run_id", summary.RunID,
		"topics", len(topics),
		"stored", len(summary.Combined),
	)

	return summary, nil
}

func (u *IngestNewsUsecase) resolveSource(result port.ProviderResult) string {
	if result.Source != "" {
		return result.Source
	}
	if result.URL != "" {
		if parsed, err := url.Parse(result.URL); err == nil && parsed.Hostname() != "" {
			return parsed.Hostname()
		}
	}
	return "unknown"
}

func recordFetched(ctx context.Context, topic string, count int) {
	m := appOtel.Metrics
	if m == nil || count == 0 {
		return
	}
	m.FetchedTotal.Add(ctx, int64(count), metric.WithAttributes(attribute.String("topic", topic)))
}

func recordStored(ctx context.Context, topic string, count int) {
	m := appOtel.Metrics
	if m == nil || count == 0 {
		return
	}
	m.StoredTotal.Add(ctx, int64(count), metric.WithAttributes(attribute.String("topic", topic)))
}

func recordDuplicate(ctx context.Context, topic string) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	m.DuplicatesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", topic)))
}

// resolvePublishedAt derives a publication time from the provider field,
// then the date heuristic on raw and visible content, then now. Articles
// never go unstamped.
func (u *IngestNewsUsecase) resolvePublishedAt(result port.ProviderResult) time.Time {
	if result.PublishedDate != "" {
		if parsed, err := dateparse.ParseAny(result.PublishedDate); err == nil {
			return parsed
		}
	}
	if ts, ok := u.dates.Extract(result.RawContent); ok {
		return ts
	}
	if ts, ok := u.dates.Extract(result.Content); ok {
		return ts
	}
	return u.now()
}
