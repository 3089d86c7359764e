// Package scheduler owns the engine's timers: one repeating fetch per
// configured topic and one daily retention purge.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"news-engine/domain"
	"news-engine/usecase"
	appOtel "news-engine/utils/otel"
)

const purgeInterval = 24 * time.Hour

// Scheduler drives the ingestion pipeline and retention purge on timers.
// It holds no other state and performs no retries of its own.
type Scheduler struct {
	ingest        *usecase.IngestNewsUsecase
	purge         *usecase.PurgeNewsUsecase
	topics        []domain.TopicConfig
	retentionDays int
	logger        *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func New(ingest *usecase.IngestNewsUsecase, purge *usecase.PurgeNewsUsecase, topics []domain.TopicConfig, retentionDays int, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		ingest:        ingest,
		purge:         purge,
		topics:        topics,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// TopicNames returns the configured topic names in order.
func (s *Scheduler) TopicNames() []string {
	names := make([]string, len(s.topics))
	for i, t := range s.topics {
		names[i] = t.Name
	}
	return names
}

// Start installs all timers and runs one synchronous full fetch before
// returning, so the store is warm when the caller is signalled ready.
// Starting an already-started scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.started = true

	for _, topic := range s.topics {
		s.wg.Add(1)
		go s.topicLoop(runCtx, topic)
	}
	s.wg.Add(1)
	go s.purgeLoop(runCtx)
	s.mu.Unlock()

	// Initial fetch runs outside the lock: it can take a while and Stop
	// must stay callable.
	if _, err := s.ingest.FetchTopics(ctx, s.TopicNames()); err != nil {
		s.logger.Error("initial fetch failed", "error", err)
	}

	s.logger.Info("scheduler started",
		"topics", len(s.topics),
		"retention_days", s.retentionDays,
	)
	return nil
}

// Stop cancels every timer. In-flight fetch and purge calls are not
// interrupted. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) topicLoop(ctx context.Context, topic domain.TopicConfig) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("topic loop panic", "topic", topic.Name, "err", r)
		}
	}()

	ticker := time.NewTicker(time.Duration(topic.IntervalMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			if _, err := s.ingest.FetchTopic(ctx, topic.Name); err != nil {
				recordError(ctx, "fetch")
				s.logger.Error("scheduled fetch failed",
					"topic", topic.Name,
					"error", err,
				)
				continue
			}
			recordFetchDuration(ctx, topic.Name, time.Since(start))
		}
	}
}

func (s *Scheduler) purgeLoop(ctx context.Context) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("purge loop panic", "err", r)
		}
	}()

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.purge.Execute(ctx, s.retentionDays)
			if err != nil {
				// Deferred to the next daily run.
				recordError(ctx, "purge")
				s.logger.Error("scheduled purge failed", "error", err)
			}
			recordPurged(ctx, deleted)
		}
	}
}

func recordFetchDuration(ctx context.Context, topic string, duration time.Duration) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	m.FetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("topic", topic)))
}

func recordPurged(ctx context.Context, count int) {
	m := appOtel.Metrics
	if m == nil || count == 0 {
		return
	}
	m.PurgedTotal.Add(ctx, int64(count))
}

func recordError(ctx context.Context, operation string) {
	m := appOtel.Metrics
	if m == nil {
		return
	}
	m.ErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}
