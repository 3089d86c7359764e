package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"news-engine/usecase"
)

// Event types understood by the fetch handler.
const (
	EventTypeFetchRequested    = "news.fetch.requested"
	EventTypeFetchAllRequested = "news.fetch.all.requested"
)

// FetchRequestedPayload is the payload for news.fetch.requested.
type FetchRequestedPayload struct {
	Topic string `json:"topic"`
}

// FetchEventHandler triggers ingestion runs from stream events, letting
// host collaborators request a fetch without waiting for the next timer.
type FetchEventHandler struct {
	ingest *usecase.IngestNewsUsecase
	topics func() []string
	logger *slog.Logger
}

// NewFetchEventHandler creates a handler. topics supplies the configured
// topic names for fetch-all events.
func NewFetchEventHandler(ingest *usecase.IngestNewsUsecase, topics func() []string, logger *slog.Logger) *FetchEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchEventHandler{
		ingest: ingest,
		topics: topics,
		logger: logger,
	}
}

// HandleEvent processes a single event. Unknown event types are logged and
// skipped so a shared stream never wedges the group.
func (h *FetchEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case EventTypeFetchRequested:
		return h.handleFetchRequested(ctx, event)
	case EventTypeFetchAllRequested:
		return h.handleFetchAllRequested(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *FetchEventHandler) handleFetchRequested(ctx context.Context, event Event) error {
	var payload FetchRequestedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal fetch request payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	if payload.Topic == "" {
		h.logger.Warn("fetch request without topic, skipping",
			"event_id", event.EventID,
		)
		return nil
	}

	h.logger.Info("fetch requested via stream",
		"event_id", event.EventID,
		"topic", payload.Topic,
	)

	entries, err := h.ingest.FetchTopic(ctx, payload.Topic)
	if err != nil {
		return err
	}

	h.logger.Info("on-demand fetch complete",
		"topic", payload.Topic,
		"stored", len(entries),
	)
	return nil
}

func (h *FetchEventHandler) handleFetchAllRequested(ctx context.Context, event Event) error {
	names := h.topics()

	h.logger.Info("fetch-all requested via stream",
		"event_id", event.EventID,
		"topics", len(names),
	)

	summary, err := h.ingest.FetchTopics(ctx, names)
	if err != nil {
		return err
	}

	h.logger.Info("on-demand fetch-all complete",
		"run_id", summary.RunID,
		"stored", len(summary.Combined),
	)
	return nil
}
