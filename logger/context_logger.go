package logger

import (
	"context"
	"log/slog"
	"time"
)

// ContextKey is the type for context keys used in logging
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	OperationKey ContextKey = "operation"

	// Business context keys, following OpenTelemetry semantic conventions
	// with a 'news.' prefix.
	TopicKey   ContextKey = "news.topic"
	EntryIDKey ContextKey = "news.entry.id"
	RunIDKey   ContextKey = "news.run.id"
	StageKey   ContextKey = "news.processing.stage"
)

// GlobalContext is the global ContextLogger instance
var GlobalContext *ContextLogger

// ContextLogger wraps a slog.Logger to add context-aware logging
type ContextLogger struct {
	logger *slog.Logger
}

// NewContextLogger creates a new ContextLogger wrapping the provided logger
func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext adds context values to log entries and returns a new logger
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		args = append(args, "request_id", requestID.(string))
	}

	if operation := ctx.Value(OperationKey); operation != nil {
		args = append(args, "operation", operation.(string))
	}

	if topic := ctx.Value(TopicKey); topic != nil {
		args = append(args, string(TopicKey), topic.(string))
	}

	if entryID := ctx.Value(EntryIDKey); entryID != nil {
		args = append(args, string(EntryIDKey), entryID.(string))
	}

	if runID := ctx.Value(RunIDKey); runID != nil {
		args = append(args, string(RunIDKey), runID.(string))
	}

	if stage := ctx.Value(StageKey); stage != nil {
		args = append(args, string(StageKey), stage.(string))
	}

	return cl.logger.With(args...)
}

// LogDuration logs an operation completion with duration in milliseconds
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, durationMs int64) {
	cl.WithContext(ctx).Info("operation completed",
		"operation", operation,
		"duration_ms", durationMs,
	)
}

// LogError logs an operation failure with error details
func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).Error("operation failed",
		"operation", operation,
		"error", err,
	)
}

// Context helper functions for business context

// WithTopic adds the fetch topic to context for observability
func WithTopic(ctx context.Context, topic string) context.Context {
	return context.WithValue(ctx, TopicKey, topic)
}

// WithEntryID adds a knowledge entry ID to context for observability
func WithEntryID(ctx context.Context, entryID string) context.Context {
	return context.WithValue(ctx, EntryIDKey, entryID)
}

// WithRunID adds the ingestion run ID to context for observability
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// WithStage adds the processing stage to context for observability
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}

// LogDurationTime is a convenience function that takes time.Duration
func (cl *ContextLogger) LogDurationTime(ctx context.Context, operation string, duration time.Duration) {
	cl.LogDuration(ctx, operation, duration.Milliseconds())
}
