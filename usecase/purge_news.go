package usecase

import (
	"context"
	"log/slog"
	"time"

	"news-engine/domain"
	"news-engine/port"
)

// purgeListLimit bounds how many candidates one purge cycle considers.
// Larger corpora are drained across successive cycles.
const purgeListLimit = 1000

// PurgeNewsUsecase deletes stored entries older than the retention window.
type PurgeNewsUsecase struct {
	store  port.KnowledgeStore
	logger *slog.Logger
	now    func() time.Time
}

func NewPurgeNewsUsecase(store port.KnowledgeStore, logger *slog.Logger) *PurgeNewsUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &PurgeNewsUsecase{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the usecase's clock. Test hook.
func (u *PurgeNewsUsecase) WithClock(now func() time.Time) *PurgeNewsUsecase {
	u.now = now
	return u
}

// Execute deletes news entries published strictly before the retention
// cutoff and returns the count deleted. The first deletion failure aborts
// the cycle; the next scheduled run re-attempts.
func (u *PurgeNewsUsecase) Execute(ctx context.Context, retentionDays int) (int, error) {
	cutoff := u.now().AddDate(0, 0, -retentionDays)

	entries, err := u.store.ListAll(ctx, purgeListLimit)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, entry := range entries {
		if entry.Metadata.Type != domain.EntryTypeNews {
			continue
		}
		// Boundary is strict: an entry published exactly at the cutoff stays.
		if !entry.Metadata.PublishedAt.Before(cutoff) {
			continue
		}

		if err := u.store.Delete(ctx, entry.ID); err != nil {
			u.logger.Error("purge aborted on deletion failure",
				"entry_id", entry.ID,
				"deleted_so_far", deleted,
				"error", err,
			)
			return deleted, err
		}
		deleted++
	}

	if deleted > 0 {
		u.logger.Info("purged expired entries",
			"count", deleted,
			"retention_days", retentionDays,
		)
	}

	return deleted, nil
}
