package usecase

import (
	"context"
	"log/slog"
	"strings"

	"news-engine/domain"
	"news-engine/port"
)

const (
	dedupCandidateLimit      = 5
	dedupSimilarityThreshold = 0.95
)

// DuplicateChecker decides whether a candidate article already exists in
// the store. Store errors are logged and treated as "not a duplicate".
type DuplicateChecker struct {
	store  port.KnowledgeStore
	logger *slog.Logger
}

func NewDuplicateChecker(store port.KnowledgeStore, logger *slog.Logger) *DuplicateChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &DuplicateChecker{
		store:  store,
		logger: logger,
	}
}

// IsDuplicate short-circuits on the first positive signal: an exact url
// match, then a title query whose results either equal the candidate's
// title (case-insensitive) or score above the similarity threshold.
func (c *DuplicateChecker) IsDuplicate(ctx context.Context, item *domain.NewsItem) bool {
	if item.URL() != "" {
		matches, err := c.store.QueryByMetadata(ctx, "url", item.URL(), 1)
		if err != nil {
			c.logger.Warn("url dedup query failed, treating as new",
				"url", item.URL(),
				"error", err,
			)
		} else if len(matches) > 0 {
			return true
		}
	}

	candidates, err := c.store.QueryByText(ctx, item.Title(), dedupCandidateLimit)
	if err != nil {
		c.logger.Warn("title dedup query failed, treating as new",
			"title", item.Title(),
			"error", err,
		)
		return false
	}

	for _, candidate := range candidates {
		if strings.EqualFold(candidate.Metadata.Title, item.Title()) {
			return true
		}
		if candidate.Score > dedupSimilarityThreshold {
			return true
		}
	}

	return false
}
