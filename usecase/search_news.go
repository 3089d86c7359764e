package usecase

import (
	"context"
	"log/slog"
	"sort"

	"news-engine/cache"
	"news-engine/domain"
	"news-engine/port"
	"news-engine/utils"
	appOtel "news-engine/utils/otel"
)

const (
	// searchListLimit bounds the "no query text" listing path and matches
	// the purge listing limit.
	searchListLimit = 1000
	// escalationFactor inflates the single follow-up query issued when the
	// first filtered batch comes up short.
	escalationFactor = 10
)

// SearchNewsUsecase turns a logical search request into one or more store
// queries, widening the batch when post-filtering starves the result set,
// then sorts newest-first and truncates.
type SearchNewsUsecase struct {
	store     port.KnowledgeStore
	cache     *cache.QueryCache
	sanitizer *utils.QuerySanitizer
	logger    *slog.Logger
}

func NewSearchNewsUsecase(store port.KnowledgeStore, queryCache *cache.QueryCache, logger *slog.Logger) *SearchNewsUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchNewsUsecase{
		store:     store,
		cache:     queryCache,
		sanitizer: utils.NewQuerySanitizer(),
		logger:    logger,
	}
}

// Execute serves one search request, consulting the cache first.
func (u *SearchNewsUsecase) Execute(ctx context.Context, opts domain.SearchOptions) ([]domain.KnowledgeEntry, error) {
	opts.Query = u.sanitizer.Sanitize(opts.Query)
	opts.ConversationContext = u.sanitizer.Sanitize(opts.ConversationContext)

	key := opts.CacheKey()
	if cached, ok := u.cache.Get(key); ok {
		if m := appOtel.Metrics; m != nil {
			m.CacheHitsTotal.Add(ctx, 1)
		}
		u.logger.Debug("search served from cache", "key_len", len(key))
		return cached, nil
	}

	limit := opts.EffectiveLimit()

	if !opts.HasQuery() {
		entries, err := u.store.ListAll(ctx, searchListLimit)
		if err != nil {
			return nil, err
		}
		results := u.finish(opts, u.filter(opts, entries), limit)
		u.cache.Set(key, results)
		return results, nil
	}

	complexity := opts.ComplexityMultiplier()
	batchSize := limit * complexity

	raw, err := u.store.QueryByText(ctx, opts.QueryText(), batchSize)
	if err != nil {
		return nil, err
	}

	// A genuinely empty index must not trigger expansion.
	if len(raw) == 0 {
		return []domain.KnowledgeEntry{}, nil
	}

	matches := u.filter(opts, raw)

	// One escalation, never more: a larger batch compensates for filter
	// attrition but a second recursion would be unbounded.
	if len(matches) < limit {
		escalated, err := u.store.QueryByText(ctx, opts.QueryText(), batchSize*escalationFactor)
		if err != nil {
			u.logger.Warn("escalated search query failed, using first batch",
				"error", err,
			)
		} else {
			matches = append(matches, u.filter(opts, escalated)...)
		}
	}

	results := u.finish(opts, matches, limit)
	u.cache.Set(key, results)
	return results, nil
}

func (u *SearchNewsUsecase) filter(opts domain.SearchOptions, entries []domain.KnowledgeEntry) []domain.KnowledgeEntry {
	matches := make([]domain.KnowledgeEntry, 0, len(entries))
	for _, entry := range entries {
		if opts.Matches(entry) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func (u *SearchNewsUsecase) finish(opts domain.SearchOptions, matches []domain.KnowledgeEntry, limit int) []domain.KnowledgeEntry {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Metadata.PublishedAt.After(matches[j].Metadata.PublishedAt)
	})

	// Escalation can re-surface entries from the first batch.
	matches = dedupeByID(matches)

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func dedupeByID(entries []domain.KnowledgeEntry) []domain.KnowledgeEntry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, entry := range entries {
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}
		out = append(out, entry)
	}
	return out
}
