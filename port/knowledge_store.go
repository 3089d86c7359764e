package port

import (
	"context"

	"news-engine/domain"
)

// KnowledgeStore is the semantic store the engine persists news entries
// into. The three query paths are deliberately separate: text search,
// exact-metadata match, and a full listing.
type KnowledgeStore interface {
	Put(ctx context.Context, entry domain.KnowledgeEntry) (string, error)
	// QueryByText runs a ranked semantic/keyword query. Returned entries
	// carry the store's ranking score.
	QueryByText(ctx context.Context, text string, limit int) ([]domain.KnowledgeEntry, error)
	// QueryByMetadata returns entries whose metadata field equals value.
	QueryByMetadata(ctx context.Context, key, value string, limit int) ([]domain.KnowledgeEntry, error)
	ListAll(ctx context.Context, limit int) ([]domain.KnowledgeEntry, error)
	Delete(ctx context.Context, id string) error
	EnsureIndex(ctx context.Context) error
}
