package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// EntryTypeNews is the metadata type tag for entries owned by this engine.
// The store namespace may hold other knowledge kinds; filters always pin it.
const EntryTypeNews = "news"

// EntryMetadata is the structured metadata persisted alongside an entry's
// indexed text.
type EntryMetadata struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Type        string    `json:"type"`
	Topics      []string  `json:"topics"`
	IsMain      bool      `json:"isMain"`
	IsShared    bool      `json:"isShared"`
}

// KnowledgeEntry is a persisted, deduplicated news record in the semantic
// store. Entries are created and deleted, never mutated.
type KnowledgeEntry struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Metadata  EntryMetadata `json:"metadata"`
	CreatedAt time.Time     `json:"createdAt"`
	// Score is the store's ranking score for this entry in the query that
	// produced it. Zero outside of text-query results.
	Score float64 `json:"-"`
}

// EntryID derives the deterministic store ID for an article. Hashing the
// url (or title+source when no url exists) keeps re-ingestion idempotent
// across process restarts.
func EntryID(url, title, source string) string {
	var sum [32]byte
	if url != "" {
		sum = sha256.Sum256([]byte(url))
	} else {
		sum = sha256.Sum256([]byte(title + "\x00" + source))
	}
	return hex.EncodeToString(sum[:])
}

// NewKnowledgeEntry converts a validated NewsItem into its stored form.
// createdAt is the ingestion time, injected for test determinism.
func NewKnowledgeEntry(item *NewsItem, createdAt time.Time) KnowledgeEntry {
	return KnowledgeEntry{
		ID:   EntryID(item.URL(), item.Title(), item.Source()),
		Text: item.Title() + "\n\n" + item.Content(),
		Metadata: EntryMetadata{
			Title:       item.Title(),
			Source:      item.Source(),
			URL:         item.URL(),
			PublishedAt: item.PublishedAt(),
			Type:        EntryTypeNews,
			Topics:      item.Topics(),
			IsMain:      true,
			IsShared:    false,
		},
		CreatedAt: createdAt,
	}
}
