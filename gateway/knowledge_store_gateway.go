package gateway

import (
	"context"
	"time"

	"news-engine/domain"
	"news-engine/driver"
)

// StoreDriver is the driver-level contract the gateway converts against.
type StoreDriver interface {
	Put(ctx context.Context, doc driver.NewsDocumentDriver) (string, error)
	QueryByText(ctx context.Context, text string, limit int) ([]driver.NewsDocumentDriver, error)
	QueryByMetadata(ctx context.Context, key, value string, limit int) ([]driver.NewsDocumentDriver, error)
	ListAll(ctx context.Context, limit int) ([]driver.NewsDocumentDriver, error)
	Delete(ctx context.Context, id string) error
	EnsureIndex(ctx context.Context) error
}

// KnowledgeStoreGateway adapts the store driver to the domain-level
// KnowledgeStore port.
type KnowledgeStoreGateway struct {
	driver StoreDriver
}

func NewKnowledgeStoreGateway(driver StoreDriver) *KnowledgeStoreGateway {
	return &KnowledgeStoreGateway{
		driver: driver,
	}
}

func (g *KnowledgeStoreGateway) Put(ctx context.Context, entry domain.KnowledgeEntry) (string, error) {
	id, err := g.driver.Put(ctx, entryToDoc(entry))
	if err != nil {
		return "", &domain.StoreError{
			Op:  "Put",
			Err: err.Error(),
		}
	}
	return id, nil
}

func (g *KnowledgeStoreGateway) QueryByText(ctx context.Context, text string, limit int) ([]domain.KnowledgeEntry, error) {
	docs, err := g.driver.QueryByText(ctx, text, limit)
	if err != nil {
		return nil, &domain.StoreError{
			Op:  "QueryByText",
			Err: err.Error(),
		}
	}
	return docsToEntries(docs), nil
}

func (g *KnowledgeStoreGateway) QueryByMetadata(ctx context.Context, key, value string, limit int) ([]domain.KnowledgeEntry, error) {
	docs, err := g.driver.QueryByMetadata(ctx, key, value, limit)
	if err != nil {
		return nil, &domain.StoreError{
			Op:  "QueryByMetadata",
			Err: err.Error(),
		}
	}
	return docsToEntries(docs), nil
}

func (g *KnowledgeStoreGateway) ListAll(ctx context.Context, limit int) ([]domain.KnowledgeEntry, error) {
	docs, err := g.driver.ListAll(ctx, limit)
	if err != nil {
		return nil, &domain.StoreError{
			Op:  "ListAll",
			Err: err.Error(),
		}
	}
	return docsToEntries(docs), nil
}

func (g *KnowledgeStoreGateway) Delete(ctx context.Context, id string) error {
	if err := g.driver.Delete(ctx, id); err != nil {
		return &domain.StoreError{
			Op:  "Delete",
			Err: err.Error(),
		}
	}
	return nil
}

func (g *KnowledgeStoreGateway) EnsureIndex(ctx context.Context) error {
	if err := g.driver.EnsureIndex(ctx); err != nil {
		return &domain.StoreError{
			Op:  "EnsureIndex",
			Err: err.Error(),
		}
	}
	return nil
}

func entryToDoc(entry domain.KnowledgeEntry) driver.NewsDocumentDriver {
	return driver.NewsDocumentDriver{
		ID:          entry.ID,
		Text:        entry.Text,
		Title:       entry.Metadata.Title,
		Source:      entry.Metadata.Source,
		URL:         entry.Metadata.URL,
		PublishedAt: entry.Metadata.PublishedAt.UnixMilli(),
		Type:        entry.Metadata.Type,
		Topics:      entry.Metadata.Topics,
		IsMain:      entry.Metadata.IsMain,
		IsShared:    entry.Metadata.IsShared,
		CreatedAt:   entry.CreatedAt.UnixMilli(),
	}
}

func docToEntry(doc driver.NewsDocumentDriver) domain.KnowledgeEntry {
	return domain.KnowledgeEntry{
		ID:   doc.ID,
		Text: doc.Text,
		Metadata: domain.EntryMetadata{
			Title:       doc.Title,
			Source:      doc.Source,
			URL:         doc.URL,
			PublishedAt: time.UnixMilli(doc.PublishedAt),
			Type:        doc.Type,
			Topics:      doc.Topics,
			IsMain:      doc.IsMain,
			IsShared:    doc.IsShared,
		},
		CreatedAt: time.UnixMilli(doc.CreatedAt),
		Score:     doc.Score,
	}
}

func docsToEntries(docs []driver.NewsDocumentDriver) []domain.KnowledgeEntry {
	entries := make([]domain.KnowledgeEntry, len(docs))
	for i, doc := range docs {
		entries[i] = docToEntry(doc)
	}
	return entries
}
