package driver

import (
	"context"

	"github.com/meilisearch/meilisearch-go"
)

// MeilisearchDriver talks to one Meilisearch index holding the news
// namespace for a single agent.
type MeilisearchDriver struct {
	client meilisearch.ServiceManager
	index  meilisearch.IndexManager
}

func NewMeilisearchDriver(client meilisearch.ServiceManager, indexName string) *MeilisearchDriver {
	return &MeilisearchDriver{
		client: client,
		index:  client.Index(indexName),
	}
}

func (d *MeilisearchDriver) Put(ctx context.Context, doc NewsDocumentDriver) (string, error) {
	task, err := d.index.AddDocuments([]NewsDocumentDriver{doc})
	if err != nil {
		return "", &DriverError{
			Op:  "Put",
			Err: err.Error(),
		}
	}

	// Wait for the indexing task so a dedup query issued right after the
	// put sees the document.
	_, err = d.index.WaitForTask(task.TaskUID, 15*1000)
	if err != nil {
		return "", &DriverError{
			Op:  "Put",
			Err: "failed to wait for indexing task: " + err.Error(),
		}
	}

	return doc.ID, nil
}

func (d *MeilisearchDriver) QueryByText(ctx context.Context, text string, limit int) ([]NewsDocumentDriver, error) {
	searchRequest := &meilisearch.SearchRequest{
		Query:            text,
		Limit:            int64(limit),
		Filter:           buildTypeFilter(),
		ShowRankingScore: true,
	}

	result, err := d.index.Search(text, searchRequest)
	if err != nil {
		return nil, &DriverError{
			Op:  "QueryByText",
			Err: err.Error(),
		}
	}

	return d.hitsToDocs(result.Hits), nil
}

func (d *MeilisearchDriver) QueryByMetadata(ctx context.Context, key, value string, limit int) ([]NewsDocumentDriver, error) {
	searchRequest := &meilisearch.SearchRequest{
		Query:  "",
		Limit:  int64(limit),
		Filter: buildMetadataFilter(key, value),
	}

	result, err := d.index.Search("", searchRequest)
	if err != nil {
		return nil, &DriverError{
			Op:  "QueryByMetadata",
			Err: err.Error(),
		}
	}

	return d.hitsToDocs(result.Hits), nil
}

func (d *MeilisearchDriver) ListAll(ctx context.Context, limit int) ([]NewsDocumentDriver, error) {
	var result meilisearch.DocumentsResult
	err := d.index.GetDocuments(&meilisearch.DocumentsQuery{
		Limit: int64(limit),
	}, &result)
	if err != nil {
		return nil, &DriverError{
			Op:  "ListAll",
			Err: err.Error(),
		}
	}

	docs := make([]NewsDocumentDriver, 0, len(result.Results))
	for _, raw := range result.Results {
		docs = append(docs, d.mapToDoc(raw))
	}

	return docs, nil
}

func (d *MeilisearchDriver) Delete(ctx context.Context, id string) error {
	task, err := d.index.DeleteDocument(id)
	if err != nil {
		return &DriverError{
			Op:  "Delete",
			Err: err.Error(),
		}
	}

	_, err = d.index.WaitForTask(task.TaskUID, 15*1000)
	if err != nil {
		return &DriverError{
			Op:  "Delete",
			Err: "failed to wait for deletion task: " + err.Error(),
		}
	}

	return nil
}

func (d *MeilisearchDriver) EnsureIndex(ctx context.Context) error {
	// Check if index exists
	_, err := d.index.FetchInfo()
	if err != nil {
		// Index might not exist, try to create it by adding a dummy document
		dummyDoc := []map[string]interface{}{
			{
				"id":    "init",
				"text":  "This document is used to create the index",
				"title": "Initialization document",
				"type":  "init",
			},
		}

		task, err := d.index.AddDocuments(dummyDoc)
		if err != nil {
			return &DriverError{
				Op:  "EnsureIndex",
				Err: "failed to create index: " + err.Error(),
			}
		}

		_, err = d.index.WaitForTask(task.TaskUID, 15*1000)
		if err != nil {
			return &DriverError{
				Op:  "EnsureIndex",
				Err: "failed to wait for index creation: " + err.Error(),
			}
		}

		deleteTask, err := d.index.DeleteDocument("init")
		if err == nil {
			d.index.WaitForTask(deleteTask.TaskUID, 15*1000)
		}
	}

	// Metadata filters and the dedup url lookup need these attributes.
	_, err = d.index.UpdateFilterableAttributes(&[]string{"type", "source", "url", "topics", "published_at"})
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set filterable attributes: " + err.Error(),
		}
	}

	_, err = d.index.UpdateSortableAttributes(&[]string{"published_at"})
	if err != nil {
		return &DriverError{
			Op:  "EnsureIndex",
			Err: "failed to set sortable attributes: " + err.Error(),
		}
	}

	return nil
}

func (d *MeilisearchDriver) hitsToDocs(hits []interface{}) []NewsDocumentDriver {
	docs := make([]NewsDocumentDriver, 0, len(hits))
	for _, hit := range hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		docs = append(docs, d.mapToDoc(hitMap))
	}
	return docs
}

func (d *MeilisearchDriver) mapToDoc(m map[string]interface{}) NewsDocumentDriver {
	return NewsDocumentDriver{
		ID:          d.getString(m, "id"),
		Text:        d.getString(m, "text"),
		Title:       d.getString(m, "title"),
		Source:      d.getString(m, "source"),
		URL:         d.getString(m, "url"),
		PublishedAt: d.getInt64(m, "published_at"),
		Type:        d.getString(m, "type"),
		Topics:      d.getStringSlice(m, "topics"),
		IsMain:      d.getBool(m, "is_main"),
		IsShared:    d.getBool(m, "is_shared"),
		CreatedAt:   d.getInt64(m, "created_at"),
		Score:       d.getFloat64(m, "_rankingScore"),
	}
}

func (d *MeilisearchDriver) getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (d *MeilisearchDriver) getInt64(m map[string]interface{}, key string) int64 {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case float64:
			return int64(n)
		case int64:
			return n
		}
	}
	return 0
}

func (d *MeilisearchDriver) getFloat64(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

func (d *MeilisearchDriver) getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func (d *MeilisearchDriver) getStringSlice(m map[string]interface{}, key string) []string {
	if v, ok := m[key]; ok {
		if slice, ok := v.([]interface{}); ok {
			result := make([]string, 0, len(slice))
			for _, item := range slice {
				if s, ok := item.(string); ok {
					result = append(result, s)
				}
			}
			return result
		}
	}
	return []string{}
}
