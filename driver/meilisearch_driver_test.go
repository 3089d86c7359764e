package driver

import (
	"testing"
)

func TestMeilisearchDriver_MapToDoc(t *testing.T) {
	driver := &MeilisearchDriver{}

	hit := map[string]interface{}{
		"id":            "entry-1",
		"text":          "Headline\n\nBody",
		"title":         "Headline",
		"source":        "example.com",
		"url":           "https://example.com/a",
		"published_at":  float64(1772409600000),
		"type":          "news",
		"topics":        []interface{}{"technology", "ai"},
		"is_main":       true,
		"is_shared":     false,
		"created_at":    float64(1772496000000),
		"_rankingScore": 0.93,
	}

	doc := driver.mapToDoc(hit)

	if doc.ID != "entry-1" || doc.Title != "Headline" || doc.Type != "news" {
		t.Errorf("unexpected doc %+v", doc)
	}
	if doc.PublishedAt != 1772409600000 {
		t.Errorf("PublishedAt = %d, want 1772409600000", doc.PublishedAt)
	}
	if len(doc.Topics) != 2 || doc.Topics[0] != "technology" {
		t.Errorf("Topics = %v, want [technology ai]", doc.Topics)
	}
	if !doc.IsMain {
		t.Error("IsMain should be true")
	}
	if doc.Score != 0.93 {
		t.Errorf("Score = %v, want 0.93", doc.Score)
	}
}

func TestMeilisearchDriver_MapToDoc_MissingFields(t *testing.T) {
	driver := &MeilisearchDriver{}

	doc := driver.mapToDoc(map[string]interface{}{"id": "entry-2"})

	if doc.ID != "entry-2" {
		t.Errorf("ID = %q, want %q", doc.ID, "entry-2")
	}
	if doc.Title != "" || doc.PublishedAt != 0 || doc.Score != 0 {
		t.Errorf("missing fields should zero out, got %+v", doc)
	}
	if doc.Topics == nil {
		t.Error("Topics should default to an empty slice")
	}
	if doc.IsMain {
		t.Error("IsMain should default to false")
	}
}

func TestMeilisearchDriver_MapToDoc_WrongTypes(t *testing.T) {
	driver := &MeilisearchDriver{}

	doc := driver.mapToDoc(map[string]interface{}{
		"id":           12345,
		"published_at": "not a number",
		"topics":       "not a slice",
		"is_main":      "yes",
	})

	if doc.ID != "" {
		t.Errorf("non-string id should map to empty, got %q", doc.ID)
	}
	if doc.PublishedAt != 0 {
		t.Errorf("non-numeric published_at should map to 0, got %d", doc.PublishedAt)
	}
	if len(doc.Topics) != 0 {
		t.Errorf("non-slice topics should map to empty, got %v", doc.Topics)
	}
	if doc.IsMain {
		t.Error("non-bool is_main should map to false")
	}
}

func TestMeilisearchDriver_HitsToDocs_SkipsMalformedHits(t *testing.T) {
	driver := &MeilisearchDriver{}

	hits := []interface{}{
		map[string]interface{}{"id": "good"},
		"not a map",
		nil,
	}

	docs := driver.hitsToDocs(hits)
	if len(docs) != 1 {
		t.Fatalf("hitsToDocs() returned %d docs, want 1", len(docs))
	}
	if docs[0].ID != "good" {
		t.Errorf("ID = %q, want %q", docs[0].ID, "good")
	}
}
