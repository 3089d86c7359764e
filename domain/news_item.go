package domain

import (
	"errors"
	"time"
)

// NewsItem is a transient ingestion record built from one provider result.
// It only exists between fetch and persist; the stored form is KnowledgeEntry.
type NewsItem struct {
	title       string
	content     string
	source      string
	url         string
	publishedAt time.Time
	topics      []string
	rawContent  string
}

func NewNewsItem(title, content, source, url string, publishedAt time.Time, topics []string, rawContent string) (*NewsItem, error) {
	if title == "" {
		return nil, errors.New("news item title cannot be empty")
	}
	if content == "" {
		return nil, errors.New("news item content cannot be empty")
	}
	if len(topics) == 0 {
		return nil, errors.New("news item must have at least one topic")
	}

	return &NewsItem{
		title:       title,
		content:     content,
		source:      source,
		url:         url,
		publishedAt: publishedAt,
		topics:      topics,
		rawContent:  rawContent,
	}, nil
}

func (n *NewsItem) Title() string {
	return n.title
}

func (n *NewsItem) Content() string {
	return n.content
}

func (n *NewsItem) Source() string {
	return n.source
}

func (n *NewsItem) URL() string {
	return n.url
}

func (n *NewsItem) PublishedAt() time.Time {
	return n.publishedAt
}

func (n *NewsItem) Topics() []string {
	return n.topics
}

func (n *NewsItem) RawContent() string {
	return n.rawContent
}

func (n *NewsItem) HasTopic(topic string) bool {
	if topic == "" {
		return false
	}

	for _, t := range n.topics {
		if t == topic {
			return true
		}
	}
	return false
}
