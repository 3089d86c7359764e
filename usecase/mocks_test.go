package usecase

import (
	"context"
	"strings"
	"sync"

	"news-engine/domain"
	"news-engine/port"
)

// mockKnowledgeStore is a hand-rolled in-memory store double. Per-method
// error hooks let tests fail one path at a time; call counters let them
// assert query shapes.
type mockKnowledgeStore struct {
	mu sync.Mutex

	entries map[string]domain.KnowledgeEntry

	textResults []domain.KnowledgeEntry
	metaResults []domain.KnowledgeEntry

	putErr    error
	textErr   error
	metaErr   error
	listErr   error
	deleteErr error

	textCalls   []textCall
	metaCalls   []metaCall
	listCalls   []int
	deleteCalls []string
	failDelete  map[string]error
}

type textCall struct {
	text  string
	limit int
}

type metaCall struct {
	key   string
	value string
	limit int
}

func newMockKnowledgeStore() *mockKnowledgeStore {
	return &mockKnowledgeStore{entries: make(map[string]domain.KnowledgeEntry)}
}

func (m *mockKnowledgeStore) Put(_ context.Context, entry domain.KnowledgeEntry) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return "", m.putErr
	}
	m.entries[entry.ID] = entry
	return entry.ID, nil
}

func (m *mockKnowledgeStore) QueryByText(_ context.Context, text string, limit int) ([]domain.KnowledgeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textCalls = append(m.textCalls, textCall{text: text, limit: limit})
	if m.textErr != nil {
		return nil, m.textErr
	}
	if limit < len(m.textResults) {
		return m.textResults[:limit], nil
	}
	return m.textResults, nil
}

func (m *mockKnowledgeStore) QueryByMetadata(_ context.Context, key, value string, limit int) ([]domain.KnowledgeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metaCalls = append(m.metaCalls, metaCall{key: key, value: value, limit: limit})
	if m.metaErr != nil {
		return nil, m.metaErr
	}
	return m.metaResults, nil
}

func (m *mockKnowledgeStore) ListAll(_ context.Context, limit int) ([]domain.KnowledgeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls = append(m.listCalls, limit)
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.KnowledgeEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockKnowledgeStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if err, ok := m.failDelete[id]; ok {
		return err
	}
	delete(m.entries, id)
	return nil
}

func (m *mockKnowledgeStore) EnsureIndex(_ context.Context) error {
	return nil
}

func (m *mockKnowledgeStore) stored() []domain.KnowledgeEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.KnowledgeEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out
}

// mockSearchProvider returns canned results keyed by query substring, or
// a single shared result set.
type mockSearchProvider struct {
	mu sync.Mutex

	results  []port.ProviderResult
	perTopic map[string][]port.ProviderResult
	err      error
	errTopic string

	queries []string
}

func (p *mockSearchProvider) Search(_ context.Context, query string, _ port.ProviderOptions) (*port.ProviderResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, query)

	if p.err != nil {
		if p.errTopic == "" || strings.Contains(query, p.errTopic) {
			return nil, p.err
		}
	}

	results := p.results
	if p.perTopic != nil {
		for topic, topicResults := range p.perTopic {
			if strings.Contains(query, topic) {
				results = topicResults
				break
			}
		}
	}

	return &port.ProviderResponse{Results: results}, nil
}
