package search

import (
	"context"
	"strings"
	"sync"
)

// MockProvider implements Provider for testing. Results can be keyed by
// query substring so tests can script different answers per question.
// Safe for concurrent use, like the real providers it stands in for.
type MockProvider struct {
	name    string
	results []Result
	byQuery map[string][]Result
	err     error

	mu      sync.Mutex
	queries []string
}

// NewMockProvider creates a mock provider that returns the given results
// for every query
func NewMockProvider(results []Result) *MockProvider {
	return &MockProvider{
		name:    "mock",
		results: results,
		byQuery: make(map[string][]Result),
	}
}

// Name returns the name of this provider
func (m *MockProvider) Name() string {
	return m.name
}

// Search returns the scripted results
func (m *MockProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	results := m.results
	for key, r := range m.byQuery {
		if strings.Contains(query, key) {
			results = r
			break
		}
	}

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// Queries returns every query seen, in order
func (m *MockProvider) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// On scripts results for queries containing the given substring
func (m *MockProvider) On(querySubstring string, results []Result) *MockProvider {
	m.byQuery[querySubstring] = results
	return m
}

// Fail makes every search return err
func (m *MockProvider) Fail(err error) *MockProvider {
	m.err = err
	return m
}
