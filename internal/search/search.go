// Package search provides the web-search providers the verifier draws
// evidence from. All providers share one narrow contract: a query in,
// a bounded list of title/snippet/link results out.
package search

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Provider defines the unified interface for search providers
type Provider interface {
	// Search performs a search and returns at most maxResults results
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)

	// Name returns the name of the search provider
	Name() string
}

// Result represents a unified search result
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Domain  string `json:"domain"`
	Rank    int    `json:"rank"` // Position in search results
}

var (
	// ErrMissingAPIKey is returned when a required API key is not provided
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnsupportedProvider is returned when an unsupported provider type is specified
	ErrUnsupportedProvider = errors.New("unsupported search provider")

	// ErrBlocked is returned when the provider refuses to serve the query
	ErrBlocked = errors.New("search blocked by provider")
)

// pacer spaces out calls to a third-party endpoint. One provider
// instance is shared across verify workers, so each caller reserves the
// next slot under the lock and sleeps outside it.
type pacer struct {
	mu   sync.Mutex
	gap  time.Duration
	next time.Time
}

// wait blocks until this caller's reserved slot arrives, or the context
// ends first.
func (p *pacer) wait(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	if p.next.Before(now) {
		p.next = now
	}
	delay := p.next.Sub(now)
	p.next = p.next.Add(p.gap)
	p.mu.Unlock()

	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// NewProvider creates a search provider by name. An empty name disables web
// search (nil provider, nil error); verification then falls through to the
// LLM judge.
func NewProvider(name, apiKey, userAgent string) (Provider, error) {
	switch name {
	case "duckduckgo":
		return NewDuckDuckGoProvider(userAgent), nil
	case "serpapi":
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewSerpAPIProvider(apiKey), nil
	case "":
		return nil, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
