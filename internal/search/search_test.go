package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"rolescout/internal/cache"
)

const ddgFixture = `<!DOCTYPE html><html><body>
<div class="results">
  <div class="result results_links results_links_deep web-result">
    <a class="result__a" href="/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FThe_Matrix&amp;rut=abc">The Matrix - Wikipedia</a>
    <a class="result__snippet" href="/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FThe_Matrix">Jane Doe stars as Trinity in The Matrix.</a>
  </div>
  <div class="result results_links results_links_deep web-result">
    <a class="result__a" href="https://example.com/blog">Some fan blog</a>
    <a class="result__snippet" href="https://example.com/blog">A blog post about the movie.</a>
  </div>
</div>
</body></html>`

func TestDuckDuckGo_ParseResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Error("Expected q query parameter")
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(ddgFixture))
	}))
	defer server.Close()

	provider := NewDuckDuckGoProvider("")
	provider.baseURL = server.URL
	provider.pace.gap = 0

	results, err := provider.Search(context.Background(), "Jane Doe Trinity", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Link != "https://en.wikipedia.org/wiki/The_Matrix" {
		t.Errorf("Expected decoded redirect URL, got %q", first.Link)
	}
	if first.Domain != "en.wikipedia.org" {
		t.Errorf("Expected domain en.wikipedia.org, got %q", first.Domain)
	}
	if first.Title != "The Matrix - Wikipedia" {
		t.Errorf("Unexpected title %q", first.Title)
	}
	if first.Snippet == "" {
		t.Error("Expected non-empty snippet")
	}
}

func TestDuckDuckGo_ConcurrentSearchesPaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ddgFixture))
	}))
	defer server.Close()

	// One provider instance is shared across verify workers
	provider := NewDuckDuckGoProvider("")
	provider.baseURL = server.URL
	provider.pace.gap = 20 * time.Millisecond

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := provider.Search(context.Background(), "jane doe trinity", 3); err != nil {
				t.Errorf("Search failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// Three calls through one pacer are spaced at least two gaps apart
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("Concurrent searches were not paced: finished in %v", elapsed)
	}
}

func TestDuckDuckGo_MaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ddgFixture))
	}))
	defer server.Close()

	provider := NewDuckDuckGoProvider("")
	provider.baseURL = server.URL
	provider.pace.gap = 0

	results, err := provider.Search(context.Background(), "query", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestSerpAPI_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("Expected api_key parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic_results":[
			{"position":1,"title":"IMDb page","link":"https://www.imdb.com/name/nm0000001/","snippet":"Known for The Matrix."}
		]}`))
	}))
	defer server.Close()

	provider := NewSerpAPIProvider("test-key")
	provider.baseURL = server.URL
	provider.pace.gap = 0

	results, err := provider.Search(context.Background(), "Jane Doe", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Domain != "imdb.com" {
		t.Errorf("Expected imdb.com domain, got %q", results[0].Domain)
	}
}

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider("", "", ""); err != nil || p != nil {
		t.Errorf("Expected nil provider for empty name, got %v, %v", p, err)
	}

	if _, err := NewProvider("serpapi", "", ""); err != ErrMissingAPIKey {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}

	if _, err := NewProvider("altavista", "", ""); err != ErrUnsupportedProvider {
		t.Errorf("Expected ErrUnsupportedProvider, got %v", err)
	}

	if p, err := NewProvider("duckduckgo", "", ""); err != nil || p == nil {
		t.Errorf("Expected duckduckgo provider, got %v, %v", p, err)
	}
}

func TestCachedProvider(t *testing.T) {
	inner := NewMockProvider([]Result{
		{Title: "Cached Hit", Link: "https://example.com", Rank: 1},
	})
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	provider := NewCachedProvider(inner, c, time.Minute)

	for i := 0; i < 3; i++ {
		results, err := provider.Search(context.Background(), "same query", 5)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 || results[0].Title != "Cached Hit" {
			t.Fatalf("Unexpected results: %v", results)
		}
	}

	if len(inner.Queries()) != 1 {
		t.Errorf("Expected inner provider hit once, got %d", len(inner.Queries()))
	}
}
