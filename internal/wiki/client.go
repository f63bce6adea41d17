package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rolescout/internal/cache"
	"rolescout/internal/util"
	"rolescout/internal/worker"
)

// ErrRobotsDisallowed is returned when robots.txt forbids fetching a page.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// ErrNotFound is returned for pages that do not exist. Callers usually
// treat it as an empty source rather than a failure.
var ErrNotFound = errors.New("page not found")

// Client fetches encyclopedia and community pages for a subject
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration

	// Overridable for tests
	wikipediaBase string
	fandomBase    string
}

// Option configures a Client
type Option func(*Client)

// WithCache enables response caching with the given TTL
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithRobots enables robots.txt checking
func WithRobots(r *util.RobotsChecker) Option {
	return func(cl *Client) {
		cl.robots = r
	}
}

// WithLimiter enables per-domain rate limiting, shared with other
// clients in batch mode
func WithLimiter(l *worker.Limiter) Option {
	return func(cl *Client) {
		cl.limiter = l
	}
}

// WithProxy routes requests through the configured proxies. Empty
// values fall back to the standard proxy environment variables.
func WithProxy(httpProxy, httpsProxy, noProxy string) Option {
	return func(cl *Client) {
		cl.httpClient.Transport = &http.Transport{
			Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
		}
	}
}

// NewClient creates a new encyclopedia client
func NewClient(timeout time.Duration, userAgent string, maxBytes int64, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:     userAgent,
		maxBytes:      maxBytes,
		wikipediaBase: "https://en.wikipedia.org",
		fandomBase:    "https://community.fandom.com",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// restSummary mirrors the fields we use from the REST summary endpoint
type restSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// FetchArticleText returns the lead text of the subject's encyclopedia
// article. A missing article returns ("", nil): absence of an article is
// a normal state, not a failure.
func (c *Client) FetchArticleText(ctx context.Context, subject string) (string, error) {
	endpoint := c.wikipediaBase + "/api/rest_v1/page/summary/" + url.PathEscape(pageSlug(subject))

	body, err := c.fetch(ctx, endpoint)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var summary restSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}

	return summary.Extract, nil
}

// FetchStructuredSections returns filmography-style content from the
// subject's article HTML. A missing article returns an empty Sections.
func (c *Client) FetchStructuredSections(ctx context.Context, subject string) (*Sections, error) {
	endpoint := c.wikipediaBase + "/wiki/" + url.PathEscape(pageSlug(subject))

	body, err := c.fetch(ctx, endpoint)
	if errors.Is(err, ErrNotFound) {
		return &Sections{}, nil
	}
	if err != nil {
		return nil, err
	}

	return parseSections(strings.NewReader(string(body)))
}

// FetchFandomTitles searches the community wikis for the subject and
// returns the matching page titles. A subject with no community presence
// returns an empty list.
func (c *Client) FetchFandomTitles(ctx context.Context, subject string) ([]string, error) {
	endpoint := c.fandomBase + "/wiki/Special:Search?" + url.Values{
		"query": {subject},
		"scope": {"cross-wiki"},
	}.Encode()

	body, err := c.fetch(ctx, endpoint)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return parseFandomResults(strings.NewReader(string(body)))
}

// fetch retrieves a URL with robots.txt checking and caching. Responses
// are cached by URL; only 2xx bodies and 404 sentinels are cached.
func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.CacheKey(rawURL)

	if c.cache != nil {
		if cached, found := c.cache.Get(key); found {
			if len(cached) == 0 {
				return nil, ErrNotFound
			}
			return cached, nil
		}
	}

	if c.robots != nil && !c.robots.IsAllowed(ctx, rawURL) {
		return nil, ErrRobotsDisallowed
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		if c.cache != nil {
			_ = c.cache.Set(key, nil, c.cacheTTL)
		}
		return nil, ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(key, body, c.cacheTTL)
	}

	return body, nil
}

// pageSlug converts a subject name to a wiki page slug
func pageSlug(subject string) string {
	return strings.ReplaceAll(strings.TrimSpace(subject), " ", "_")
}
