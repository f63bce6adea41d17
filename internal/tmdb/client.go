package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Person represents a single TMDB person search match.
type Person struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	KnownForDepartment string  `json:"known_for_department"`
	Popularity         float64 `json:"popularity"`
}

type personSearchResponse struct {
	Page         int      `json:"page"`
	Results      []Person `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Credit is one cast entry from a person's combined movie/TV credits.
type Credit struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Character    string  `json:"character"`
	MediaType    string  `json:"media_type"`
	GenreIDs     []int64 `json:"genre_ids"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	EpisodeCount int     `json:"episode_count"`
}

type combinedCreditsResponse struct {
	ID   int64    `json:"id"`
	Cast []Credit `json:"cast"`
	Crew []Credit `json:"crew"`
}

// DisplayTitle returns the movie title or TV name, whichever is set.
func (c Credit) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// Year extracts the release/first-air year, or 0 when unknown.
func (c Credit) Year() int {
	date := c.ReleaseDate
	if date == "" {
		date = c.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		// Some entries carry a bare year
		if y, yerr := time.Parse("2006", date[:4]); yerr == nil {
			return y.Year()
		}
		return 0
	}
	return t.Year()
}

// AnimationGenreID is TMDB's genre identifier for animation, used to guess
// voice mediums.
const AnimationGenreID = 16

// IsAnimation reports whether the credit carries the animation genre.
func (c Credit) IsAnimation() bool {
	for _, id := range c.GenreIDs {
		if id == AnimationGenreID {
			return true
		}
	}
	return false
}

// Searcher defines the TMDB operations used by discovery.
type Searcher interface {
	SearchPerson(ctx context.Context, name string) (*Person, error)
	CombinedCredits(ctx context.Context, personID int64) ([]Credit, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	language = strings.TrimSpace(language)
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchPerson resolves a display name to the first matching TMDB person.
// A search with zero results returns (nil, nil); the pipeline treats that as
// "primary source empty", not an error.
func (c *Client) SearchPerson(ctx context.Context, name string) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/person")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("query", name)
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload personSearchResponse
	if err := c.get(ctx, endpoint.String(), "person search", &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}
	return &payload.Results[0], nil
}

// CombinedCredits retrieves the person's full movie+TV cast list.
func (c *Client) CombinedCredits(ctx context.Context, personID int64) ([]Credit, error) {
	if personID <= 0 {
		return nil, errors.New("person id must be positive")
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/person/%d/combined_credits", c.baseURL, personID))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload combinedCreditsResponse
	if err := c.get(ctx, endpoint.String(), "combined credits", &payload); err != nil {
		return nil, err
	}
	return payload.Cast, nil
}

func (c *Client) get(ctx context.Context, rawURL, what string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", what, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
