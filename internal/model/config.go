package model

import "time"

// Config holds the complete rolescout configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	TMDB        TMDBConfig        `yaml:"tmdb"`
	Search      SearchConfig      `yaml:"search"`
	LLM         LLMConfig         `yaml:"llm"`
	Verify      VerifyConfig      `yaml:"verify"`
	Authority   AuthorityConfig   `yaml:"authority"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls the shared HTTP client behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// CacheConfig controls response caching for scrape and search calls
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// TMDBConfig configures the structured metadata provider
type TMDBConfig struct {
	APIKey       string `yaml:"api_key,omitempty"`
	BaseURL      string `yaml:"base_url"`
	Language     string `yaml:"language"`
	MinVoteCount int    `yaml:"min_vote_count"` // Keep credits below this only if they name a character
	MaxResults   int    `yaml:"max_results"`
}

// SearchConfig selects and configures the web search provider.
// Provider "" disables web search; verification falls through to the LLM.
type SearchConfig struct {
	Provider   string        `yaml:"provider"` // duckduckgo, serpapi, ""
	APIKey     string        `yaml:"api_key,omitempty"`
	MaxResults int           `yaml:"max_results"`
	QueryDelay time.Duration `yaml:"query_delay"` // Pause between sequential queries
}

// LLMConfig configures the fallback language-model judge
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, ""
	Model     string `yaml:"model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// VerifyConfig holds the escalation thresholds. These are empirically tuned
// values; override with care.
type VerifyConfig struct {
	BatchSize         int           `yaml:"batch_size"`          // Roles verified per batch
	BatchDelay        time.Duration `yaml:"batch_delay"`         // Pause between batches
	MaxTitles         int           `yaml:"max_titles"`          // Verification budget per escalation pass
	MinVerifiedRoles  int           `yaml:"min_verified_roles"`  // Below this, trigger hail-mary
	MaxConfirmedRoles int           `yaml:"max_confirmed_roles"` // Hard cap after hail-mary
}

// AuthorityConfig lists domains whose search results outweigh generic pages
type AuthorityConfig struct {
	AuthoritativeDomains []string `yaml:"authoritative_domains"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	VerifyWorkers int `yaml:"verify_workers"`
	BatchWorkers  int `yaml:"batch_workers"` // Subjects processed in parallel in batch mode
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Rolescout/0.1 (role discovery; contact: see repo)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.rolescout/cache at startup
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			Language:     "en-US",
			MinVoteCount: 50,
			MaxResults:   8,
		},
		Search: SearchConfig{
			Provider:   "duckduckgo",
			MaxResults: 8,
			QueryDelay: 1 * time.Second,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 200,
		},
		Verify: VerifyConfig{
			BatchSize:         5,
			BatchDelay:        2 * time.Second,
			MaxTitles:         10,
			MinVerifiedRoles:  4,
			MaxConfirmedRoles: 6,
		},
		Authority: AuthorityConfig{
			AuthoritativeDomains: []string{
				"wikipedia.org",
				"imdb.com",
				"themoviedb.org",
				"rottentomatoes.com",
				"behindthevoiceactors.com",
				"fandom.com",
				"tvguide.com",
			},
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 3,
			BatchWorkers:  2,
		},
		Output: OutputConfig{},
	}
}
