package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rolescout/internal/model"
	"rolescout/internal/pipeline"
)

var (
	outJSON        string
	timeout        time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	cacheDir       string
	searchProvider string
	llmProvider    string
	llmModel       string
	minVerified    int
	maxConfirmed   int
	httpProxy      string
	httpsProxy     string
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover <name>",
	Short: "Discover verified notable roles for one celebrity",
	Long: `Discover runs the full escalation chain for a single celebrity:
- Fetch and rank credits from the metadata provider
- Cross-validate against the subject's encyclopedia article
- Verify doubtful roles through web search and an optional LLM judge
- Deduplicate franchise entries and cap the final list

Example:
  rolescout discover "Keanu Reeves"
  rolescout discover "Tara Strong" --json roles.json
  rolescout discover "Keanu Reeves" --llm ollama --llm-model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	// Output flags
	discoverCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: print to stdout)")

	// HTTP flags
	discoverCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall discovery timeout")
	discoverCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	discoverCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	discoverCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetches)")
	discoverCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "disk cache directory (default: $HOME/.rolescout/cache)")
	discoverCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	discoverCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Source flags
	discoverCmd.Flags().StringVar(&searchProvider, "search", "duckduckgo", "search provider (duckduckgo, serpapi, none)")
	discoverCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM judge provider (openai, anthropic, ollama)")
	discoverCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM judge model name")

	// Verification flags
	discoverCmd.Flags().IntVar(&minVerified, "min-verified", 0, "verified roles required before accepting (0 = default)")
	discoverCmd.Flags().IntVar(&maxConfirmed, "max-confirmed", 0, "hard cap on confirmed roles (0 = default)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	subject := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Discovering roles: %s\n", subject)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	result := p.Discover(ctx, subject)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Found %d roles (tier: %s)\n", len(result.Roles), result.Tier)
		fmt.Fprintf(os.Stderr, "✓ Verification cost: %.0f units\n", result.CostUnits)
		if result.RedFlags != nil && len(result.RedFlags.Flags) > 0 {
			fmt.Fprintf(os.Stderr, "⚠ %d red flags raised\n", len(result.RedFlags.Flags))
		}
		fmt.Fprintln(os.Stderr)
	}

	return renderResult(result, outJSON)
}

// buildConfig assembles configuration from defaults, environment
// variables, and flags, in rising priority.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 30 * time.Second
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	if cfg.Cache.Enabled {
		dir := cacheDir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = home + "/.rolescout/cache"
			}
		}
		cfg.Cache.Dir = dir
	}

	// Metadata provider credentials come from the environment only
	cfg.TMDB.APIKey = os.Getenv("TMDB_API_KEY")
	if cfg.TMDB.APIKey == "" && verbose {
		fmt.Fprintf(os.Stderr, "Warning: TMDB_API_KEY not set, skipping primary source\n")
	}

	switch searchProvider {
	case "none", "":
		cfg.Search.Provider = ""
	case "serpapi":
		cfg.Search.Provider = "serpapi"
		cfg.Search.APIKey = os.Getenv("SERPAPI_API_KEY")
		if cfg.Search.APIKey == "" {
			return nil, fmt.Errorf("SERPAPI_API_KEY environment variable not set")
		}
	default:
		cfg.Search.Provider = searchProvider
	}

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	if minVerified > 0 {
		cfg.Verify.MinVerifiedRoles = minVerified
	}
	if maxConfirmed > 0 {
		cfg.Verify.MaxConfirmedRoles = maxConfirmed
	}

	return cfg, nil
}

// renderResult writes the run result as JSON to a file, or as a short
// human-readable listing to stdout when no path is given.
func renderResult(result *model.RunResult, jsonPath string) error {
	if jsonPath != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		if err := os.WriteFile(jsonPath, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", jsonPath)
		return nil
	}

	fmt.Printf("%s (%s tier, %d roles)\n", result.Subject, result.Tier, len(result.Roles))
	for _, role := range result.Roles {
		line := "  - " + role.Title
		if role.HasCharacter() {
			line += " as " + role.Character
		}
		if role.Year > 0 {
			line += fmt.Sprintf(" (%d)", role.Year)
		}
		if role.Franchise != "" {
			line += " [" + role.Franchise + "]"
		}
		fmt.Println(line)
	}
	return nil
}
