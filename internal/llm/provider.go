package llm

import (
	"context"
	"fmt"
)

// Provider defines the interface for language-model judgment backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Judge asks the model whether the subject played the given role
	Judge(ctx context.Context, req JudgeRequest) (*JudgeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// JudgeRequest contains one subject/character/title question
type JudgeRequest struct {
	// Subject is the public figure's display name
	Subject string

	// Character is the claimed character name (may be empty)
	Character string

	// Title is the claimed work title
	Title string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// JudgeResponse contains the raw model output plus accounting data.
// Callers parse Raw with ParseVerdict; providers never interpret it.
type JudgeResponse struct {
	// Raw is the unparsed model response
	Raw string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 200,
	}
}

const judgeSystemPrompt = "You are a film and television fact checker. " +
	"Answer only in the exact CONFIDENCE|DECISION|REASON format requested."

// BuildJudgePrompt constructs the default role-judgment prompt. The fixed
// answer format is what ParseVerdict expects.
func BuildJudgePrompt(req JudgeRequest) string {
	roleDesc := req.Title
	if req.Character != "" {
		roleDesc = fmt.Sprintf("%s in %s", req.Character, req.Title)
	}

	return fmt.Sprintf(`Did %s actually play (or voice) the role of %s?

Answer with exactly one line in this format:
CONFIDENCE|DECISION|REASON

Where:
- CONFIDENCE is HIGH, MEDIUM, LOW, or UNKNOWN
- DECISION is YES or NO
- REASON is one short sentence

Examples:
HIGH|YES|Well documented lead role.
HIGH|NO|That character was played by someone else.
UNKNOWN|YES|Cannot confirm or deny from known filmography.

Answer for: %s as %s`, req.Subject, roleDesc, req.Subject, roleDesc)
}
