package llm

import (
	"context"
	"fmt"
)

// Judge wraps a Provider behind the role-judgment use case. A Judge with a
// nil provider is valid and permanently disabled.
type Judge struct {
	provider Provider
	config   Config
}

// NewJudge creates a judge from configuration. An empty provider name
// yields a disabled judge, not an error.
func NewJudge(config Config) (*Judge, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	return &Judge{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (j *Judge) IsEnabled() bool {
	return j != nil && j.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (j *Judge) ProviderName() string {
	if !j.IsEnabled() {
		return ""
	}
	return j.provider.Name()
}

// JudgeRole asks the model whether subject played character in title and
// parses the answer into a Verdict
func (j *Judge) JudgeRole(ctx context.Context, subject, character, title string) (Verdict, error) {
	if !j.IsEnabled() {
		return Verdict{}, fmt.Errorf("LLM judge is disabled")
	}

	resp, err := j.provider.Judge(ctx, JudgeRequest{
		Subject:   subject,
		Character: character,
		Title:     title,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("judge role: %w", err)
	}

	return ParseVerdict(resp.Raw), nil
}
