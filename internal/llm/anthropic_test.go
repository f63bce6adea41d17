package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicProvider_Judge_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key header, got %s", r.Header.Get("x-api-key"))
		}

		resp := anthropicResponse{
			ID:    "msg_123",
			Model: "claude-3-5-haiku-20241022",
			Content: []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			}{
				{Type: "text", Text: "UNKNOWN|YES|Cannot confirm or deny from known filmography."},
			},
		}
		resp.Usage.InputTokens = 50
		resp.Usage.OutputTokens = 15
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Judge(context.Background(), JudgeRequest{
		Subject: "Jane Doe",
		Title:   "Obscure Indie Film",
	})
	if err != nil {
		t.Fatalf("Judge failed: %v", err)
	}

	if resp.TokensUsed != 65 {
		t.Errorf("Expected 65 tokens, got %d", resp.TokensUsed)
	}

	verdict := ParseVerdict(resp.Raw)
	if !verdict.Valid {
		t.Error("Expected UNKNOWN|YES to remain valid")
	}
}

func TestNewAnthropicProvider_MissingKey(t *testing.T) {
	if _, err := NewAnthropicProvider(Config{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestAnthropicProvider_Judge_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		apiErr := anthropicError{Type: "error"}
		apiErr.Error.Type = "authentication_error"
		apiErr.Error.Message = "invalid x-api-key"
		_ = json.NewEncoder(w).Encode(apiErr)
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "bad-key", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Judge(context.Background(), JudgeRequest{Subject: "X", Title: "Y"}); err == nil {
		t.Error("Expected API error to propagate")
	}
}
