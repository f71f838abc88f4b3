package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
)

func wordSchema() *Schema {
	return &Schema{
		Name: "test-words",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"words": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string"},
				},
			},
			"required": []any{"words"},
		},
	}
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(
		AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var gotBody string
	p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		jsonHandler(http.StatusOK, anthropicMessage(`{"words":["ocean","river"]}`, "end_turn"))(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write spelling lists.",
		Messages:  []Message{{Role: RoleUser, Content: "Two water words."}},
		Schema:    wordSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"words":["ocean","river"]}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 52 {
		t.Errorf("TotalTokens = %d, want 52", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Errorf("StopReason = %q, want end", resp.StopReason)
	}
	if !strings.Contains(gotBody, "claude-haiku-4-5") {
		t.Errorf("request did not use resolved model: %s", gotBody)
	}
}

func TestAnthropicProvider_SchemaViolation(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"words":[]}`, "end_turn")))

	_, err := p.Generate(context.Background(), Request{Schema: wordSchema(), MaxTokens: 64})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"words":["oce`, "max_tokens")))

	_, err := p.Generate(context.Background(), Request{Schema: wordSchema(), MaxTokens: 8})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var rl *ErrRateLimit
			return errors.As(err, &rl)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var u *ErrProviderUnavailable
			return errors.As(err, &u)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropic(t, jsonHandler(tt.status, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "api_error", "message": "nope"},
			}))
			_, err := p.Generate(context.Background(), Request{MaxTokens: 16})
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error %T (%v)", err, err)
			}
		})
	}
}

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-mini", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	return p
}

func chatCompletion(content string, finish openai.FinishReason) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 10, "total_tokens": 40},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		jsonHandler(http.StatusOK, chatCompletion(`{"words":["apple"]}`, openai.FinishReasonStop))(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "sys",
		Messages:  []Message{{Role: RoleUser, Content: "one fruit"}},
		Schema:    wordSchema(),
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 40 || resp.StopReason != "end" {
		t.Errorf("resp = %+v", resp)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want alias resolved to gpt-4o-mini", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("messages = %+v, want system then user", got.Messages)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.JSONSchema == nil || got.ResponseFormat.JSONSchema.Name != "test-words" {
		t.Errorf("response format = %+v", got.ResponseFormat)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		p := newTestOpenAI(t, jsonHandler(http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"message": "slow down", "type": "tokens"},
		}))
		_, err := p.Generate(context.Background(), Request{})
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
		}
	})

	t.Run("no choices", func(t *testing.T) {
		body := chatCompletion("", openai.FinishReasonStop)
		body["choices"] = []map[string]any{}
		p := newTestOpenAI(t, jsonHandler(http.StatusOK, body))
		_, err := p.Generate(context.Background(), Request{})
		var invalid *ErrInvalidResponse
		if !errors.As(err, &invalid) {
			t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
		}
	})
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "meta-llama/llama-3-8b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "meta-llama/llama-3-8b" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestModelAliases(t *testing.T) {
	tests := []struct {
		aliases map[string]string
		in      string
		want    string
	}{
		{anthropicModels, "claude-haiku", "claude-haiku-4-5"},
		{anthropicModels, "claude-opus-4-1", "claude-opus-4-1"},
		{openaiModels, "gpt-mini", "gpt-4o-mini"},
		{geminiModels, "gemini-flash", "gemini-2.5-flash"},
		{geminiModels, "gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string", "description": "list title"},
			"words": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 20,
				"items":    map[string]any{"type": "string"},
			},
			"level": map[string]any{"type": "string", "enum": []string{"easy", "hard"}},
		},
		"required": []any{"words"},
	})

	if s.Type != "OBJECT" {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	words := s.Properties["words"]
	if words == nil || words.Type != "ARRAY" || words.Items == nil || words.Items.Type != "STRING" {
		t.Fatalf("words = %+v", words)
	}
	if words.MinItems == nil || *words.MinItems != 3 || words.MaxItems == nil || *words.MaxItems != 20 {
		t.Errorf("bounds = %v..%v", words.MinItems, words.MaxItems)
	}
	if got := s.Properties["level"].Enum; len(got) != 2 {
		t.Errorf("enum = %v", got)
	}
	if s.Properties["title"].Description != "list title" {
		t.Errorf("description lost")
	}
	if len(s.Required) != 1 || s.Required[0] != "words" {
		t.Errorf("Required = %v", s.Required)
	}
}
