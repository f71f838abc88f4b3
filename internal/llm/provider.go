// Package llm talks to hosted language models. It is used to draft new
// word lists; practice itself never needs a model.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per call.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Request is a single-shot prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema asks the provider for structured JSON output. Nil means free
	// text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is who sent a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "word-list". Providers use it as the tool
	// or schema name.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is what a provider returned.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
