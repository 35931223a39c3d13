package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Provider abstracts LLM provider implementations (OpenAI, Anthropic, Ollama)
// using provider-agnostic types from the model layer.
//
// This interface is defined in the model package (not the provider package)
// to avoid import cycles: provider implementations import model, and the
// agent loop consumes the interface without importing the provider package.
//
// Chat is a single non-streaming round trip: the full transcript goes out,
// one assistant response comes back. The agent loop owns turn-taking; the
// provider owns nothing but the wire format.
type Provider interface {
	// Chat sends the transcript (plus tool definitions, if any) and returns
	// the assistant's response. Implementations must honor ctx cancellation
	// and deadlines.
	Chat(ctx context.Context, messages []Message, tools []mcptypes.Tool) (*ChatResponse, error)

	// ListModels returns the models available from this provider.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// GetModel returns the currently selected model identifier.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable with the configured
	// credentials. Never called during configuration resolution.
	Ping(ctx context.Context) error
}

// ChatResponse is one assistant response from a provider.
//
// Text and ToolCalls are not mutually exclusive: some models emit
// explanatory text alongside tool calls. The response is final (ends the
// agent loop) exactly when ToolCalls is empty.
type ChatResponse struct {
	Text      string
	ToolCalls []ToolCall
	Usage     Usage
}

// Usage holds token counts as reported by the provider for one response.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// Add accumulates another response's usage into u.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// ModelInfo describes a model offered by a provider.
type ModelInfo struct {
	Name     string
	Provider string
	Size     int64 // bytes on disk for Ollama, 0 for cloud providers
}
