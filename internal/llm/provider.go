package llm

import (
	"context"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the raw completion text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its text response.
	// Providers make no promise about the shape of the text; callers that
	// expect JSON must extract it themselves.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional.
	System string

	// Messages is the conversation history. Quiz generation sends a single
	// user message.
	Messages []Message

	// JSON asks the provider to use its native JSON output mode when it
	// has one. It is a hint only.
	JSON bool

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the raw generated text.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
