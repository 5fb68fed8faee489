package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Completion is the outcome of one model round: either tool-call intent or
// final content. A round carrying ToolCalls must be resolved before the next
// round; a round with none is the turn's final answer.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// StreamCallback is called for each plain-content fragment of a streamed
// response, in generation order. Returning an error aborts the stream.
type StreamCallback func(chunk string) error

// Provider abstracts chat-completion backends (OpenAI-compatible, Anthropic,
// Ollama) using provider-agnostic types.
//
// This interface lives in the model package (not provider) to avoid import
// cycles: provider implementations import model, and the agent loop uses the
// interface without importing the provider package.
type Provider interface {
	// Complete sends the conversation plus tool catalog and blocks for the
	// full response.
	Complete(ctx context.Context, messages []Message, tools []mcptypes.Tool) (*Completion, error)

	// Stream sends the conversation plus tool catalog and yields content
	// fragments through onDelta as they arrive. Tool-call argument
	// fragments are assembled internally; the returned Completion carries
	// the fully assembled calls. onDelta may be nil.
	Stream(ctx context.Context, messages []Message, tools []mcptypes.Tool, onDelta StreamCallback) (*Completion, error)

	// GetModel returns the active model name.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}
