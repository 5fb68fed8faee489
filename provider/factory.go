// Package provider implements chat-completion backends behind the
// model.Provider interface: OpenAI-compatible endpoints, Anthropic, and a
// local Ollama server. Each backend does its own message and tool-format
// conversion; streamed tool-call fragments are assembled per positional
// index before they surface as invocation requests.
package provider

import (
	"fmt"

	"courtside/model"
)

// ProviderType identifies a backend implementation.
type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOllama    ProviderType = "ollama"
)

// Config carries everything needed to construct a provider.
type Config struct {
	Type        ProviderType
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
}

// NewProvider creates a provider based on configuration. It dispatches to
// the backend constructor named by cfg.Type and returns its error when the
// backend cannot be built (missing API key, invalid URL).
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Temperature)
	case ProviderTypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Temperature)
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
