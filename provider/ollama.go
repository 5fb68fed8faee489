package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courtside/model"
	"courtside/tools"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/ollama/ollama/api"
)

// OllamaProvider implements the Provider interface against a local Ollama
// server. Ollama assigns no tool-call ids, so ids are synthesized before the
// calls leave the provider.
type OllamaProvider struct {
	client      *api.Client
	model       string
	temperature float64
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL. If empty, defaults to
//     "http://localhost:11434".
//   - model: The model name. If empty, defaults to "llama3.1:latest".
//   - temperature: Sampling temperature for every request
func NewOllamaProvider(baseURL, model string, temperature float64) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaProvider{
		client:      api.NewClient(parsedURL, http.DefaultClient),
		model:       model,
		temperature: temperature,
	}, nil
}

func (p *OllamaProvider) request(messages []model.Message, catalog []mcptypes.Tool, stream bool) *api.ChatRequest {
	req := &api.ChatRequest{
		Model:    p.model,
		Messages: toOllamaMessages(messages),
		Stream:   &stream,
		Options:  map[string]any{"temperature": p.temperature},
	}
	if len(catalog) > 0 {
		req.Tools = tools.ToOllamaFormat(catalog)
	}
	return req
}

// Complete implements Provider.Complete with a single non-streamed request.
func (p *OllamaProvider) Complete(ctx context.Context, messages []model.Message, catalog []mcptypes.Tool) (*model.Completion, error) {
	completion := &model.Completion{}
	err := p.client.Chat(ctx, p.request(messages, catalog, false), func(resp api.ChatResponse) error {
		completion.Content += resp.Message.Content
		completion.ToolCalls = append(completion.ToolCalls, fromOllamaToolCalls(resp.Message.ToolCalls)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Ollama request error: %w", err)
	}
	assignToolCallIDs(completion.ToolCalls)
	return completion, nil
}

// Stream implements Provider.Stream. Content chunks are forwarded to onDelta
// as they arrive; tool calls surface only in the returned completion.
func (p *OllamaProvider) Stream(ctx context.Context, messages []model.Message, catalog []mcptypes.Tool, onDelta model.StreamCallback) (*model.Completion, error) {
	completion := &model.Completion{}
	err := p.client.Chat(ctx, p.request(messages, catalog, true), func(resp api.ChatResponse) error {
		if resp.Message.Content != "" {
			completion.Content += resp.Message.Content
			if onDelta != nil {
				if err := onDelta(resp.Message.Content); err != nil {
					return err
				}
			}
		}
		completion.ToolCalls = append(completion.ToolCalls, fromOllamaToolCalls(resp.Message.ToolCalls)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Ollama streaming error: %w", err)
	}
	assignToolCallIDs(completion.ToolCalls)
	return completion, nil
}

// GetModel implements Provider.GetModel.
func (p *OllamaProvider) GetModel() string {
	return p.model
}

// SetModel implements Provider.SetModel.
func (p *OllamaProvider) SetModel(model string) {
	p.model = model
}

// Ping implements Provider.Ping by listing local models.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.client.List(ctx); err != nil {
		return fmt.Errorf("Ollama ping failed: %w", err)
	}
	return nil
}

// Models known to handle the tool-calling API; checked by prefix, most
// specific first.
var toolCallingModels = map[string]bool{
	"qwen":      true,
	"llama3.1":  true,
	"llama3.2":  true,
	"llama3.3":  true,
	"mistral":   true,
	"command-r": true,
	"granite3":  true,

	"llama3":   false,
	"phi":      false,
	"gemma":    false,
	"deepseek": false,
}

var orderedPrefixes = []string{
	"llama3.3", "llama3.2", "llama3.1",
	"command-r", "qwen", "mistral", "granite3",
	"llama3",
	"deepseek", "phi", "gemma",
}

// ModelSupportsToolCalling reports whether a model name is known to support
// Ollama's tool-calling API. Unknown models are assumed not to.
func ModelSupportsToolCalling(modelName string) bool {
	modelName = strings.ToLower(modelName)
	for _, prefix := range orderedPrefixes {
		if strings.HasPrefix(modelName, prefix) {
			return toolCallingModels[prefix]
		}
	}
	return false
}
