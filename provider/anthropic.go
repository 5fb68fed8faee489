package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"courtside/model"
	"courtside/tools"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// AnthropicProvider implements the Provider interface using Anthropic's
// official Go SDK for direct Claude API access.
type AnthropicProvider struct {
	client      *anthropic.Client
	model       anthropic.Model
	temperature float64
}

// NewAnthropicProvider creates a new Anthropic provider instance.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - model: Initial model to use (default: "claude-sonnet-4-5-20250929")
//   - temperature: Sampling temperature for every request
func NewAnthropicProvider(baseURL, apiKey, modelName string, temperature float64) (*AnthropicProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	anthropicModel := anthropic.ModelClaudeSonnet4_5_20250929
	if modelName != "" {
		anthropicModel = anthropic.Model(modelName)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client:      &client,
		model:       anthropicModel,
		temperature: temperature,
	}, nil
}

func (p *AnthropicProvider) params(messages []model.Message, catalog []mcptypes.Tool) anthropic.MessageNewParams {
	anthropicMessages, systemBlocks := toAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:       p.model,
		Messages:    anthropicMessages,
		MaxTokens:   4096, // Required by Anthropic API
		Temperature: anthropic.Float(p.temperature),
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	if len(catalog) > 0 {
		params.Tools = tools.ToAnthropicFormat(catalog)
	}
	return params
}

// Complete implements Provider.Complete with a single batch request.
func (p *AnthropicProvider) Complete(ctx context.Context, messages []model.Message, catalog []mcptypes.Tool) (*model.Completion, error) {
	msg, err := p.client.Messages.New(ctx, p.params(messages, catalog))
	if err != nil {
		return nil, fmt.Errorf("Anthropic request error: %w", err)
	}
	return completionFromContent(msg.Content), nil
}

// Stream implements Provider.Stream. Text deltas are forwarded as they
// arrive; tool_use blocks are read from the accumulated message once the
// stream has ended, so intent only surfaces when it is whole.
func (p *AnthropicProvider) Stream(ctx context.Context, messages []model.Message, catalog []mcptypes.Tool, onDelta model.StreamCallback) (*model.Completion, error) {
	stream := p.client.Messages.NewStreaming(ctx, p.params(messages, catalog))

	msg := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := msg.Accumulate(event); err != nil {
			return nil, fmt.Errorf("error accumulating message: %w", err)
		}

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if onDelta != nil {
					if err := onDelta(deltaVariant.Text); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("Anthropic streaming error: %w", err)
	}

	return completionFromContent(msg.Content), nil
}

// completionFromContent flattens an Anthropic content block list into text
// plus tool calls, keeping the server-assigned tool_use ids.
func completionFromContent(content []anthropic.ContentBlockUnion) *model.Completion {
	completion := &model.Completion{}
	for _, block := range content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			completion.Content += variant.Text

		case anthropic.ToolUseBlock:
			var args map[string]any
			if err := json.Unmarshal(variant.Input, &args); err != nil {
				args = nil
			}
			completion.ToolCalls = append(completion.ToolCalls, model.ToolCall{
				ID:           variant.ID,
				Name:         variant.Name,
				Arguments:    args,
				RawArguments: string(variant.Input),
			})
		}
	}
	return completion
}

// GetModel implements Provider.GetModel.
func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}

// SetModel implements Provider.SetModel.
func (p *AnthropicProvider) SetModel(model string) {
	p.model = anthropic.Model(model)
}

// Ping implements Provider.Ping. Anthropic has no health endpoint, so a
// minimal one-token request stands in.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("Anthropic ping failed: %w", err)
	}
	return nil
}
