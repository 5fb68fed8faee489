package provider

import (
	"context"
	"fmt"

	"courtside/model"
	"courtside/tools"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIProvider implements the Provider interface using OpenAI's official
// Go SDK. Any OpenAI-compatible endpoint works through the baseURL.
type OpenAIProvider struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIProvider creates a new OpenAI provider instance.
//
// Parameters:
//   - baseURL: API base URL (default: "https://api.openai.com/v1")
//   - apiKey: API key (required)
//   - model: Initial model to use (can be changed with SetModel)
//   - temperature: Sampling temperature for every request
func NewOpenAIProvider(baseURL, apiKey, model string, temperature float64) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

func (p *OpenAIProvider) params(messages []model.Message, catalog []mcptypes.Tool) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:    toOpenAIMessages(messages),
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(p.temperature),
	}
	if len(catalog) > 0 {
		params.Tools = tools.ToOpenAIFormat(catalog)
	}
	return params
}

// Complete implements Provider.Complete with a single batch request.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []model.Message, catalog []mcptypes.Tool) (*model.Completion, error) {
	resp, err := p.client.Chat.Completions.New(ctx, p.params(messages, catalog))
	if err != nil {
		return nil, fmt.Errorf("OpenAI request error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return &model.Completion{}, nil
	}

	msg := resp.Choices[0].Message
	completion := &model.Completion{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		completion.ToolCalls = append(completion.ToolCalls, model.ToolCall{
			ID:           tc.ID,
			Name:         tc.Function.Name,
			Arguments:    model.ParseToolArguments(tc.Function.Arguments),
			RawArguments: tc.Function.Arguments,
		})
	}
	return completion, nil
}

// Stream implements Provider.Stream. Text deltas are forwarded to onDelta as
// they arrive; tool-call fragments are assembled per positional index and
// only surface in the returned completion once the stream has ended.
func (p *OpenAIProvider) Stream(ctx context.Context, messages []model.Message, catalog []mcptypes.Tool, onDelta model.StreamCallback) (*model.Completion, error) {
	stream := p.client.Chat.Completions.NewStreaming(ctx, p.params(messages, catalog))

	acc := newToolCallAccumulator()
	var content string

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta

		for _, tc := range delta.ToolCalls {
			acc.add(tc.Index, tc.ID, tc.Function.Name, tc.Function.Arguments)
		}

		if delta.Content != "" {
			content += delta.Content
			if onDelta != nil {
				if err := onDelta(delta.Content); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("OpenAI streaming error: %w", err)
	}

	return &model.Completion{
		Content:   content,
		ToolCalls: acc.promote(),
	}, nil
}

// GetModel implements Provider.GetModel.
func (p *OpenAIProvider) GetModel() string {
	return p.model
}

// SetModel implements Provider.SetModel.
func (p *OpenAIProvider) SetModel(model string) {
	p.model = model
}

// Ping implements Provider.Ping by attempting to list models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return fmt.Errorf("OpenAI ping failed: %w", err)
	}
	return nil
}
