package sportsdata

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	perplexityBaseURL = "https://api.perplexity.ai"
	searchModel       = "sonar-pro"
)

// SearchClient answers free-text queries through Perplexity's search
// models. The endpoint is OpenAI-compatible, so the same SDK serves.
// Implements tools.SearchAPI.
type SearchClient struct {
	client openai.Client
	model  string
}

// NewSearchClient creates a search client over the Perplexity API.
func NewSearchClient(apiKey string) (*SearchClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Perplexity API key is required")
	}
	return &SearchClient{
		client: openai.NewClient(
			option.WithBaseURL(perplexityBaseURL),
			option.WithAPIKey(apiKey),
		),
		model: searchModel,
	}, nil
}

// Search implements tools.SearchAPI.
func (c *SearchClient) Search(ctx context.Context, query string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a helpful search assistant. Return concise, factual summaries."),
			openai.UserMessage(query),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("search returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
