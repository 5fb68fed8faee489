package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courtside/tools"
)

const defaultOddsBaseURL = "https://api.the-odds-api.com/v4"

// OddsClient talks to The Odds API. Implements tools.OddsAPI.
type OddsClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOddsClient creates an odds client. An empty baseURL uses the hosted
// API.
func NewOddsClient(baseURL, apiKey string) *OddsClient {
	if baseURL == "" {
		baseURL = defaultOddsBaseURL
	}
	return &OddsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 12 * time.Second},
	}
}

// Odds implements tools.OddsAPI. The response wraps the lines with the
// provider's quota headers so agents can see remaining request budget.
func (c *OddsClient) Odds(ctx context.Context, q tools.OddsQuery) (any, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", q.Regions)
	params.Set("markets", q.Markets)
	params.Set("dateFormat", "iso")
	params.Set("oddsFormat", q.OddsFormat)

	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, q.Sport, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build odds request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odds request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload any
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("failed to parse odds response: %w", err)
		}
		return map[string]any{
			"data": payload,
			"meta": map[string]string{
				"requests_remaining": resp.Header.Get("x-requests-remaining"),
				"requests_used":      resp.Header.Get("x-requests-used"),
			},
		}, nil

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("odds API auth error (%d): %s", resp.StatusCode, readBody(resp.Body))
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("odds API rate limit exceeded (429): %s", readBody(resp.Body))
	default:
		return nil, fmt.Errorf("odds API error %d: %s", resp.StatusCode, readBody(resp.Body))
	}
}
