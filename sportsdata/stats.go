// Package sportsdata holds the concrete HTTP clients behind the tool
// layer's provider interfaces: the Rolling Insights stats feed, The Odds
// API, and a Perplexity-backed news search.
package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultStatsBaseURL = "https://rest.datafeeds.rolling-insights.com/api/v1"

// StatsClient talks to the Rolling Insights sports-data REST feed.
// Implements tools.StatsAPI.
type StatsClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewStatsClient creates a stats client. An empty baseURL uses the hosted
// feed; the token authenticates every request.
func NewStatsClient(baseURL, token string) *StatsClient {
	if baseURL == "" {
		baseURL = defaultStatsBaseURL
	}
	return &StatsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *StatsClient) get(ctx context.Context, endpoint string, params url.Values) (any, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("RSC_token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload any
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("failed to parse stats response: %w", err)
		}
		return payload, nil

	case http.StatusNotModified:
		return map[string]string{"status": "No data updates (304)"}, nil

	default:
		return nil, fmt.Errorf("stats API error %d: %s", resp.StatusCode, readBody(resp.Body))
	}
}

// readBody returns a bounded snippet of an error response body.
func readBody(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(data))
}

func teamParams(teamID int) url.Values {
	params := url.Values{}
	if teamID != 0 {
		params.Set("team_id", strconv.Itoa(teamID))
	}
	return params
}

// Schedule implements tools.StatsAPI.
func (c *StatsClient) Schedule(ctx context.Context, date string, teamID int) (any, error) {
	return c.get(ctx, "schedule/"+date+"/NBA", teamParams(teamID))
}

// WeeklySchedule implements tools.StatsAPI.
func (c *StatsClient) WeeklySchedule(ctx context.Context, date string, teamID int) (any, error) {
	return c.get(ctx, "schedule-week/"+date+"/NBA", teamParams(teamID))
}

// Live implements tools.StatsAPI.
func (c *StatsClient) Live(ctx context.Context, date string, teamID int, gameID string) (any, error) {
	params := teamParams(teamID)
	if gameID != "" {
		params.Set("game_id", gameID)
	}
	return c.get(ctx, "live/"+date+"/NBA", params)
}

// TeamInfo implements tools.StatsAPI.
func (c *StatsClient) TeamInfo(ctx context.Context, teamID int) (any, error) {
	return c.get(ctx, "team-info/NBA", teamParams(teamID))
}

// TeamStats implements tools.StatsAPI.
func (c *StatsClient) TeamStats(ctx context.Context, year string, teamID int) (any, error) {
	return c.get(ctx, "team-stats/"+year+"/NBA", teamParams(teamID))
}

// PlayerInfo implements tools.StatsAPI.
func (c *StatsClient) PlayerInfo(ctx context.Context, teamID int) (any, error) {
	return c.get(ctx, "player-info/NBA", teamParams(teamID))
}

// PlayerStats implements tools.StatsAPI.
func (c *StatsClient) PlayerStats(ctx context.Context, year string, teamID int) (any, error) {
	return c.get(ctx, "player-stats/"+year+"/NBA", teamParams(teamID))
}

// Injuries implements tools.StatsAPI.
func (c *StatsClient) Injuries(ctx context.Context, teamID int) (any, error) {
	return c.get(ctx, "injuries/NBA", teamParams(teamID))
}

// DepthCharts implements tools.StatsAPI.
func (c *StatsClient) DepthCharts(ctx context.Context, teamID int) (any, error) {
	return c.get(ctx, "depth-charts/NBA", teamParams(teamID))
}
