package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"courtside/cache"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// timeNow is swapped in tests to pin date-dependent defaults.
var timeNow = time.Now

func today() string {
	return timeNow().UTC().Format("2006-01-02")
}

// currentSeasonYear returns the season start year the data provider expects:
// the 2023-24 season is "2023", and the new season starts in October.
func currentSeasonYear() string {
	now := timeNow().UTC()
	if now.Month() >= time.October {
		return strconv.Itoa(now.Year())
	}
	return strconv.Itoa(now.Year() - 1)
}

// NBATools builds the sports-data tool set over a StatsAPI, routing
// read-mostly fetches through the result cache with per-category TTLs.
type NBATools struct {
	stats  StatsAPI
	store  *cache.Store
	policy cache.Policy
}

// NewNBATools creates the tool set. store may be nil to disable caching.
func NewNBATools(stats StatsAPI, store *cache.Store, policy cache.Policy) *NBATools {
	return &NBATools{stats: stats, store: store, policy: policy}
}

// All returns every NBA tool in catalog order.
func (n *NBATools) All() []Tool {
	return []Tool{
		n.dailySchedule(),
		n.weeklySchedule(),
		n.liveScores(),
		n.teamDetails(),
		n.teamStats(),
		n.playerInfo(),
		n.playerStats(),
		n.injuries(),
		n.depthChart(),
	}
}

func objectSchema(props map[string]any, required ...string) mcptypes.ToolInputSchema {
	return mcptypes.ToolInputSchema{Type: "object", Properties: props, Required: required}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// resolveTeamArg resolves an optional team_name argument. The second return
// is a model-visible error message when the name cannot be resolved.
func resolveTeamArg(args map[string]any) (int, string) {
	name := argString(args, "team_name")
	if name == "" {
		return 0, ""
	}
	id := ResolveTeam(name)
	if id == 0 {
		return 0, fmt.Sprintf("Error: Could not find team '%s'. Please check spelling.", name)
	}
	return id, ""
}

func (n *NBATools) dailySchedule() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_daily_schedule",
			Description: "Get NBA games schedule for a specific date.",
			InputSchema: objectSchema(map[string]any{
				"date":      stringProp("Date in YYYY-MM-DD. Default: Today."),
				"team_name": stringProp("Team filter (e.g. 'Lakers')."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			date := argString(args, "date")
			if date == "" {
				date = today()
			}
			teamID, errMsg := resolveTeamArg(args)
			if errMsg != "" {
				return errMsg, nil
			}
			return n.fetchSchedule(ctx, date, teamID)
		},
	}
}

// fetchSchedule is shared with the live-scores game-id resolution path.
func (n *NBATools) fetchSchedule(ctx context.Context, date string, teamID int) (string, error) {
	params := map[string]any{"date": date, "team_id": teamID}
	return cachedFetch(ctx, n.store, n.policy, cache.CategoryScheduleToday, "get_daily_schedule", params, func(ctx context.Context) (any, error) {
		return n.stats.Schedule(ctx, date, teamID)
	})
}

func (n *NBATools) weeklySchedule() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_weekly_schedule",
			Description: "Get the NBA schedule for 7 days starting from the given date.",
			InputSchema: objectSchema(map[string]any{
				"date":      stringProp("Start date in YYYY-MM-DD. Default: Today."),
				"team_name": stringProp("Team filter (e.g. 'Warriors')."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			date := argString(args, "date")
			if date == "" {
				date = today()
			}
			teamID, errMsg := resolveTeamArg(args)
			if errMsg != "" {
				return errMsg, nil
			}
			params := map[string]any{"date": date, "team_id": teamID}
			return cachedFetch(ctx, n.store, n.policy, cache.CategoryScheduleWeek, "get_weekly_schedule", params, func(ctx context.Context) (any, error) {
				return n.stats.WeeklySchedule(ctx, date, teamID)
			})
		},
	}
}

func (n *NBATools) liveScores() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_live_scores",
			Description: "Get live scores and full boxscores. Automatically finds the correct game when you provide a team name - no need to look up game IDs first.",
			InputSchema: objectSchema(map[string]any{
				"date":      stringProp("Date in YYYY-MM-DD. Default: Today."),
				"team_name": stringProp("Team name (e.g. 'Lakers'). Highly recommended."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			date := argString(args, "date")
			if date == "" {
				date = today()
			}
			teamID, errMsg := resolveTeamArg(args)
			if errMsg != "" {
				return errMsg, nil
			}

			var gameID string
			if teamID != 0 {
				// Resolve the game id from the daily schedule so the
				// model never has to chain schedule -> live itself.
				scheduleJSON, err := n.fetchSchedule(ctx, date, teamID)
				if err != nil {
					return "", err
				}
				gameID = findGameID(scheduleJSON)
				if gameID == "" {
					return toJSON(map[string]string{
						"info":       fmt.Sprintf("No games found for %s on %s.", argString(args, "team_name"), date),
						"suggestion": "Try a different date or check the weekly schedule.",
					}), nil
				}
			}

			params := map[string]any{"date": date, "team_id": teamID, "game_id": gameID}
			return cachedFetch(ctx, n.store, n.policy, cache.CategoryLive, "get_live_scores", params, func(ctx context.Context) (any, error) {
				return n.stats.Live(ctx, date, teamID, gameID)
			})
		},
	}
}

func (n *NBATools) teamDetails() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_team_details",
			Description: "Get general team info (Arena, Conference, etc.).",
			InputSchema: objectSchema(map[string]any{
				"team_name": stringProp("Team name (e.g. 'Celtics'). Returns all teams if omitted."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			teamID, errMsg := resolveTeamArg(args)
			if errMsg != "" {
				return errMsg, nil
			}
			params := map[string]any{"team_id": teamID}
			return cachedFetch(ctx, n.store, n.policy, cache.CategoryTeamInfo, "get_team_details", params, func(ctx context.Context) (any, error) {
				return n.stats.TeamInfo(ctx, teamID)
			})
		},
	}
}

func (n *NBATools) teamStats() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_team_stats",
			Description: "Get season stats for a team.",
			InputSchema: objectSchema(map[string]any{
				"team_name": stringProp("Team name (e.g. 'Denver')."),
				"year":      stringProp("Season start year. DO NOT SET THIS unless the user asks for a specific past season. Current season is used automatically."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			year := argString(args, "year")
			if year == "" {
				year = currentSeasonYear()
			}
			teamID, errMsg := resolveTeamArg(args)
			if errMsg != "" {
				return errMsg, nil
			}
			params := map[string]any{"year": year, "team_id": teamID}
			return cachedFetch(ctx, n.store, n.policy, cache.CategorySeasonStats, "get_team_stats", params, func(ctx context.Context) (any, error) {
				return n.stats.TeamStats(ctx, year, teamID)
			})
		},
	}
}

func (n *NBATools) playerInfo() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_player_info",
			Description: "Get list of players and their details (Position, Height, Age).",
			InputSchema: objectSchema(map[string]any{
				"team_name": stringProp("Filter by team name. Highly recommended to avoid listing every player in the league."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			teamID, errMsg := resolveTeamArg(args)
			if errMsg != "" {
				return errMsg, nil
			}
			params := map[string]any{"team_id": teamID}
			return cachedFetch(ctx, n.store, n.policy, cache.CategoryRoster, "get_player_info", params, func(ctx context.Context) (any, error) {
				return n.stats.PlayerInfo(ctx, teamID)
			})
		},
	}
}

func (n *NBATools) playerStats() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_player_stats",
			Description: "Get player season stats.",
			InputSchema: objectSchema(map[string]any{
				"team_name": stringProp("Team name (e.g. 'Warriors'). Filter by team."),
				"year":      stringProp("Season start year. DO NOT SET THIS unless the user asks for a specific past season. Current season is used automatically."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			year := argString(args, "year")
			if year == "" {
				year = currentSeasonYear()
			}
			teamID, errMsg := resolveTeamArg(args)
			if errMsg != "" {
				return errMsg, nil
			}
			params := map[string]any{"year": year, "team_id": teamID}
			return cachedFetch(ctx, n.store, n.policy, cache.CategorySeasonStats, "get_player_stats", params, func(ctx context.Context) (any, error) {
				return n.stats.PlayerStats(ctx, year, teamID)
			})
		},
	}
}

func (n *NBATools) injuries() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_injuries",
			Description: "Get injury report.",
			InputSchema: objectSchema(map[string]any{
				"team_name": stringProp("Team name (e.g. 'Heat')."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			teamID, errMsg := resolveTeamArg(args)
			if errMsg != "" {
				return errMsg, nil
			}
			params := map[string]any{"team_id": teamID}
			return cachedFetch(ctx, n.store, n.policy, cache.CategoryInjuries, "get_injuries", params, func(ctx context.Context) (any, error) {
				return n.stats.Injuries(ctx, teamID)
			})
		},
	}
}

func (n *NBATools) depthChart() Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_depth_chart",
			Description: "Get team depth chart / rotation.",
			InputSchema: objectSchema(map[string]any{
				"team_name": stringProp("Team name (e.g. 'Bucks')."),
			}, "team_name"),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			name := argString(args, "team_name")
			teamID := ResolveTeam(name)
			if teamID == 0 {
				return fmt.Sprintf("Error: Could not find team '%s'. Please check spelling.", name), nil
			}
			params := map[string]any{"team_id": teamID}
			return cachedFetch(ctx, n.store, n.policy, cache.CategoryDepthChart, "get_depth_chart", params, func(ctx context.Context) (any, error) {
				return n.stats.DepthCharts(ctx, teamID)
			})
		},
	}
}

// findGameID extracts the first game id from a daily schedule payload.
// Teams play at most one game per day, so the first match is the game.
func findGameID(scheduleJSON string) string {
	var payload struct {
		Data struct {
			NBA []struct {
				GameID string `json:"game_ID"`
			} `json:"NBA"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(scheduleJSON), &payload); err != nil {
		return ""
	}
	if len(payload.Data.NBA) == 0 {
		return ""
	}
	return payload.Data.NBA[0].GameID
}
