package tools

import "context"

// The tool layer consumes data providers through these narrow interfaces.
// Concrete HTTP clients live outside the core (see the sportsdata package);
// tests substitute fakes.

// StatsAPI is the sports-data provider surface the NBA tools consume.
// A teamID of 0 means "all teams"; an empty gameID means "all games".
type StatsAPI interface {
	Schedule(ctx context.Context, date string, teamID int) (any, error)
	WeeklySchedule(ctx context.Context, date string, teamID int) (any, error)
	Live(ctx context.Context, date string, teamID int, gameID string) (any, error)
	TeamInfo(ctx context.Context, teamID int) (any, error)
	TeamStats(ctx context.Context, year string, teamID int) (any, error)
	PlayerInfo(ctx context.Context, teamID int) (any, error)
	PlayerStats(ctx context.Context, year string, teamID int) (any, error)
	Injuries(ctx context.Context, teamID int) (any, error)
	DepthCharts(ctx context.Context, teamID int) (any, error)
}

// OddsQuery selects which betting lines to fetch.
type OddsQuery struct {
	Sport      string
	Regions    string
	Markets    string
	OddsFormat string
}

// OddsAPI is the odds-provider surface the odds tool consumes.
type OddsAPI interface {
	Odds(ctx context.Context, q OddsQuery) (any, error)
}

// SearchAPI is the web-search surface the news tool consumes.
type SearchAPI interface {
	Search(ctx context.Context, query string) (string, error)
}
