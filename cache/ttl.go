package cache

import "time"

// Category classifies cached data by how quickly it goes stale.
type Category string

const (
	// CategoryScheduleToday expires at the next local-day boundary: the
	// slate for "today" is fixed until the calendar rolls over.
	CategoryScheduleToday Category = "schedule_today"
	CategoryScheduleWeek  Category = "schedule_week"

	// Intraday data: changes while games are on.
	CategoryLive       Category = "live"
	CategoryInjuries   Category = "injuries"
	CategoryDepthChart Category = "depth_chart"
	CategoryOdds       Category = "odds"

	// Slow-moving aggregates and static metadata.
	CategorySeasonStats Category = "season_stats"
	CategoryRoster      Category = "roster"
	CategoryTeamInfo    Category = "team_info"
)

// defaultTTLs holds the built-in policy for fixed-duration categories.
// CategoryScheduleToday is computed from the clock instead.
var defaultTTLs = map[Category]time.Duration{
	CategoryScheduleWeek: 1 * time.Hour,
	CategoryLive:         2 * time.Minute,
	CategoryInjuries:     15 * time.Minute,
	CategoryDepthChart:   30 * time.Minute,
	CategoryOdds:         5 * time.Minute,
	CategorySeasonStats:  6 * time.Hour,
	CategoryRoster:       24 * time.Hour,
	CategoryTeamInfo:     7 * 24 * time.Hour,
}

// Policy maps data categories to TTLs. The zero value uses built-in defaults
// and the local timezone for the day boundary.
type Policy struct {
	// Location determines where "next day boundary" falls for the daily
	// schedule category. Defaults to time.Local.
	Location *time.Location

	// Overrides replaces the default TTL for a category. An override of
	// zero or less disables caching for that category.
	Overrides map[Category]time.Duration
}

// TTL returns how long a fresh entry of the given category should live,
// relative to now.
func (p Policy) TTL(c Category, now time.Time) time.Duration {
	if d, ok := p.Overrides[c]; ok {
		return d
	}
	if c == CategoryScheduleToday {
		return untilNextDay(now, p.location())
	}
	return defaultTTLs[c]
}

func (p Policy) location() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.Local
}

// untilNextDay returns the duration from now until local midnight.
func untilNextDay(now time.Time, loc *time.Location) time.Duration {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return next.Sub(local)
}
