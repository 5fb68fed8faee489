package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyInsertionOrderIndependent(t *testing.T) {
	a := map[string]any{}
	a["date"] = "2026-01-15"
	a["team_id"] = 12
	a["game_id"] = ""

	b := map[string]any{}
	b["game_id"] = ""
	b["team_id"] = 12
	b["date"] = "2026-01-15"

	assert.Equal(t, Key("get_daily_schedule", a), Key("get_daily_schedule", b))
}

func TestKeyDistinguishesTools(t *testing.T) {
	params := map[string]any{"team_id": 12}
	assert.NotEqual(t, Key("get_injuries", params), Key("get_depth_chart", params))
}

func TestKeyDistinguishesParams(t *testing.T) {
	assert.NotEqual(t,
		Key("get_team_stats", map[string]any{"team_id": 12}),
		Key("get_team_stats", map[string]any{"team_id": 21}),
	)
}

func TestKeyNilParams(t *testing.T) {
	assert.Equal(t, Key("get_team_details", nil), Key("get_team_details", map[string]any{}))
}
