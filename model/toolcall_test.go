package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToolArguments(t *testing.T) {
	args := ParseToolArguments(`{"team_name": "Lakers", "year": "2025"}`)
	assert.Equal(t, map[string]any{"team_name": "Lakers", "year": "2025"}, args)
}

func TestParseToolArgumentsEmptyMeansNoArguments(t *testing.T) {
	assert.Equal(t, map[string]any{}, ParseToolArguments(""))
	assert.Equal(t, map[string]any{}, ParseToolArguments("null"))
	assert.Equal(t, map[string]any{}, ParseToolArguments("{}"))
}

func TestParseToolArgumentsMalformedIsNil(t *testing.T) {
	assert.Nil(t, ParseToolArguments(`{"team_name": `))
	assert.Nil(t, ParseToolArguments(`not json`))
}

func TestCloneHistoryIsIndependent(t *testing.T) {
	original := []Message{NewUserMessage("hello")}
	clone := CloneHistory(original)
	clone[0].Content = "mutated"
	assert.Equal(t, "hello", original[0].Content)
}

func TestCloneHistoryNil(t *testing.T) {
	assert.Nil(t, CloneHistory(nil))
}
