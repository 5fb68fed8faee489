package model

import "encoding/json"

// ToolCall is a provider-agnostic tool invocation requested by the model
// within one round. IDs are unique within that round.
type ToolCall struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Arguments holds the parsed argument payload. It is nil when
	// RawArguments could not be parsed; consumers decide how to surface
	// that as an argument error.
	Arguments map[string]any `json:"arguments,omitempty"`

	// RawArguments preserves the argument text exactly as the model
	// emitted it, so intent messages can be replayed verbatim.
	RawArguments string `json:"raw_arguments,omitempty"`
}

// ParseToolArguments parses a JSON arguments string into a map.
// Returns nil (not an empty map) on malformed input so callers can
// distinguish "no arguments" from "unparseable arguments".
func ParseToolArguments(argsJSON string) map[string]any {
	if argsJSON == "" {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}
	return args
}
