package cache

import (
	"encoding/json"
	"fmt"
)

// Key derives a deterministic cache key from a tool name and its resolved
// parameters. encoding/json serializes map keys in sorted order, so two
// parameter maps that differ only in insertion order collide to the same key.
func Key(tool string, params map[string]any) string {
	if params == nil {
		params = map[string]any{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		// Unserializable parameter values are not cacheable; fall back to
		// a key that will never be shared.
		return fmt.Sprintf("%s:%p", tool, &params)
	}
	return tool + ":" + string(data)
}
