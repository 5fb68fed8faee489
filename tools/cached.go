package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"courtside/cache"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// funcTool adapts a function to the Tool interface.
type funcTool struct {
	def mcptypes.Tool
	fn  func(ctx context.Context, args map[string]any) (string, error)
}

func (t *funcTool) Definition() mcptypes.Tool { return t.def }

func (t *funcTool) Call(ctx context.Context, args map[string]any) (string, error) {
	return t.fn(ctx, args)
}

// fetchFunc produces the raw value for one cacheable read.
type fetchFunc func(ctx context.Context) (any, error)

// cachedFetch routes a read through the result cache: hit returns the stored
// content, miss fetches, serializes, and stores under the category's TTL.
// Fetch errors are never persisted, so a transient provider failure does not
// pin a bad result for the TTL window. A nil store disables caching.
func cachedFetch(ctx context.Context, store *cache.Store, policy cache.Policy, category cache.Category, tool string, params map[string]any, fetch fetchFunc) (string, error) {
	if store == nil {
		data, err := fetch(ctx)
		if err != nil {
			return "", err
		}
		return toJSON(data), nil
	}

	key := cache.Key(tool, params)
	value, ok, err := store.Get(key)
	if err != nil {
		// A broken cache degrades to a refetch, but a persistently broken
		// one must show up somewhere.
		slog.Warn("agent.cache.read_failed", "tool", tool, "error", err.Error())
	} else if ok {
		return value, nil
	}

	data, err := fetch(ctx)
	if err != nil {
		return "", err
	}

	content := toJSON(data)
	if err := store.Set(key, content, policy.TTL(category, time.Now())); err != nil {
		// A cache write failure only costs a refetch later.
		return content, nil
	}
	return content, nil
}

// toJSON coerces a structured result to a string so it can re-enter the
// conversation as a tool message.
func toJSON(data any) string {
	if s, ok := data.(string); ok {
		return s
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(b)
}

// argString extracts a string argument, tolerating absent keys.
func argString(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
