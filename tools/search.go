package tools

import (
	"context"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// NewNewsTool builds the breaking-news search tool over a SearchAPI.
// News is intentionally uncached: the point of the tool is recency.
func NewNewsTool(search SearchAPI) Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_nba_news",
			Description: "Search for real-time NBA news, injury reports, trade rumors, and team chemistry. Do NOT use for box scores or stats - use the data tools for that.",
			InputSchema: objectSchema(map[string]any{
				"query": stringProp("What to search for, e.g. 'is Luka playing tonight?'."),
			}, "query"),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			query := argString(args, "query")
			if !strings.Contains(strings.ToLower(query), "nba") {
				query = "NBA news: " + query
			}
			return search.Search(ctx, query)
		},
	}
}
