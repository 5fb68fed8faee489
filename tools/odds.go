package tools

import (
	"context"

	"courtside/cache"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// NewOddsTool builds the betting-odds tool over an OddsAPI, cached under the
// odds category.
func NewOddsTool(odds OddsAPI, store *cache.Store, policy cache.Policy) Tool {
	return &funcTool{
		def: mcptypes.Tool{
			Name:        "get_betting_odds",
			Description: "Get current betting odds for NBA games (moneyline, spreads, totals).",
			InputSchema: objectSchema(map[string]any{
				"markets": stringProp("Comma-separated markets: h2h (moneyline), spreads, totals. Default: h2h."),
				"regions": stringProp("Bookmaker regions, e.g. 'us'. Default: us."),
			}),
		},
		fn: func(ctx context.Context, args map[string]any) (string, error) {
			q := OddsQuery{
				Sport:      "basketball_nba",
				Regions:    argString(args, "regions"),
				Markets:    argString(args, "markets"),
				OddsFormat: "american",
			}
			if q.Regions == "" {
				q.Regions = "us"
			}
			if q.Markets == "" {
				q.Markets = "h2h"
			}

			params := map[string]any{"sport": q.Sport, "regions": q.Regions, "markets": q.Markets}
			return cachedFetch(ctx, store, policy, cache.CategoryOdds, "get_betting_odds", params, func(ctx context.Context) (any, error) {
				return odds.Odds(ctx, q)
			})
		},
	}
}
