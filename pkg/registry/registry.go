// Package registry is the static catalog of widget types: the closed set of
// type tags plus each type's display metadata, default grid footprint, and
// default configuration. The catalog is consulted when inserting widgets
// and never mutated at runtime.
//
// Lookups for unknown tags return false; callers render a placeholder or
// skip the insert rather than failing the dashboard.
package registry

import (
	"sort"

	"gitlab.com/tinyland/lab/marketdeck/pkg/grid"
)

// Type tags a widget kind. The set below is closed; persisted state
// containing any other tag is treated as unknown.
type Type string

const (
	QuoteBoard          Type = "quote_board"
	PriceChart          Type = "price_chart"
	TechnicalIndicators Type = "technical_indicators"
	VolumeProfile       Type = "volume_profile"
	TopMovers           Type = "top_movers"
	Watchlist           Type = "watchlist"
	FinancialRatios     Type = "financial_ratios"
	IncomeStatement     Type = "income_statement"
	NewsFeed            Type = "news_feed"
	ResearchBrowser     Type = "research_browser"
	MarketHeatmap       Type = "market_heatmap"
)

// Widget categories for the add-widget picker.
const (
	CategoryCharts       = "Charts"
	CategoryMarket       = "Market"
	CategoryFundamentals = "Fundamentals"
	CategoryResearch     = "Research"
)

// Definition describes one widget type. DefaultConfig is opaque to the
// registry; it is copied verbatim into new widget instances.
type Definition struct {
	Name        string
	Description string
	Category    string
	DefaultSize grid.Size
	DefaultConfig map[string]any
}

// catalog maps type tags to their definitions.
var catalog = map[Type]Definition{
	QuoteBoard: {
		Name:        "Quote Board",
		Description: "Live quote for the linked symbol",
		Category:    CategoryMarket,
		DefaultSize: grid.Size{W: 6, H: 4},
	},
	PriceChart: {
		Name:        "Price Chart",
		Description: "Intraday price sparkline for the linked symbol",
		Category:    CategoryCharts,
		DefaultSize: grid.Size{W: 6, H: 4},
		DefaultConfig: map[string]any{
			"interval": "1m",
		},
	},
	TechnicalIndicators: {
		Name:        "Technical Indicators",
		Description: "Moving averages, RSI and MACD readings",
		Category:    CategoryCharts,
		DefaultSize: grid.Size{W: 6, H: 4},
		DefaultConfig: map[string]any{
			"indicators": []string{"SMA20", "RSI14"},
		},
	},
	VolumeProfile: {
		Name:        "Volume Profile",
		Description: "Traded volume distribution by price level",
		Category:    CategoryCharts,
		DefaultSize: grid.Size{W: 6, H: 4},
	},
	TopMovers: {
		Name:        "Top Movers",
		Description: "Largest gainers and losers in the session",
		Category:    CategoryMarket,
		DefaultSize: grid.Size{W: 6, H: 4},
		DefaultConfig: map[string]any{
			"limit": 10,
		},
	},
	Watchlist: {
		Name:        "Watchlist",
		Description: "User-curated symbol list with last prices",
		Category:    CategoryMarket,
		DefaultSize: grid.Size{W: 4, H: 6},
	},
	FinancialRatios: {
		Name:        "Financial Ratios",
		Description: "Valuation and profitability ratios by period",
		Category:    CategoryFundamentals,
		DefaultSize: grid.Size{W: 6, H: 4},
		DefaultConfig: map[string]any{
			"period": "FY",
		},
	},
	IncomeStatement: {
		Name:        "Income Statement",
		Description: "Condensed income statement by period",
		Category:    CategoryFundamentals,
		DefaultSize: grid.Size{W: 6, H: 5},
		DefaultConfig: map[string]any{
			"period": "FY",
		},
	},
	NewsFeed: {
		Name:        "News Feed",
		Description: "Headlines for the linked symbol",
		Category:    CategoryResearch,
		DefaultSize: grid.Size{W: 6, H: 6},
	},
	ResearchBrowser: {
		Name:        "Research Browser",
		Description: "Saved research sources for quick access",
		Category:    CategoryResearch,
		DefaultSize: grid.Size{W: 6, H: 6},
	},
	MarketHeatmap: {
		Name:        "Market Heatmap",
		Description: "Sector performance heat map",
		Category:    CategoryMarket,
		DefaultSize: grid.Size{W: 12, H: 6},
	},
}

// Lookup returns the definition for a type tag. The second return value is
// false for unknown tags.
func Lookup(t Type) (Definition, bool) {
	def, ok := catalog[t]
	return def, ok
}

// Known reports whether t is part of the closed type set.
func Known(t Type) bool {
	_, ok := catalog[t]
	return ok
}

// Types returns all type tags in sorted order.
func Types() []Type {
	types := make([]Type, 0, len(catalog))
	for t := range catalog {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// ByCategory returns the type tags belonging to a category, sorted.
func ByCategory(category string) []Type {
	var types []Type
	for t, def := range catalog {
		if def.Category == category {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Categories returns all category names in sorted order.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, def := range catalog {
		if !seen[def.Category] {
			seen[def.Category] = true
			out = append(out, def.Category)
		}
	}
	sort.Strings(out)
	return out
}

// CloneConfig returns a shallow copy of a definition's default config so
// widget instances never alias the catalog's maps.
func CloneConfig(def Definition) map[string]any {
	if def.DefaultConfig == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(def.DefaultConfig))
	for k, v := range def.DefaultConfig {
		out[k] = v
	}
	return out
}
