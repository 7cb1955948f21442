package template

import "gitlab.com/tinyland/lab/marketdeck/pkg/registry"

// tplMarketOverview is the default starting point: a broad market view.
func tplMarketOverview() Template {
	return Template{
		Name:        "Market Overview",
		Description: "Quotes, movers and a sector heat map",
		Widgets: []Slot{
			{Type: string(registry.QuoteBoard)},
			{Type: string(registry.TopMovers)},
			{Type: string(registry.Watchlist)},
			{Type: string(registry.MarketHeatmap)},
		},
	}
}

// tplTechnicalAnalysis is the charting workspace.
func tplTechnicalAnalysis() Template {
	return Template{
		Name:        "Technical Analysis",
		Description: "Price action, indicators and volume for one symbol",
		Widgets: []Slot{
			{Type: string(registry.PriceChart)},
			{Type: string(registry.TechnicalIndicators)},
			{Type: string(registry.VolumeProfile)},
		},
	}
}

// tplFundamentals is the company-research workspace.
func tplFundamentals() Template {
	return Template{
		Name:        "Fundamentals",
		Description: "Financials, ratios and research sources",
		Widgets: []Slot{
			{Type: string(registry.IncomeStatement), Config: map[string]any{"period": "FY"}},
			{Type: string(registry.FinancialRatios), Config: map[string]any{"period": "FY"}},
			{Type: string(registry.NewsFeed)},
			{Type: string(registry.ResearchBrowser)},
		},
	}
}
