// Package widgets provides the concrete widget implementations for the
// marketdeck terminal. Each widget implements the app.Widget interface and
// receives feed data and group symbol changes via the Elm-architecture
// update loop.
package widgets

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/marketdeck/pkg/app"
	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/feed"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
)

// Deps carries the shared services every widget may need.
type Deps struct {
	Feed *feed.Feed
	Bus  *group.Bus

	// UI persists per-widget view state (periods, collapse flags, site
	// lists) across sessions.
	UI *persist.Store
}

// NewFactory returns an app.Factory that builds renderers for the widget
// types this package implements. Unhandled types return nil so the shell
// falls back to its placeholder.
func NewFactory(deps Deps) app.Factory {
	return func(w deck.Widget) app.Widget {
		switch w.Type {
		case registry.QuoteBoard:
			return NewQuoteBoard(w, deps)
		case registry.PriceChart:
			return NewPriceChart(w, deps)
		case registry.Watchlist:
			return NewWatchlist(w, deps)
		case registry.TopMovers:
			return NewTopMovers(w, deps)
		case registry.IncomeStatement:
			return NewIncomeStatement(w, deps)
		case registry.FinancialRatios:
			return NewFinancialRatios(w, deps)
		case registry.NewsFeed:
			return NewNewsFeed(w, deps)
		case registry.ResearchBrowser:
			return NewResearchBrowser(w, deps)
		default:
			return nil
		}
	}
}

// configString reads a string value from a widget config map.
func configString(cfg map[string]any, key, fallback string) string {
	if v, ok := cfg[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// fmtPrice formats a price with two decimals.
func fmtPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// fmtChange formats a signed change and colors it by direction.
func fmtChange(change, pct float64) string {
	s := fmt.Sprintf("%+.2f (%+.2f%%)", change, pct)
	return components.Colorize(s, changeColor(change))
}

// fmtPct formats a signed percent change.
func fmtPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// changeColor picks the theme price color for a move.
func changeColor(change float64) string {
	switch {
	case change > 0:
		return theme.Current.PriceUp
	case change < 0:
		return theme.Current.PriceDown
	default:
		return theme.Current.PriceFlat
	}
}

// fmtVolume renders share volume with k/M suffixes.
func fmtVolume(v int64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// centerMessage renders a dim message centered in the given area.
func centerMessage(msg string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	var lines []string
	for i := 0; i < (height-1)/2; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, components.PadCenter(components.Dim(msg), width))
	return strings.Join(lines, "\n")
}

// clipLines joins at most height lines.
func clipLines(lines []string, height int) string {
	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
