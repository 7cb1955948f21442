package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
)

// QuoteBoard shows one symbol's live quote: last price, session change,
// volume, and a short price history sparkline. It follows its symbol group.
type QuoteBoard struct {
	id     string
	deps   Deps
	link   group.Link
	symbol string
}

// NewQuoteBoard builds a quote board for a stored widget. The initial
// symbol comes from the group bus when linked, falling back to the widget
// config.
func NewQuoteBoard(w deck.Widget, deps Deps) *QuoteBoard {
	q := &QuoteBoard{
		id:   w.ID,
		deps: deps,
		link: group.NewLink(deps.Bus, w.Group),
	}
	q.symbol = q.link.Current()
	if q.symbol == "" {
		q.symbol = configString(w.Config, "symbol", "")
	}
	if q.symbol != "" && deps.Feed != nil {
		deps.Feed.Track(q.symbol)
	}
	return q
}

// ID returns the widget's unique identifier.
func (q *QuoteBoard) ID() string { return q.id }

// Title returns the widget's display title.
func (q *QuoteBoard) Title() string {
	if q.symbol == "" {
		return "Quote"
	}
	return "Quote " + q.symbol
}

// SetSymbol follows the widget's symbol group.
func (q *QuoteBoard) SetSymbol(symbol string) {
	q.symbol = symbol
	if q.deps.Feed != nil {
		q.deps.Feed.Track(symbol)
	}
}

// Update is a no-op; the board reads the feed at render time.
func (q *QuoteBoard) Update(_ tea.Msg) tea.Cmd { return nil }

// HandleKey is a no-op for the quote board.
func (q *QuoteBoard) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

// View renders the quote.
func (q *QuoteBoard) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if q.symbol == "" {
		return centerMessage("no symbol selected", width, height)
	}
	if q.deps.Feed == nil {
		return centerMessage("feed offline", width, height)
	}
	quote, ok := q.deps.Feed.Quote(q.symbol)
	if !ok {
		return centerMessage(q.symbol+" not tracked", width, height)
	}

	name := quote.Name
	if name == "" {
		name = quote.Symbol
	}

	lines := []string{
		components.Bold(quote.Symbol) + "  " + components.Dim(components.Truncate(name, width-len(quote.Symbol)-2)),
		components.Bold(components.Colorize(fmtPrice(quote.Last), changeColor(quote.Change))),
		fmtChange(quote.Change, quote.ChangePct),
		fmt.Sprintf("vol %s  open %s", fmtVolume(quote.Volume), fmtPrice(quote.Open)),
	}
	if height > len(lines) {
		lines = append(lines, "", components.Sparkline(quote.History, width, components.SparklineStyle{
			UpColor:   theme.Current.PriceUp,
			DownColor: theme.Current.PriceDown,
			FlatColor: theme.Current.PriceFlat,
		}))
	}
	return clipLines(lines, height)
}
