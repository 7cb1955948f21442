package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/app"
	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
)

// Watchlist lists the tracked universe with live prices. Moving the cursor
// and pressing enter publishes the selection to the widget's symbol group,
// driving every linked widget.
type Watchlist struct {
	id       string
	deps     Deps
	grp      group.ID
	selected int
}

// NewWatchlist builds a watchlist for a stored widget.
func NewWatchlist(w deck.Widget, deps Deps) *Watchlist {
	return &Watchlist{id: w.ID, deps: deps, grp: w.Group}
}

// ID returns the widget's unique identifier.
func (w *Watchlist) ID() string { return w.id }

// Title returns the widget's display title.
func (w *Watchlist) Title() string { return "Watchlist" }

// Update is a no-op; the list reads the feed at render time.
func (w *Watchlist) Update(_ tea.Msg) tea.Cmd { return nil }

// HandleKey moves the cursor and publishes selections.
func (w *Watchlist) HandleKey(key tea.KeyMsg) tea.Cmd {
	if w.deps.Feed == nil {
		return nil
	}
	n := len(w.deps.Feed.Symbols())
	if n == 0 {
		return nil
	}
	switch key.String() {
	case "j", "down":
		w.selected = (w.selected + 1) % n
	case "k", "up":
		w.selected = (w.selected - 1 + n) % n
	case "enter", " ":
		quotes := w.deps.Feed.Snapshot()
		if w.selected < len(quotes) {
			return app.SelectSymbolCmd(w.grp, quotes[w.selected].Symbol)
		}
	}
	return nil
}

// View renders the symbol table.
func (w *Watchlist) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.deps.Feed == nil {
		return centerMessage("feed offline", width, height)
	}
	quotes := w.deps.Feed.Snapshot()
	if len(quotes) == 0 {
		return centerMessage("watchlist empty", width, height)
	}
	if w.selected >= len(quotes) {
		w.selected = len(quotes) - 1
	}

	symW := 6
	numW := (width - symW - 4) / 2
	if numW < 6 {
		numW = 6
	}
	table := components.NewDataTable([]components.Column{
		{Title: "SYM", Width: symW},
		{Title: "LAST", Width: numW, Align: components.AlignRight},
		{Title: "CHG%", Width: numW, Align: components.AlignRight},
	}, components.TableStyle{
		HeaderColor:   theme.Current.Dim,
		SelectedColor: theme.Current.Accent,
	})
	table.Selected = w.selected

	rows := make([][]string, len(quotes))
	for i, q := range quotes {
		rows[i] = []string{
			q.Symbol,
			fmtPrice(q.Last),
			components.Colorize(fmtPct(q.ChangePct), changeColor(q.Change)),
		}
	}
	return table.Render(rows, height-1)
}
