package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
	"gitlab.com/tinyland/lab/marketdeck/pkg/uistate"
)

// TopMovers ranks the universe by session percent change. The gainers and
// losers views are sub-tabs; the choice persists per widget instance.
type TopMovers struct {
	id   string
	deps Deps
	view uistate.Value[string]
}

// NewTopMovers builds a movers widget for a stored widget.
func NewTopMovers(w deck.Widget, deps Deps) *TopMovers {
	return &TopMovers{
		id:   w.ID,
		deps: deps,
		view: uistate.NewValue(deps.UI, uistate.FeatureSubTab, w.ID, "gainers"),
	}
}

// ID returns the widget's unique identifier.
func (m *TopMovers) ID() string { return m.id }

// Title returns the widget's display title.
func (m *TopMovers) Title() string {
	if m.view.Get() == "losers" {
		return "Top Losers"
	}
	return "Top Gainers"
}

// Update is a no-op; the ranking reads the feed at render time.
func (m *TopMovers) Update(_ tea.Msg) tea.Cmd { return nil }

// HandleKey toggles between the gainers and losers views.
func (m *TopMovers) HandleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "v", "h", "l", "left", "right":
		if m.view.Get() == "losers" {
			m.view.Set("gainers")
		} else {
			m.view.Set("losers")
		}
	}
	return nil
}

// View renders the ranked table.
func (m *TopMovers) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if m.deps.Feed == nil {
		return centerMessage("feed offline", width, height)
	}
	movers := m.deps.Feed.Movers()
	if len(movers) == 0 {
		return centerMessage("no quotes", width, height)
	}
	if m.view.Get() == "losers" {
		for i, j := 0, len(movers)-1; i < j; i, j = i+1, j-1 {
			movers[i], movers[j] = movers[j], movers[i]
		}
	}

	numW := (width - 10) / 2
	if numW < 6 {
		numW = 6
	}
	table := components.NewDataTable([]components.Column{
		{Title: "SYM", Width: 6},
		{Title: "CHG%", Width: numW, Align: components.AlignRight},
		{Title: "LAST", Width: numW, Align: components.AlignRight},
	}, components.TableStyle{HeaderColor: theme.Current.Dim})

	rows := make([][]string, len(movers))
	for i, q := range movers {
		rows[i] = []string{
			q.Symbol,
			components.Colorize(fmtPct(q.ChangePct), changeColor(q.Change)),
			fmtPrice(q.Last),
		}
	}
	return table.Render(rows, height-1)
}
