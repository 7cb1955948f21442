package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/app"
	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
)

// newsTemplates feed the demo headline generator. %s is the symbol.
var newsTemplates = []string{
	"%s beats consensus on Q earnings",
	"Analysts raise %s target after guidance update",
	"%s announces share buyback program",
	"Foreign investors net buyers of %s this week",
	"%s board approves dividend schedule",
	"Sector rotation lifts %s peers",
	"%s supply chain update eases margin concerns",
	"Regulator clears %s capital raising plan",
}

// NewsFeed lists demo headlines for the followed symbol, newest first. It
// follows its symbol group like the chart widgets.
type NewsFeed struct {
	id     string
	deps   Deps
	link   group.Link
	symbol string
	offset int
}

// NewNewsFeed builds a news widget for a stored widget.
func NewNewsFeed(w deck.Widget, deps Deps) *NewsFeed {
	n := &NewsFeed{
		id:   w.ID,
		deps: deps,
		link: group.NewLink(deps.Bus, w.Group),
	}
	n.symbol = n.link.Current()
	if n.symbol == "" {
		n.symbol = configString(w.Config, "symbol", "")
	}
	return n
}

// ID returns the widget's unique identifier.
func (n *NewsFeed) ID() string { return n.id }

// Title returns the widget's display title.
func (n *NewsFeed) Title() string { return "News" }

// SetSymbol follows the widget's symbol group.
func (n *NewsFeed) SetSymbol(symbol string) {
	n.symbol = symbol
	n.offset = 0
}

// Update rotates the feed one headline per tick so the stream feels live.
func (n *NewsFeed) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(app.TickEvent); ok {
		n.offset++
	}
	return nil
}

// HandleKey scrolls with j/k.
func (n *NewsFeed) HandleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "j", "down":
		n.offset++
	case "k", "up":
		if n.offset > 0 {
			n.offset--
		}
	}
	return nil
}

// View renders the headline list.
func (n *NewsFeed) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if n.symbol == "" {
		return centerMessage("no symbol selected", width, height)
	}

	lines := make([]string, 0, height)
	for i := 0; len(lines) < height && i < height; i++ {
		idx := (n.offset + i) % len(newsTemplates)
		headline := fmt.Sprintf(newsTemplates[idx], n.symbol)
		age := components.Dim(fmt.Sprintf("%2dm ", (i+1)*7))
		lines = append(lines, components.Fit(age+headline, width))
	}
	return clipLines(lines, height)
}
