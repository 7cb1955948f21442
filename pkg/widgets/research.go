package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
	"gitlab.com/tinyland/lab/marketdeck/pkg/uistate"
)

// defaultResearchSites seed a fresh research browser instance.
var defaultResearchSites = []string{
	"vietstock.vn",
	"cafef.vn",
	"simplywall.st",
}

// ResearchBrowser keeps a per-instance list of research site bookmarks.
// The list persists across sessions; two browser widgets on different tabs
// keep independent lists.
type ResearchBrowser struct {
	id       string
	sites    uistate.Value[[]string]
	selected int
}

// NewResearchBrowser builds a research browser for a stored widget.
func NewResearchBrowser(w deck.Widget, deps Deps) *ResearchBrowser {
	seed := defaultResearchSites
	if raw, ok := w.Config["sites"].([]any); ok && len(raw) > 0 {
		seed = nil
		for _, v := range raw {
			if s, ok := v.(string); ok {
				seed = append(seed, s)
			}
		}
	}
	return &ResearchBrowser{
		id:    w.ID,
		sites: uistate.NewValue(deps.UI, uistate.FeatureResearchSites, w.ID, seed),
	}
}

// ID returns the widget's unique identifier.
func (r *ResearchBrowser) ID() string { return r.id }

// Title returns the widget's display title.
func (r *ResearchBrowser) Title() string { return "Research" }

// Update is a no-op for the research browser.
func (r *ResearchBrowser) Update(_ tea.Msg) tea.Cmd { return nil }

// HandleKey moves the cursor and edits the bookmark list.
func (r *ResearchBrowser) HandleKey(key tea.KeyMsg) tea.Cmd {
	sites := r.sites.Get()
	switch key.String() {
	case "j", "down":
		if len(sites) > 0 {
			r.selected = (r.selected + 1) % len(sites)
		}
	case "k", "up":
		if len(sites) > 0 {
			r.selected = (r.selected - 1 + len(sites)) % len(sites)
		}
	case "d":
		if r.selected < len(sites) {
			next := make([]string, 0, len(sites)-1)
			next = append(next, sites[:r.selected]...)
			next = append(next, sites[r.selected+1:]...)
			r.sites.Set(next)
			if r.selected >= len(next) && r.selected > 0 {
				r.selected--
			}
		}
	case "r":
		r.sites.Clear()
		r.selected = 0
	}
	return nil
}

// View renders the bookmark list.
func (r *ResearchBrowser) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	sites := r.sites.Get()
	if len(sites) == 0 {
		return centerMessage("no sites saved (r resets)", width, height)
	}
	if r.selected >= len(sites) {
		r.selected = len(sites) - 1
	}

	lines := make([]string, 0, len(sites))
	for i, site := range sites {
		prefix := "  "
		line := site
		if i == r.selected {
			prefix = components.Colorize("▸ ", theme.Current.Accent)
			line = components.Bold(site)
		}
		lines = append(lines, components.Fit(prefix+line, width))
	}
	return clipLines(lines, height)
}
