package widgets

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
)

// chartColumn maps a partial column height (1-8 eighths) to its glyph.
var chartColumn = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// PriceChart draws the followed symbol's price history as a multi-row bar
// chart with a min/max axis.
type PriceChart struct {
	id     string
	deps   Deps
	link   group.Link
	symbol string
}

// NewPriceChart builds a chart for a stored widget.
func NewPriceChart(w deck.Widget, deps Deps) *PriceChart {
	c := &PriceChart{
		id:   w.ID,
		deps: deps,
		link: group.NewLink(deps.Bus, w.Group),
	}
	c.symbol = c.link.Current()
	if c.symbol == "" {
		c.symbol = configString(w.Config, "symbol", "")
	}
	if c.symbol != "" && deps.Feed != nil {
		deps.Feed.Track(c.symbol)
	}
	return c
}

// ID returns the widget's unique identifier.
func (c *PriceChart) ID() string { return c.id }

// Title returns the widget's display title.
func (c *PriceChart) Title() string {
	if c.symbol == "" {
		return "Chart"
	}
	return "Chart " + c.symbol
}

// SetSymbol follows the widget's symbol group.
func (c *PriceChart) SetSymbol(symbol string) {
	c.symbol = symbol
	if c.deps.Feed != nil {
		c.deps.Feed.Track(symbol)
	}
}

// Update is a no-op; history is read from the feed at render time.
func (c *PriceChart) Update(_ tea.Msg) tea.Cmd { return nil }

// HandleKey is a no-op for the chart.
func (c *PriceChart) HandleKey(_ tea.KeyMsg) tea.Cmd { return nil }

// View renders the chart body.
func (c *PriceChart) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if c.symbol == "" {
		return centerMessage("no symbol selected", width, height)
	}
	if c.deps.Feed == nil {
		return centerMessage("feed offline", width, height)
	}
	quote, ok := c.deps.Feed.Quote(c.symbol)
	if !ok {
		return centerMessage(c.symbol+" not tracked", width, height)
	}
	if len(quote.History) < 2 || height < 3 {
		return centerMessage("collecting data", width, height)
	}

	axisW := 9
	plotW := width - axisW
	if plotW < 4 {
		return centerMessage("too narrow", width, height)
	}
	plotH := height - 1 // last row for the change summary

	lines := renderColumns(quote.History, plotW, plotH, changeColor(quote.Change))

	minY, maxY := quote.History[0], quote.History[0]
	for _, v := range quote.History {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	out := make([]string, 0, height)
	for i, row := range lines {
		label := strings.Repeat(" ", axisW)
		if i == 0 {
			label = components.PadLeft(fmtPrice(maxY), axisW-1) + " "
		} else if i == len(lines)-1 {
			label = components.PadLeft(fmtPrice(minY), axisW-1) + " "
		}
		out = append(out, components.Dim(label)+row)
	}
	out = append(out, components.Fit("  "+fmtChange(quote.Change, quote.ChangePct), width))
	return clipLines(out, height)
}

// renderColumns maps the series onto rows*8 vertical steps, one column per
// point, bottom-aligned like a bar chart.
func renderColumns(data []float64, width, rows int, hex string) []string {
	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}
	minY, maxY := points[0], points[0]
	for _, v := range points {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	span := maxY - minY

	steps := rows * 8
	heights := make([]int, len(points))
	for i, v := range points {
		h := steps / 2
		if span > 0 {
			h = int(math.Round((v - minY) / span * float64(steps-1)))
		}
		heights[i] = h + 1 // at least one step so the floor is visible
	}

	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		// Row 0 is the top of the plot.
		base := (rows - 1 - row) * 8
		var b strings.Builder
		for _, h := range heights {
			rem := h - base
			switch {
			case rem <= 0:
				b.WriteByte(' ')
			case rem >= 8:
				b.WriteRune(chartColumn[7])
			default:
				b.WriteRune(chartColumn[rem-1])
			}
		}
		line := b.String()
		if hex != "" {
			line = components.Colorize(line, hex)
		}
		lines[row] = line
	}
	return lines
}
