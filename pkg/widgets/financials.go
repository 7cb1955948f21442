package widgets

import (
	"fmt"
	"hash/fnv"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
	"gitlab.com/tinyland/lab/marketdeck/pkg/uistate"
)

// periodRing is the cycle order for the 'p' key.
var periodRing = []string{
	uistate.PeriodFY,
	uistate.PeriodQ1,
	uistate.PeriodQ2,
	uistate.PeriodQ3,
	uistate.PeriodQ4,
	uistate.PeriodTTM,
}

// IncomeStatement shows demo fundamentals for the followed symbol. Figures
// are derived deterministically from the symbol and period so the numbers
// are stable across renders and sessions. The selected period and collapse
// state persist per widget instance.
type IncomeStatement struct {
	id       string
	deps     Deps
	link     group.Link
	symbol   string
	period   uistate.Value[string]
	collapse uistate.Value[bool]
}

// NewIncomeStatement builds an income statement for a stored widget.
func NewIncomeStatement(w deck.Widget, deps Deps) *IncomeStatement {
	s := &IncomeStatement{
		id:       w.ID,
		deps:     deps,
		link:     group.NewLink(deps.Bus, w.Group),
		period:   uistate.NewValue(deps.UI, uistate.FeaturePeriod, w.ID, configString(w.Config, "period", uistate.PeriodFY)),
		collapse: uistate.NewValue(deps.UI, uistate.FeatureCollapse, w.ID, false),
	}
	s.symbol = s.link.Current()
	if s.symbol == "" {
		s.symbol = configString(w.Config, "symbol", "")
	}
	return s
}

// ID returns the widget's unique identifier.
func (s *IncomeStatement) ID() string { return s.id }

// Title returns the widget's display title.
func (s *IncomeStatement) Title() string {
	return "Income " + s.period.Get()
}

// SetSymbol follows the widget's symbol group.
func (s *IncomeStatement) SetSymbol(symbol string) {
	s.symbol = symbol
}

// Update is a no-op for the income statement.
func (s *IncomeStatement) Update(_ tea.Msg) tea.Cmd { return nil }

// HandleKey cycles periods with 'p' and toggles detail rows with 'c'.
func (s *IncomeStatement) HandleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "p":
		s.period.Set(nextPeriod(s.period.Get()))
	case "c":
		s.collapse.Set(!s.collapse.Get())
	}
	return nil
}

// View renders the statement rows.
func (s *IncomeStatement) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if s.symbol == "" {
		return centerMessage("no symbol selected", width, height)
	}

	f := demoFundamentals(s.symbol, s.period.Get())
	labelW := width - 12
	if labelW < 8 {
		labelW = 8
	}
	row := func(label string, v float64) string {
		return components.Fit(components.PadRight(label, labelW)+components.PadLeft(fmtMoney(v), 11), width)
	}

	lines := []string{
		components.Dim(s.symbol + "  " + s.period.Get()),
		row("Revenue", f.revenue),
	}
	if !s.collapse.Get() {
		lines = append(lines,
			row("  Cost of sales", -f.costOfSales),
			row("  Operating expense", -f.opex),
		)
	}
	marginLine := components.Fit(
		components.PadRight("Net margin", labelW)+components.PadLeft(fmt.Sprintf("%.1f%%", f.margin), 11), width)
	lines = append(lines,
		row("Operating income", f.operating),
		row("Net income", f.net),
		components.Colorize(marginLine, marginColor(f.margin)),
	)
	return clipLines(lines, height)
}

// FinancialRatios shows valuation and profitability ratios for the followed
// symbol, sharing the demo fundamentals model and the persisted period.
type FinancialRatios struct {
	id     string
	deps   Deps
	link   group.Link
	symbol string
	period uistate.Value[string]
}

// NewFinancialRatios builds a ratios widget for a stored widget.
func NewFinancialRatios(w deck.Widget, deps Deps) *FinancialRatios {
	r := &FinancialRatios{
		id:     w.ID,
		deps:   deps,
		link:   group.NewLink(deps.Bus, w.Group),
		period: uistate.NewValue(deps.UI, uistate.FeaturePeriod, w.ID, configString(w.Config, "period", uistate.PeriodFY)),
	}
	r.symbol = r.link.Current()
	if r.symbol == "" {
		r.symbol = configString(w.Config, "symbol", "")
	}
	return r
}

// ID returns the widget's unique identifier.
func (r *FinancialRatios) ID() string { return r.id }

// Title returns the widget's display title.
func (r *FinancialRatios) Title() string {
	return "Ratios " + r.period.Get()
}

// SetSymbol follows the widget's symbol group.
func (r *FinancialRatios) SetSymbol(symbol string) {
	r.symbol = symbol
}

// Update is a no-op for the ratios widget.
func (r *FinancialRatios) Update(_ tea.Msg) tea.Cmd { return nil }

// HandleKey cycles periods with 'p'.
func (r *FinancialRatios) HandleKey(key tea.KeyMsg) tea.Cmd {
	if key.String() == "p" {
		r.period.Set(nextPeriod(r.period.Get()))
	}
	return nil
}

// View renders the ratio rows.
func (r *FinancialRatios) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if r.symbol == "" {
		return centerMessage("no symbol selected", width, height)
	}

	f := demoFundamentals(r.symbol, r.period.Get())
	labelW := width - 10
	if labelW < 8 {
		labelW = 8
	}
	row := func(label string, v string) string {
		return components.Fit(components.PadRight(label, labelW)+components.PadLeft(v, 9), width)
	}

	lines := []string{
		components.Dim(r.symbol + "  " + r.period.Get()),
		row("P/E", fmt.Sprintf("%.1f", f.pe)),
		row("P/B", fmt.Sprintf("%.2f", f.pb)),
		row("ROE", fmt.Sprintf("%.1f%%", f.roe)),
		row("Debt/Equity", fmt.Sprintf("%.2f", f.debtEquity)),
		components.Colorize(row("Net margin", fmt.Sprintf("%.1f%%", f.margin)), marginColor(f.margin)),
	}
	return clipLines(lines, height)
}

// fundamentals is one synthetic reporting-period snapshot.
type fundamentals struct {
	revenue     float64
	costOfSales float64
	opex        float64
	operating   float64
	net         float64
	margin      float64
	pe          float64
	pb          float64
	roe         float64
	debtEquity  float64
}

// demoFundamentals derives stable pseudo-figures from the symbol and
// period. Different periods of the same symbol stay in a plausible band of
// each other.
func demoFundamentals(symbol, period string) fundamentals {
	base := float64(hashOf(symbol)%9000+1000) / 10 // 100.0 .. 999.9
	wob := 1 + float64(hashOf(symbol+period)%200-100)/1000

	var f fundamentals
	f.revenue = base * wob
	f.costOfSales = f.revenue * (0.45 + float64(hashOf(symbol+"c")%20)/100)
	f.opex = f.revenue * (0.12 + float64(hashOf(symbol+"o")%10)/100)
	f.operating = f.revenue - f.costOfSales - f.opex
	f.net = f.operating * 0.8
	f.margin = f.net / f.revenue * 100
	f.pe = 8 + float64(hashOf(symbol+"pe")%220)/10
	f.pb = 0.8 + float64(hashOf(symbol+"pb")%42)/10
	f.roe = 5 + float64(hashOf(symbol+"roe")%250)/10
	f.debtEquity = float64(hashOf(symbol+"de")%180) / 100
	return f
}

func hashOf(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// fmtMoney renders a billions-denominated figure with sign.
func fmtMoney(v float64) string {
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%+.2fB", v/1000)
	}
	return fmt.Sprintf("%+.1fM", v)
}

// marginColor maps a net margin to a status color.
func marginColor(margin float64) string {
	switch {
	case margin >= 15:
		return theme.Current.StatusOK
	case margin >= 5:
		return theme.Current.StatusWarn
	default:
		return theme.Current.StatusError
	}
}

// nextPeriod advances through the period ring.
func nextPeriod(cur string) string {
	for i, p := range periodRing {
		if p == cur {
			return periodRing[(i+1)%len(periodRing)]
		}
	}
	return periodRing[0]
}
