package template

import (
	"testing"

	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/grid"
	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
)

func newTestDeck(t *testing.T) *deck.Store {
	t.Helper()
	return deck.New(persist.New(t.TempDir(), nil), nil)
}

// --- Builtins ---

func TestGetKnownTemplate(t *testing.T) {
	tpl := Get("technical-analysis")
	if tpl.Name != "Technical Analysis" {
		t.Errorf("name: got %q", tpl.Name)
	}
	if len(tpl.Widgets) != 3 {
		t.Errorf("expected 3 widgets, got %d", len(tpl.Widgets))
	}
}

func TestGetUnknownFallsBackToMarketOverview(t *testing.T) {
	tpl := Get("does-not-exist")
	if tpl.Name != "Market Overview" {
		t.Errorf("expected market-overview fallback, got %q", tpl.Name)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 builtins, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
	for _, n := range names {
		if !Has(n) {
			t.Errorf("Has(%q)=false for listed name", n)
		}
	}
}

func TestBuiltinSlotsAllResolveInRegistry(t *testing.T) {
	for _, name := range Names() {
		for i, slot := range Get(name).Widgets {
			if !registry.Known(registry.Type(slot.Type)) {
				t.Errorf("builtin %q slot %d has unknown type %q", name, i, slot.Type)
			}
		}
	}
}

// --- Apply ---

func TestApplyTechnicalAnalysisScenario(t *testing.T) {
	s := newTestDeck(t)

	d := Apply(s, Get("technical-analysis"), nil)

	active, ok := s.ActiveDashboard()
	if !ok || active.ID != d.ID {
		t.Fatal("applied template dashboard should be active")
	}
	if len(active.Tabs) != 1 {
		t.Fatalf("expected 1 tab, got %d", len(active.Tabs))
	}
	widgets := active.Tabs[0].Widgets
	if len(widgets) != 3 {
		t.Fatalf("expected 3 widgets, got %d", len(widgets))
	}

	want := []grid.Layout{
		{X: 0, Y: 0, W: 6, H: 4},
		{X: 6, Y: 0, W: 6, H: 4},
		{X: 0, Y: 4, W: 6, H: 4},
	}
	for i, w := range widgets {
		if w.Layout != want[i] {
			t.Errorf("widget %d layout: got %+v, want %+v", i, w.Layout, want[i])
		}
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	s1 := newTestDeck(t)
	s2 := newTestDeck(t)

	a := Apply(s1, Get("fundamentals"), nil)
	b := Apply(s2, Get("fundamentals"), nil)

	if len(a.Tabs[0].Widgets) != len(b.Tabs[0].Widgets) {
		t.Fatal("applications differ in widget count")
	}
	for i := range a.Tabs[0].Widgets {
		wa, wb := a.Tabs[0].Widgets[i], b.Tabs[0].Widgets[i]
		if wa.Type != wb.Type || wa.Layout != wb.Layout {
			t.Errorf("slot %d differs: %+v vs %+v", i, wa, wb)
		}
	}
}

func TestApplySkipsUnknownTypes(t *testing.T) {
	s := newTestDeck(t)

	tpl := Template{
		Name: "Partial",
		Widgets: []Slot{
			{Type: string(registry.PriceChart)},
			{Type: "abandoned_widget"},
			{Type: string(registry.Watchlist)},
		},
	}
	d := Apply(s, tpl, nil)

	widgets := d.Tabs[0].Widgets
	if len(widgets) != 2 {
		t.Fatalf("expected 2 widgets after skip, got %d", len(widgets))
	}
	// The skipped slot must not leave a hole in the grid.
	if widgets[1].Layout != (grid.Layout{X: 6, Y: 0, W: 6, H: 4}) {
		t.Errorf("second placed widget layout: %+v", widgets[1].Layout)
	}
}

func TestApplyCarriesSlotConfig(t *testing.T) {
	s := newTestDeck(t)

	d := Apply(s, Get("fundamentals"), nil)

	var income deck.Widget
	for _, w := range d.Tabs[0].Widgets {
		if w.Type == registry.IncomeStatement {
			income = w
		}
	}
	if income.ID == "" {
		t.Fatal("income statement widget missing")
	}
	if income.Config["period"] != "FY" {
		t.Errorf("slot config not carried: %v", income.Config)
	}
}

// --- File loading ---

func TestLoadTOMLRoundTrip(t *testing.T) {
	tpl := Template{
		Name:        "Custom",
		Description: "From disk",
		Widgets: []Slot{
			{Type: string(registry.PriceChart), Config: map[string]any{"interval": "15m"}},
			{Type: string(registry.NewsFeed)},
		},
	}

	data, err := SaveTOML(tpl)
	if err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}
	got, err := LoadTOML(data)
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if got.Name != tpl.Name || len(got.Widgets) != 2 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.Widgets[0].Config["interval"] != "15m" {
		t.Errorf("config lost in round-trip: %v", got.Widgets[0].Config)
	}
}

func TestLoadYAML(t *testing.T) {
	data := []byte(`
name: Desk Setup
description: analyst desk
widgets:
  - type: quote_board
  - type: price_chart
    config:
      interval: 5m
`)
	got, err := LoadYAML(data)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if got.Name != "Desk Setup" || len(got.Widgets) != 2 {
		t.Errorf("unexpected template: %+v", got)
	}
	if got.Widgets[1].Config["interval"] != "5m" {
		t.Errorf("yaml config: %v", got.Widgets[1].Config)
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	if _, err := LoadTOML([]byte("[[widgets]]\ntype = \"price_chart\"\n")); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestLoadRejectsEmptyWidgetList(t *testing.T) {
	if _, err := LoadYAML([]byte("name: Empty\n")); err == nil {
		t.Error("expected error for empty widget list")
	}
}

func TestLoadTOMLMalformed(t *testing.T) {
	if _, err := LoadTOML([]byte("name = [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}
