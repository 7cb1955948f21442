package deck

import (
	"testing"
	"time"

	"gitlab.com/tinyland/lab/marketdeck/pkg/grid"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(persist.New(t.TempDir(), nil), nil)
}

// firstTab returns the seeded tab of a freshly created dashboard.
func firstTab(t *testing.T, d Dashboard) Tab {
	t.Helper()
	if len(d.Tabs) == 0 {
		t.Fatal("dashboard has no tabs")
	}
	return d.Tabs[0]
}

// --- Creation ---

func TestNewStoreSeedsDefaultDashboard(t *testing.T) {
	s := newTestStore(t)

	dashboards := s.Dashboards()
	if len(dashboards) != 1 {
		t.Fatalf("expected 1 default dashboard, got %d", len(dashboards))
	}
	d, ok := s.ActiveDashboard()
	if !ok {
		t.Fatal("expected an active dashboard")
	}
	if len(d.Tabs) != 1 || len(d.Tabs[0].Widgets) != 0 {
		t.Errorf("default dashboard shape wrong: %+v", d)
	}
	tab, ok := s.ActiveTab()
	if !ok || tab.ID != d.Tabs[0].ID {
		t.Errorf("active tab should be the seeded tab, got %+v ok=%v", tab, ok)
	}
}

func TestCreateDashboardSeedsOneEmptyTab(t *testing.T) {
	s := newTestStore(t)

	d := s.CreateDashboard("Research")
	if d.Name != "Research" {
		t.Errorf("name: got %q", d.Name)
	}
	if len(d.Tabs) != 1 {
		t.Fatalf("expected exactly 1 tab, got %d", len(d.Tabs))
	}
	if len(d.Tabs[0].Widgets) != 0 {
		t.Errorf("seeded tab should be empty, has %d widgets", len(d.Tabs[0].Widgets))
	}

	// The returned copy is immediately usable for inserts.
	if _, ok := s.AddWidget(d.ID, d.Tabs[0].ID, WidgetSpec{Type: registry.PriceChart}); !ok {
		t.Error("AddWidget to the returned dashboard's first tab failed")
	}
}

// --- Widget id uniqueness ---

func TestWidgetIDsDistinctAcrossWholeStore(t *testing.T) {
	s := newTestStore(t)

	d1 := s.CreateDashboard("One")
	d2 := s.CreateDashboard("Two")
	extraTab, _ := s.AddTab(d1.ID, "Second")

	targets := []struct{ dash, tab string }{
		{d1.ID, firstTab(t, d1).ID},
		{d1.ID, extraTab.ID},
		{d2.ID, firstTab(t, d2).ID},
	}

	seen := make(map[string]bool)
	for i := 0; i < 30; i++ {
		tgt := targets[i%len(targets)]
		w, ok := s.AddWidget(tgt.dash, tgt.tab, WidgetSpec{Type: registry.Watchlist})
		if !ok {
			t.Fatalf("AddWidget %d failed", i)
		}
		if seen[w.ID] {
			t.Fatalf("duplicate widget id %q", w.ID)
		}
		seen[w.ID] = true
	}
}

// --- Placement on insert ---

func TestAddWidgetDefaultPlacementStacks(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("Stack")
	tabID := firstTab(t, d).ID

	w1, _ := s.AddWidget(d.ID, tabID, WidgetSpec{Type: registry.PriceChart})
	w2, _ := s.AddWidget(d.ID, tabID, WidgetSpec{Type: registry.PriceChart})

	if w1.Layout != (grid.Layout{X: 0, Y: 0, W: 6, H: 4}) {
		t.Errorf("first widget layout: %+v", w1.Layout)
	}
	if w2.Layout != (grid.Layout{X: 0, Y: 4, W: 6, H: 4}) {
		t.Errorf("second widget layout: %+v", w2.Layout)
	}
	if grid.Overlaps(w1.Layout, w2.Layout) {
		t.Error("stacked widgets overlap")
	}
}

func TestAddWidgetUnknownTypeRejected(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("X")

	if _, ok := s.AddWidget(d.ID, firstTab(t, d).ID, WidgetSpec{Type: "not_a_widget"}); ok {
		t.Error("unknown widget type must not insert")
	}
}

func TestAddWidgetUnknownTargetIsNoOp(t *testing.T) {
	s := newTestStore(t)

	if _, ok := s.AddWidget("ghost-dash", "ghost-tab", WidgetSpec{Type: registry.NewsFeed}); ok {
		t.Error("insert into unknown target must fail silently")
	}
	// Store unchanged: still only the default dashboard with no widgets.
	d, _ := s.ActiveDashboard()
	if len(d.Tabs[0].Widgets) != 0 {
		t.Error("no-op insert mutated state")
	}
}

func TestAddWidgetNormalizesUnknownGroup(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("G")

	w, _ := s.AddWidget(d.ID, firstTab(t, d).ID, WidgetSpec{
		Type:  registry.QuoteBoard,
		Group: group.ID("Z9"),
	})
	if w.Group != group.Global {
		t.Errorf("expected group fallback to global, got %q", w.Group)
	}
}

// --- Update semantics ---

func TestUpdateWidgetShallowMergesConfig(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("U")
	tabID := firstTab(t, d).ID

	w, _ := s.AddWidget(d.ID, tabID, WidgetSpec{
		Type:   registry.FinancialRatios,
		Config: map[string]any{"period": "FY", "columns": 3},
	})

	s.UpdateWidget(d.ID, tabID, w.ID, WidgetPatch{
		Config: map[string]any{"period": "TTM"},
	})

	got, _ := s.FindWidget(w.ID)
	if got.Config["period"] != "TTM" {
		t.Errorf("patched key: got %v", got.Config["period"])
	}
	if got.Config["columns"] != 3 {
		t.Errorf("unpatched key should survive shallow merge, got %v", got.Config["columns"])
	}
}

func TestUpdateWidgetReplaceConfigSwapsWholeMap(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("U2")
	tabID := firstTab(t, d).ID

	w, _ := s.AddWidget(d.ID, tabID, WidgetSpec{
		Type:   registry.FinancialRatios,
		Config: map[string]any{"period": "FY", "columns": 3},
	})

	s.UpdateWidget(d.ID, tabID, w.ID, WidgetPatch{
		Config:        map[string]any{"period": "Q1"},
		ReplaceConfig: true,
	})

	got, _ := s.FindWidget(w.ID)
	if got.Config["period"] != "Q1" {
		t.Errorf("replaced config: got %v", got.Config["period"])
	}
	if _, stale := got.Config["columns"]; stale {
		t.Error("ReplaceConfig must drop keys absent from the patch")
	}
}

func TestUpdateWidgetLayoutAndGroup(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("U3")
	tabID := firstTab(t, d).ID

	w, _ := s.AddWidget(d.ID, tabID, WidgetSpec{Type: registry.PriceChart})

	layout := grid.Layout{X: 6, Y: 0, W: 6, H: 4}
	g := group.A
	s.UpdateWidget(d.ID, tabID, w.ID, WidgetPatch{Layout: &layout, Group: &g})

	got, _ := s.FindWidget(w.ID)
	if got.Layout != layout {
		t.Errorf("layout: got %+v", got.Layout)
	}
	if got.Group != group.A {
		t.Errorf("group: got %q", got.Group)
	}
}

func TestUpdateWidgetMissingIsNoOp(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("U4")
	s.UpdateWidget(d.ID, firstTab(t, d).ID, "nope", WidgetPatch{
		Config: map[string]any{"k": "v"},
	})
}

// --- Removal and cascade ---

func TestRemoveWidget(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("R")
	tabID := firstTab(t, d).ID

	w, _ := s.AddWidget(d.ID, tabID, WidgetSpec{Type: registry.TopMovers})
	s.RemoveWidget(d.ID, tabID, w.ID)

	if _, found := s.FindWidget(w.ID); found {
		t.Error("widget still present after removal")
	}
	// Removing again is a no-op.
	s.RemoveWidget(d.ID, tabID, w.ID)
}

func TestRemoveTabCascadesToItsWidgetsOnly(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("C")
	keepTab := firstTab(t, d)
	dropTab, _ := s.AddTab(d.ID, "Doomed")

	kept, _ := s.AddWidget(d.ID, keepTab.ID, WidgetSpec{Type: registry.Watchlist})
	doomed1, _ := s.AddWidget(d.ID, dropTab.ID, WidgetSpec{Type: registry.NewsFeed})
	doomed2, _ := s.AddWidget(d.ID, dropTab.ID, WidgetSpec{Type: registry.PriceChart})

	s.RemoveTab(d.ID, dropTab.ID)

	if _, found := s.FindWidget(doomed1.ID); found {
		t.Error("cascade missed a widget on the removed tab")
	}
	if _, found := s.FindWidget(doomed2.ID); found {
		t.Error("cascade missed a widget on the removed tab")
	}
	if _, found := s.FindWidget(kept.ID); !found {
		t.Error("cascade removed a widget on a surviving tab")
	}
}

func TestRemoveDashboardCascades(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("Gone")
	w, _ := s.AddWidget(d.ID, firstTab(t, d).ID, WidgetSpec{Type: registry.MarketHeatmap})

	s.RemoveDashboard(d.ID)

	if _, found := s.FindWidget(w.ID); found {
		t.Error("widget survived dashboard removal")
	}
}

// --- Active pointers ---

func TestActiveViewsDerivedFromCanonicalState(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("Derived")
	s.SetActiveDashboard(d.ID)

	s.RenameDashboard(d.ID, "Renamed")

	got, ok := s.ActiveDashboard()
	if !ok || got.Name != "Renamed" {
		t.Errorf("active view stale: %+v ok=%v", got, ok)
	}
}

func TestSetActiveDashboardSelectsFirstTab(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("Tabs")
	second, _ := s.AddTab(d.ID, "More")

	s.SetActiveDashboard(d.ID)
	s.SetActiveTab(second.ID)
	tab, _ := s.ActiveTab()
	if tab.ID != second.ID {
		t.Fatalf("expected second tab active, got %q", tab.Name)
	}

	// Re-selecting the dashboard snaps back to the first tab.
	s.SetActiveDashboard(d.ID)
	tab, _ = s.ActiveTab()
	if tab.ID != firstTab(t, d).ID {
		t.Errorf("expected first tab active, got %q", tab.Name)
	}
}

func TestSetActiveTabRejectsForeignTab(t *testing.T) {
	s := newTestStore(t)
	d1 := s.CreateDashboard("One")
	d2 := s.CreateDashboard("Two")

	s.SetActiveDashboard(d1.ID)
	s.SetActiveTab(firstTab(t, d2).ID) // belongs to d2, must be ignored

	tab, _ := s.ActiveTab()
	if tab.ID != firstTab(t, d1).ID {
		t.Errorf("foreign tab accepted: active=%q", tab.ID)
	}
}

func TestRemoveActiveTabRepairsPointer(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("Repair")
	s.SetActiveDashboard(d.ID)
	second, _ := s.AddTab(d.ID, "Second")
	s.SetActiveTab(second.ID)

	s.RemoveTab(d.ID, second.ID)

	tab, ok := s.ActiveTab()
	if !ok || tab.ID != firstTab(t, d).ID {
		t.Errorf("active tab not repaired after removal: %+v ok=%v", tab, ok)
	}
}

// --- Snapshots are copies ---

func TestSnapshotsDoNotAliasCanonicalState(t *testing.T) {
	s := newTestStore(t)
	d := s.CreateDashboard("Alias")
	w, _ := s.AddWidget(d.ID, firstTab(t, d).ID, WidgetSpec{
		Type:   registry.PriceChart,
		Config: map[string]any{"interval": "1m"},
	})

	snap, _ := s.FindWidget(w.ID)
	snap.Config["interval"] = "tampered"

	again, _ := s.FindWidget(w.ID)
	if again.Config["interval"] != "1m" {
		t.Error("snapshot mutation leaked into canonical state")
	}
}

// --- Subscriptions ---

func TestSubscribersNotifiedOnMutation(t *testing.T) {
	s := newTestStore(t)

	count := 0
	cancel := s.Subscribe(func() { count++ })

	d := s.CreateDashboard("Notify")
	s.AddWidget(d.ID, firstTab(t, d).ID, WidgetSpec{Type: registry.QuoteBoard})

	if count != 2 {
		t.Errorf("expected 2 notifications, got %d", count)
	}

	cancel()
	s.CreateDashboard("Silent")
	if count != 2 {
		t.Errorf("notified after cancel: %d", count)
	}
}

// --- Persistence round-trip ---

func TestRoundTripThroughPersistence(t *testing.T) {
	dir := t.TempDir()
	disk := persist.New(dir, nil)

	s1 := New(disk, nil)
	d := s1.CreateDashboard("Round Trip")
	tabID := d.Tabs[0].ID
	w, _ := s1.AddWidget(d.ID, tabID, WidgetSpec{
		Type:   registry.PriceChart,
		Config: map[string]any{"interval": "5m"},
		Group:  group.B,
	})
	s1.SetActiveDashboard(d.ID)

	// Fresh store over the same directory.
	s2 := New(persist.New(dir, nil), nil)

	got, ok := s2.ActiveDashboard()
	if !ok || got.ID != d.ID || got.Name != "Round Trip" {
		t.Fatalf("active dashboard not restored: %+v ok=%v", got, ok)
	}
	w2, ok := s2.FindWidget(w.ID)
	if !ok {
		t.Fatal("widget not restored")
	}
	if w2.Type != registry.PriceChart || w2.Group != group.B || w2.TabID != tabID {
		t.Errorf("widget fields not preserved: %+v", w2)
	}
	if w2.Layout != w.Layout {
		t.Errorf("layout not preserved: %+v vs %+v", w2.Layout, w.Layout)
	}
	if w2.Config["interval"] != "5m" {
		t.Errorf("config not preserved: %v", w2.Config)
	}
}

func TestLoadMalformedBlobReinitializes(t *testing.T) {
	dir := t.TempDir()
	disk := persist.New(dir, nil)

	// Store something that is valid JSON but not a dashboards array.
	persist.Set(disk, keyDashboards, "truncated-and-wrong")

	s := New(persist.New(dir, nil), nil)

	dashboards := s.Dashboards()
	if len(dashboards) != 1 {
		t.Fatalf("expected exactly one default dashboard, got %d", len(dashboards))
	}
	if len(dashboards[0].Tabs) != 1 || len(dashboards[0].Tabs[0].Widgets) != 0 {
		t.Errorf("reinitialized dashboard shape wrong: %+v", dashboards[0])
	}
}

func TestLoadStructurallyInvalidBlobReinitializes(t *testing.T) {
	dir := t.TempDir()
	disk := persist.New(dir, nil)

	// Duplicate widget ids across tabs violate the global-uniqueness
	// invariant.
	bad := []Dashboard{{
		ID:   "d1",
		Name: "Bad",
		Tabs: []Tab{
			{ID: "t1", Name: "A", Widgets: []Widget{
				{ID: "w1", Type: registry.PriceChart, TabID: "t1"},
			}},
			{ID: "t2", Name: "B", Widgets: []Widget{
				{ID: "w1", Type: registry.Watchlist, TabID: "t2"},
			}},
		},
	}}
	persist.Set(disk, keyDashboards, bad)

	s := New(persist.New(dir, nil), nil)

	dashboards := s.Dashboards()
	if len(dashboards) != 1 || dashboards[0].ID == "d1" {
		t.Errorf("invalid blob should be discarded, got %+v", dashboards)
	}
}

func TestLoadSanitizesGroupsAndLayouts(t *testing.T) {
	dir := t.TempDir()
	disk := persist.New(dir, nil)

	blob := []Dashboard{{
		ID:   "d1",
		Name: "Sane",
		Tabs: []Tab{{ID: "t1", Name: "A", Widgets: []Widget{{
			ID:     "w1",
			Type:   registry.PriceChart,
			TabID:  "t1",
			Group:  group.ID("martian"),
			Layout: grid.Layout{X: -3, Y: -1, W: 0, H: 0},
		}}}},
	}}
	persist.Set(disk, keyDashboards, blob)

	s := New(persist.New(dir, nil), nil)

	w, ok := s.FindWidget("w1")
	if !ok {
		t.Fatal("sanitized widget missing")
	}
	if w.Group != group.Global {
		t.Errorf("group not normalized: %q", w.Group)
	}
	if w.Layout.X < 0 || w.Layout.Y < 0 || w.Layout.W < 1 || w.Layout.H < 1 {
		t.Errorf("layout not clamped: %+v", w.Layout)
	}
}

// --- Debounced persistence ---

func TestDebouncedSaveFlushesOnClose(t *testing.T) {
	dir := t.TempDir()

	s1 := New(persist.New(dir, nil), nil, WithSaveDebounce(time.Hour))
	d := s1.CreateDashboard("Debounced")
	s1.Close()

	s2 := New(persist.New(dir, nil), nil)
	found := false
	for _, got := range s2.Dashboards() {
		if got.ID == d.ID {
			found = true
		}
	}
	if !found {
		t.Error("mutation made under debounce was lost despite Close")
	}
}
