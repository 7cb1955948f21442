package uistate

import (
	"testing"

	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
)

func newTestPersist(t *testing.T) *persist.Store {
	t.Helper()
	return persist.New(t.TempDir(), nil)
}

// --- Value ---

func TestValueDefaultsBeforeFirstSet(t *testing.T) {
	p := newTestPersist(t)
	v := NewValue(p, FeaturePeriod, "w1", PeriodFY)

	if got := v.Get(); got != PeriodFY {
		t.Errorf("expected fallback %q, got %q", PeriodFY, got)
	}
}

func TestValueSetGetRoundTrip(t *testing.T) {
	p := newTestPersist(t)
	v := NewValue(p, FeaturePeriod, "w1", PeriodFY)

	v.Set(PeriodTTM)
	if got := v.Get(); got != PeriodTTM {
		t.Errorf("expected %q, got %q", PeriodTTM, got)
	}
}

func TestValuesAreIsolatedPerWidgetInstance(t *testing.T) {
	p := newTestPersist(t)

	// Two instances of the same widget type on one dashboard.
	first := NewValue(p, FeaturePeriod, "widget-a", PeriodFY)
	second := NewValue(p, FeaturePeriod, "widget-b", PeriodFY)

	first.Set(PeriodQ3)

	if got := second.Get(); got != PeriodFY {
		t.Errorf("state leaked across widget instances: got %q", got)
	}
}

func TestValuesAreIsolatedPerFeature(t *testing.T) {
	p := newTestPersist(t)

	period := NewValue(p, FeaturePeriod, "w1", PeriodFY)
	subtab := NewValue(p, FeatureSubTab, "w1", "overview")

	period.Set(PeriodQ2)
	if got := subtab.Get(); got != "overview" {
		t.Errorf("state leaked across features: got %q", got)
	}
}

func TestValueClearRestoresFallback(t *testing.T) {
	p := newTestPersist(t)
	v := NewValue(p, FeatureCollapse, "w1", false)

	v.Set(true)
	v.Clear()
	if v.Get() {
		t.Error("expected fallback after Clear")
	}
}

func TestValueSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	v1 := NewValue(persist.New(dir, nil), FeatureResearchSites, "w1", []string(nil))
	v1.Set([]string{"https://example.com/research", "https://example.com/filings"})

	v2 := NewValue(persist.New(dir, nil), FeatureResearchSites, "w1", []string(nil))
	got := v2.Get()
	if len(got) != 2 || got[0] != "https://example.com/research" {
		t.Errorf("bookmarks not restored: %v", got)
	}
}

func TestZeroStoreValueIsSafe(t *testing.T) {
	v := NewValue[string](nil, FeaturePeriod, "w1", PeriodFY)
	v.Set(PeriodQ1)
	if got := v.Get(); got != PeriodFY {
		t.Errorf("nil-store value should always return fallback, got %q", got)
	}
	v.Clear()
}

// --- Recent widget types ---

func TestRecentTypesNewestFirst(t *testing.T) {
	p := newTestPersist(t)

	TouchRecentType(p, registry.PriceChart)
	TouchRecentType(p, registry.Watchlist)

	got := RecentTypes(p)
	if len(got) != 2 || got[0] != registry.Watchlist || got[1] != registry.PriceChart {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestRecentTypesDeduplicates(t *testing.T) {
	p := newTestPersist(t)

	TouchRecentType(p, registry.PriceChart)
	TouchRecentType(p, registry.Watchlist)
	TouchRecentType(p, registry.PriceChart)

	got := RecentTypes(p)
	if len(got) != 2 || got[0] != registry.PriceChart {
		t.Errorf("expected de-duplicated list with price_chart first: %v", got)
	}
}

func TestRecentTypesBounded(t *testing.T) {
	p := newTestPersist(t)

	for _, tag := range registry.Types() {
		TouchRecentType(p, tag)
	}

	if got := RecentTypes(p); len(got) > maxRecentTypes {
		t.Errorf("list exceeds bound: %d entries", len(got))
	}
}

func TestRecentTypesIgnoresUnknownTags(t *testing.T) {
	p := newTestPersist(t)

	TouchRecentType(p, registry.Type("retired_widget"))
	if got := RecentTypes(p); len(got) != 0 {
		t.Errorf("unknown tag recorded: %v", got)
	}
}
