package grid

import "testing"

// --- PlaceBelow ---

func TestPlaceBelowEmptyGrid(t *testing.T) {
	got := PlaceBelow(nil, Size{W: 6, H: 4})
	want := Layout{X: 0, Y: 0, W: 6, H: 4}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPlaceBelowStacksSequentially(t *testing.T) {
	first := PlaceBelow(nil, Size{W: 6, H: 4})
	second := PlaceBelow([]Layout{first}, Size{W: 6, H: 4})

	want := Layout{X: 0, Y: 4, W: 6, H: 4}
	if second != want {
		t.Errorf("second placement: got %+v, want %+v", second, want)
	}
	if Overlaps(first, second) {
		t.Error("sequential placements overlap")
	}
}

func TestPlaceBelowUsesLowestBottomEdge(t *testing.T) {
	existing := []Layout{
		{X: 0, Y: 0, W: 6, H: 4},
		{X: 6, Y: 0, W: 6, H: 10}, // tallest column
		{X: 0, Y: 4, W: 6, H: 2},
	}
	got := PlaceBelow(existing, Size{W: 12, H: 3})
	want := Layout{X: 0, Y: 10, W: 12, H: 3}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	for i, l := range existing {
		if Overlaps(got, l) {
			t.Errorf("placement overlaps existing[%d]=%+v", i, l)
		}
	}
}

func TestPlaceBelowIsDeterministic(t *testing.T) {
	existing := []Layout{{X: 0, Y: 0, W: 6, H: 4}}
	a := PlaceBelow(existing, Size{W: 4, H: 2})
	b := PlaceBelow(existing, Size{W: 4, H: 2})
	if a != b {
		t.Errorf("non-deterministic placement: %+v vs %+v", a, b)
	}
}

func TestPlaceBelowClampsDegenerateSize(t *testing.T) {
	got := PlaceBelow(nil, Size{W: 0, H: -3})
	if got.W < 1 || got.H < 1 {
		t.Errorf("expected clamped size, got %+v", got)
	}
	if got.W > Columns {
		t.Errorf("width exceeds grid: %+v", got)
	}
}

// --- PlaceTwoColumn ---

func TestPlaceTwoColumnTemplateScenario(t *testing.T) {
	// Three 6x4 widgets: left, right, then second-row left.
	want := []Layout{
		{X: 0, Y: 0, W: 6, H: 4},
		{X: 6, Y: 0, W: 6, H: 4},
		{X: 0, Y: 4, W: 6, H: 4},
	}
	for i, w := range want {
		got := PlaceTwoColumn(i, Size{W: 6, H: 4})
		if got != w {
			t.Errorf("index %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestPlaceTwoColumnNoOverlapAcrossIndexes(t *testing.T) {
	var placed []Layout
	for i := 0; i < 8; i++ {
		l := PlaceTwoColumn(i, Size{W: 6, H: 4})
		for j, prev := range placed {
			if Overlaps(l, prev) {
				t.Errorf("index %d overlaps index %d", i, j)
			}
		}
		placed = append(placed, l)
	}
}

func TestPlaceTwoColumnCapsWidthToHalfGrid(t *testing.T) {
	got := PlaceTwoColumn(1, Size{W: 10, H: 4})
	if got.W != Columns/2 {
		t.Errorf("expected width capped at %d, got %d", Columns/2, got.W)
	}
	if got.X != Columns/2 {
		t.Errorf("expected right column x=%d, got %d", Columns/2, got.X)
	}
}

// --- Overlaps ---

func TestOverlapsDetectsIntersection(t *testing.T) {
	a := Layout{X: 0, Y: 0, W: 6, H: 4}
	cases := []struct {
		name string
		b    Layout
		want bool
	}{
		{"identical", Layout{X: 0, Y: 0, W: 6, H: 4}, true},
		{"partial", Layout{X: 4, Y: 2, W: 6, H: 4}, true},
		{"touching right edge", Layout{X: 6, Y: 0, W: 6, H: 4}, false},
		{"touching bottom edge", Layout{X: 0, Y: 4, W: 6, H: 4}, false},
		{"disjoint", Layout{X: 8, Y: 8, W: 2, H: 2}, false},
		{"zero size", Layout{X: 0, Y: 0, W: 0, H: 4}, false},
	}
	for _, tc := range cases {
		if got := Overlaps(a, tc.b); got != tc.want {
			t.Errorf("%s: Overlaps=%v, want %v", tc.name, got, tc.want)
		}
	}
}

// --- Clamp ---

func TestClampSanitizesPersistedLayouts(t *testing.T) {
	cases := []struct {
		name string
		in   Layout
		want Layout
	}{
		{"negative origin", Layout{X: -2, Y: -5, W: 6, H: 4}, Layout{X: 0, Y: 0, W: 6, H: 4}},
		{"zero dims", Layout{X: 0, Y: 0, W: 0, H: 0}, Layout{X: 0, Y: 0, W: 1, H: 1}},
		{"too wide", Layout{X: 0, Y: 0, W: 40, H: 4}, Layout{X: 0, Y: 0, W: Columns, H: 4}},
		{"hangs off right edge", Layout{X: 10, Y: 0, W: 6, H: 4}, Layout{X: 6, Y: 0, W: 6, H: 4}},
		{"valid unchanged", Layout{X: 3, Y: 7, W: 4, H: 2}, Layout{X: 3, Y: 7, W: 4, H: 2}},
	}
	for _, tc := range cases {
		if got := Clamp(tc.in); got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}
