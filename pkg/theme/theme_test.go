package theme

import (
	"strconv"
	"testing"
)

// --- Registry ---

func TestGetKnownTheme(t *testing.T) {
	th := Get("light")
	if th.Name != "light" {
		t.Errorf("expected light theme, got %q", th.Name)
	}
	if th.Background != "#ffffff" {
		t.Errorf("light background: got %q", th.Background)
	}
}

func TestGetUnknownFallsBackToDefault(t *testing.T) {
	th := Get("no-such-theme")
	if th.Name != "default" {
		t.Errorf("expected default fallback, got %q", th.Name)
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	if Get("High-Contrast").Name != "high-contrast" {
		t.Error("lookup should be case-insensitive")
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 builtins, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestBuiltinPricesAreDistinct(t *testing.T) {
	for _, name := range Names() {
		th := Get(name)
		if th.PriceUp == th.PriceDown {
			t.Errorf("%s: up and down colors must differ", name)
		}
		if th.PriceUp == "" || th.PriceDown == "" || th.PriceFlat == "" {
			t.Errorf("%s: price colors must all be set", name)
		}
	}
}

// --- Fallback ---

func TestAdaptKeepsTruecolorUnchanged(t *testing.T) {
	orig := Get("default")
	got := Adapt(orig, 24)
	if got != orig {
		t.Error("24-bit terminals should keep the theme untouched")
	}
}

func TestAdaptConvertsTo256(t *testing.T) {
	got := Adapt(Get("default"), 8)
	for _, c := range []string{got.Background, got.Foreground, got.PriceUp, got.PriceDown, got.Accent} {
		n, err := strconv.Atoi(c)
		if err != nil {
			t.Errorf("adapted color %q is not a 256-color index", c)
			continue
		}
		if n < 16 || n > 255 {
			t.Errorf("adapted index %d out of extended palette range", n)
		}
	}
}

func TestTo256ColorKnownValues(t *testing.T) {
	cases := []struct {
		hex  string
		want string
	}{
		{"#000000", "16"},  // pure black maps to cube origin
		{"#ffffff", "231"}, // pure white maps to cube max
		{"#ff0000", "196"},
		{"#00ff00", "46"},
		{"#0000ff", "21"},
		{"#808080", "244"}, // mid gray prefers the grayscale ramp
	}
	for _, tc := range cases {
		if got := to256Color(tc.hex); got != tc.want {
			t.Errorf("to256Color(%q) = %q, want %q", tc.hex, got, tc.want)
		}
	}
}

func TestTo256ColorPassesThroughUnparseable(t *testing.T) {
	for _, in := range []string{"", "red", "#12345", "#gggggg"} {
		if got := to256Color(in); got != in {
			t.Errorf("unparseable %q should pass through, got %q", in, got)
		}
	}
}
