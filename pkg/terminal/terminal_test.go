package terminal

import (
	"testing"
)

func TestEnvIntFallbacks(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"", 80},
		{"120", 120},
		{"0", 80},
		{"-5", 80},
		{"wide", 80},
	}
	for _, tc := range cases {
		t.Setenv("COLUMNS", tc.value)
		if got := envInt("COLUMNS", 80); got != tc.want {
			t.Errorf("envInt(%q): got %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestSizeFromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "50")
	s := sizeFromEnv()
	if s.Cols != 132 || s.Rows != 50 {
		t.Errorf("got %+v", s)
	}
}

func TestGetSizeNeverZero(t *testing.T) {
	s := GetSize()
	if s.Cols <= 0 || s.Rows <= 0 {
		t.Errorf("GetSize must always return positive dimensions, got %+v", s)
	}
}

func TestColorDepthIsKnownValue(t *testing.T) {
	switch d := ColorDepth(); d {
	case 1, 4, 8, 24:
	default:
		t.Errorf("unexpected color depth %d", d)
	}
}
