package components

import (
	"strings"
	"testing"
)

func quoteColumns() []Column {
	return []Column{
		{Title: "SYM", Width: 5},
		{Title: "LAST", Width: 8, Align: AlignRight},
		{Title: "CHG%", Width: 7, Align: AlignRight},
	}
}

func TestDataTableHeaderAndRows(t *testing.T) {
	dt := NewDataTable(quoteColumns(), TableStyle{})
	out := dt.Render([][]string{
		{"VNM", "86.40", "+1.2%"},
		{"HPG", "27.15", "-0.8%"},
	}, -1)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "SYM") || !strings.Contains(lines[0], "CHG%") {
		t.Errorf("header malformed: %q", lines[0])
	}
	if !strings.Contains(lines[1], "VNM") {
		t.Errorf("row 1 malformed: %q", lines[1])
	}
}

func TestDataTableUniformWidth(t *testing.T) {
	dt := NewDataTable(quoteColumns(), TableStyle{})
	out := dt.Render([][]string{
		{"VNM", "86.40", "+1.2%"},
		{"MWG"},
	}, -1)
	lines := strings.Split(out, "\n")
	want := VisibleLen(lines[0])
	for i, l := range lines {
		if VisibleLen(l) != want {
			t.Errorf("line %d width %d, want %d: %q", i, VisibleLen(l), want, l)
		}
	}
}

func TestDataTableRightAlignment(t *testing.T) {
	dt := NewDataTable([]Column{{Title: "N", Width: 6, Align: AlignRight}}, TableStyle{})
	out := dt.Render([][]string{{"42"}}, -1)
	lines := strings.Split(out, "\n")
	if !strings.HasSuffix(lines[1], "42") {
		t.Errorf("right-aligned cell should end the line: %q", lines[1])
	}
}

func TestDataTableSelectionMarker(t *testing.T) {
	dt := NewDataTable(quoteColumns(), TableStyle{})
	dt.Selected = 1
	out := dt.Render([][]string{
		{"VNM", "86.40", "+1.2%"},
		{"HPG", "27.15", "-0.8%"},
	}, -1)
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[2], "▸") {
		t.Errorf("selected row should carry marker: %q", lines[2])
	}
	if strings.HasPrefix(lines[1], "▸") {
		t.Error("unselected row must not carry marker")
	}
}

func TestDataTableMaxRows(t *testing.T) {
	dt := NewDataTable(quoteColumns(), TableStyle{})
	rows := [][]string{{"a"}, {"b"}, {"c"}, {"d"}}
	out := dt.Render(rows, 2)
	if got := len(strings.Split(out, "\n")); got != 3 {
		t.Errorf("expected header + 2 rows, got %d lines", got)
	}
}

func TestDataTableTruncatesOversizeCells(t *testing.T) {
	dt := NewDataTable([]Column{{Title: "NAME", Width: 4}}, TableStyle{})
	out := dt.Render([][]string{{"Vietnam Dairy Products"}}, -1)
	lines := strings.Split(out, "\n")
	if VisibleLen(lines[1]) != VisibleLen(lines[0]) {
		t.Errorf("oversize cell must be truncated to column width: %q", lines[1])
	}
}
