// Package grid computes widget placement on the dashboard grid. The grid is
// an abstract 12-column surface; widths and heights are in grid units, not
// terminal cells. All placement functions are pure and deterministic so
// template application is reproducible.
package grid

// Columns is the width of the dashboard grid in abstract units.
const Columns = 12

// Size is a widget footprint in grid units.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Layout is a placed rectangle on the grid.
type Layout struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (l Layout) Bottom() int {
	return l.Y + l.H
}

// Right returns the X coordinate of the right edge (exclusive).
func (l Layout) Right() int {
	return l.X + l.W
}

// Overlaps reports whether two layouts share any grid cell.
func Overlaps(a, b Layout) bool {
	if a.W <= 0 || a.H <= 0 || b.W <= 0 || b.H <= 0 {
		return false
	}
	return a.X < b.Right() && b.X < a.Right() && a.Y < b.Bottom() && b.Y < a.Bottom()
}

// PlaceBelow returns the placement for a new widget given the widgets
// already on the tab: full row start (x=0) directly below the lowest
// existing bottom edge. Appending below the stack cannot overlap anything,
// so no 2D packing search is needed.
func PlaceBelow(existing []Layout, size Size) Layout {
	size = clampSize(size)
	y := 0
	for _, l := range existing {
		if b := l.Bottom(); b > y {
			y = b
		}
	}
	return Layout{X: 0, Y: y, W: size.W, H: size.H}
}

// PlaceTwoColumn returns the placement for the index-th widget of a
// template: two columns of half-grid width, rows advancing by the widget
// height. Index 0 is top-left.
func PlaceTwoColumn(index int, size Size) Layout {
	size = clampSize(size)
	if index < 0 {
		index = 0
	}
	half := Columns / 2
	w := size.W
	if w > half {
		w = half
	}
	return Layout{
		X: (index % 2) * half,
		Y: (index / 2) * size.H,
		W: w,
		H: size.H,
	}
}

// Clamp sanitizes a layout loaded from persisted state: coordinates are
// forced non-negative, dimensions to at least one unit, and width to at
// most the grid width.
func Clamp(l Layout) Layout {
	if l.X < 0 {
		l.X = 0
	}
	if l.Y < 0 {
		l.Y = 0
	}
	if l.W < 1 {
		l.W = 1
	}
	if l.W > Columns {
		l.W = Columns
	}
	if l.H < 1 {
		l.H = 1
	}
	if l.X+l.W > Columns {
		l.X = Columns - l.W
	}
	return l
}

func clampSize(s Size) Size {
	if s.W < 1 {
		s.W = 1
	}
	if s.W > Columns {
		s.W = Columns
	}
	if s.H < 1 {
		s.H = 1
	}
	return s
}
