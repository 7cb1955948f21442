// Package components provides ANSI-aware text primitives and the frame,
// table, and sparkline renderers shared by all marketdeck widgets.
package components

// Align controls horizontal text alignment within a frame or table cell.
type Align int

const (
	// AlignLeft aligns text to the left edge (default).
	AlignLeft Align = iota
	// AlignCenter centers text horizontally.
	AlignCenter
	// AlignRight aligns text to the right edge.
	AlignRight
)
