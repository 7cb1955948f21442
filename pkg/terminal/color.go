package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorDepth returns the bit depth the terminal can display: 24 for
// truecolor, 8 for 256-color, 4 for ANSI, 1 for monochrome. Themes are
// downsampled to this depth before rendering.
func ColorDepth() int {
	switch termenv.ColorProfile() {
	case termenv.TrueColor:
		return 24
	case termenv.ANSI256:
		return 8
	case termenv.ANSI:
		return 4
	default:
		return 1
	}
}
