package components

import (
	"fmt"
	"strconv"
	"strings"
)

// Color produces an ANSI true-color foreground escape sequence from a hex
// color string like "#ff5500". Returns an empty string for malformed input.
func Color(hex string) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// BgColor produces an ANSI true-color background escape sequence from a hex
// color string.
func BgColor(hex string) string {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

// Colorize wraps s in a foreground color and a reset. Returns s unchanged
// when the color cannot be parsed.
func Colorize(s, hex string) string {
	fg := Color(hex)
	if fg == "" {
		return s
	}
	return fg + s + Reset()
}

// Bold wraps s in ANSI bold escape sequences.
func Bold(s string) string {
	return "\x1b[1m" + s + "\x1b[22m"
}

// Dim wraps s in ANSI dim/faint escape sequences.
func Dim(s string) string {
	return "\x1b[2m" + s + "\x1b[22m"
}

// Reset returns the ANSI reset sequence that clears all styling.
func Reset() string {
	return "\x1b[0m"
}

// parseHexColor parses "#RRGGBB" or "RRGGBB" into channel values.
func parseHexColor(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
