// Package terminal answers the two questions marketdeck asks its host
// terminal before starting: how big is it, and how much color can it show.
package terminal

import (
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// Size is the terminal dimensions in character cells.
type Size struct {
	Cols int
	Rows int
}

// GetSize returns the current terminal dimensions. Strategies in order:
//  1. TIOCGWINSZ ioctl on stdout
//  2. TIOCGWINSZ ioctl on stderr (stdout may be redirected)
//  3. COLUMNS/LINES environment variables
//  4. 80x24
func GetSize() Size {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd()} {
		if s, ok := sizeFromIoctl(fd); ok {
			return s
		}
	}
	return sizeFromEnv()
}

// sizeFromIoctl queries the terminal size via TIOCGWINSZ.
func sizeFromIoctl(fd uintptr) (Size, bool) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return Size{}, false
	}
	return Size{Cols: int(ws.Col), Rows: int(ws.Row)}, true
}

// sizeFromEnv reads COLUMNS/LINES, falling back to 80x24.
func sizeFromEnv() Size {
	return Size{
		Cols: envInt("COLUMNS", 80),
		Rows: envInt("LINES", 24),
	}
}

// envInt reads a positive integer from the named environment variable.
func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
