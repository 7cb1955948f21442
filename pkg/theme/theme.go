package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme defines the complete color palette for the terminal.
type Theme struct {
	Name string

	// Base colors
	Background string // hex color e.g. "#0d1117"
	Foreground string // hex color
	Dim        string // dimmed text, secondary labels
	Accent     string // highlights, selected rows

	// Widget chrome
	Border      string // unfocused widget borders
	BorderFocus string // focused widget border
	Title       string // widget title text

	// Price movement colors
	PriceUp   string // gaining quotes
	PriceDown string // losing quotes
	PriceFlat string // unchanged quotes

	// Chart colors
	ChartLine string
	ChartGrid string

	// Status colors
	StatusOK    string
	StatusWarn  string
	StatusError string
}

// Current holds the active theme (set via SetCurrent).
var Current Theme

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	registerBuiltins()
	Current = defaultTheme()
}

// Get returns a named theme, falling back to the default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetCurrent sets the active theme by name.
func SetCurrent(name string) {
	Current = Get(name)
}

// register adds a theme to the registry under its lowercase name.
func register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
