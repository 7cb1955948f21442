// Package template defines named dashboard presets: a list of widget types
// (with optional config) applied atomically to a fresh dashboard. Users
// pick builtins by name or load custom templates from TOML or YAML files.
package template

import "sort"

// Template is a named preset list of widgets.
type Template struct {
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description" yaml:"description"`
	Widgets     []Slot `toml:"widgets" yaml:"widgets"`
}

// Slot is one widget entry in a template. Type must be a registered widget
// type tag; Config overrides the registry default when non-nil.
type Slot struct {
	Type   string         `toml:"type" yaml:"type"`
	Config map[string]any `toml:"config,omitempty" yaml:"config,omitempty"`
}

// builtins maps template names to their definitions.
var builtins map[string]Template

func init() {
	builtins = map[string]Template{
		"market-overview":    tplMarketOverview(),
		"technical-analysis": tplTechnicalAnalysis(),
		"fundamentals":       tplFundamentals(),
	}
}

// Get returns a named template, falling back to market-overview if the
// name is unknown.
func Get(name string) Template {
	if t, ok := builtins[name]; ok {
		return t
	}
	return builtins["market-overview"]
}

// Has reports whether a builtin template with this name exists.
func Has(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Names returns all builtin template names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
