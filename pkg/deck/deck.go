// Package deck is the central state container for the dashboard surface:
// dashboards, their tabs, and the widget instances placed on each tab. All
// mutation flows through the Store, which persists on every change and
// notifies subscribers so the UI re-renders.
//
// Operations addressing a missing dashboard, tab, or widget are logged
// no-ops. Nothing in this package returns an error into the render path.
package deck

import (
	"sort"

	"gitlab.com/tinyland/lab/marketdeck/pkg/grid"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
)

// Widget is a placed, configured occurrence of a widget type. IDs are
// unique across the whole store, not just within a tab, because settings
// dialogs and UI-state keys address widgets by id alone.
type Widget struct {
	ID     string         `json:"id"`
	Type   registry.Type  `json:"type"`
	TabID  string         `json:"tab_id"`
	Config map[string]any `json:"config,omitempty"`
	Layout grid.Layout    `json:"layout"`
	Group  group.ID       `json:"group,omitempty"`
}

// Tab is an ordered container of widgets within a dashboard. Order controls
// display sequence; ties keep insertion order.
type Tab struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Order   int      `json:"order"`
	Widgets []Widget `json:"widgets"`
}

// Dashboard is a top-level named workspace. A dashboard always has at least
// one tab after creation.
type Dashboard struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tabs []Tab  `json:"tabs"`
}

// WidgetSpec describes a widget to insert. A zero Layout size means "use
// the registry default footprint, placed below the existing stack".
type WidgetSpec struct {
	Type   registry.Type
	Config map[string]any
	Layout grid.Layout
	Group  group.ID
}

// WidgetPatch is a partial widget update. Config entries are shallow-merged
// into the existing config unless ReplaceConfig is set, in which case the
// whole map is swapped. Nil pointer fields are left unchanged.
type WidgetPatch struct {
	Config        map[string]any
	ReplaceConfig bool
	Layout        *grid.Layout
	Group         *group.ID
}

// --- copy helpers ---
//
// The store only ever hands out deep copies so callers cannot splice into
// canonical state.

func copyWidget(w Widget) Widget {
	out := w
	if w.Config != nil {
		out.Config = make(map[string]any, len(w.Config))
		for k, v := range w.Config {
			out.Config[k] = v
		}
	}
	return out
}

func copyTab(t Tab) Tab {
	out := t
	out.Widgets = make([]Widget, len(t.Widgets))
	for i, w := range t.Widgets {
		out.Widgets[i] = copyWidget(w)
	}
	return out
}

func copyDashboard(d Dashboard) Dashboard {
	out := d
	out.Tabs = make([]Tab, len(d.Tabs))
	for i, t := range d.Tabs {
		out.Tabs[i] = copyTab(t)
	}
	return out
}

// sortTabs orders tabs by Order, keeping insertion order for ties.
func sortTabs(tabs []Tab) {
	sort.SliceStable(tabs, func(i, j int) bool {
		return tabs[i].Order < tabs[j].Order
	})
}

// widgetLayouts extracts the layouts of all widgets on a tab, for the
// placement engine.
func widgetLayouts(t *Tab) []grid.Layout {
	layouts := make([]grid.Layout, len(t.Widgets))
	for i, w := range t.Widgets {
		layouts[i] = w.Layout
	}
	return layouts
}
