package deck

import (
	"fmt"

	"gitlab.com/tinyland/lab/marketdeck/pkg/grid"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
)

// validate checks the structural invariants of a persisted dashboards blob:
// unique ids at every level (widget ids globally), widget tab back-refs
// resolving to their owning tab, and at least one tab per dashboard. A
// violation means the blob is discarded wholesale; partially valid state is
// worse than a clean default.
//
// Unknown widget types are NOT a violation here; they render as
// placeholders, which keeps a dashboard usable across versions that drop a
// widget type.
func validate(dashboards []Dashboard) error {
	dashIDs := make(map[string]bool)
	widgetIDs := make(map[string]bool)

	for _, d := range dashboards {
		if d.ID == "" {
			return fmt.Errorf("dashboard %q has empty id", d.Name)
		}
		if dashIDs[d.ID] {
			return fmt.Errorf("duplicate dashboard id %q", d.ID)
		}
		dashIDs[d.ID] = true

		if len(d.Tabs) == 0 {
			return fmt.Errorf("dashboard %q has no tabs", d.ID)
		}

		tabIDs := make(map[string]bool)
		for _, t := range d.Tabs {
			if t.ID == "" {
				return fmt.Errorf("dashboard %q: tab %q has empty id", d.ID, t.Name)
			}
			if tabIDs[t.ID] {
				return fmt.Errorf("dashboard %q: duplicate tab id %q", d.ID, t.ID)
			}
			tabIDs[t.ID] = true

			for _, w := range t.Widgets {
				if w.ID == "" {
					return fmt.Errorf("tab %q: widget with empty id", t.ID)
				}
				if widgetIDs[w.ID] {
					return fmt.Errorf("duplicate widget id %q", w.ID)
				}
				widgetIDs[w.ID] = true

				if w.TabID != t.ID {
					return fmt.Errorf("widget %q: tab back-ref %q does not match owning tab %q",
						w.ID, w.TabID, t.ID)
				}
			}
		}
	}
	return nil
}

// sanitize repairs the recoverable parts of a structurally valid blob:
// group ids outside the closed set fall back to Global, layouts are clamped
// onto the grid, and tabs are put in display order.
func sanitize(dashboards []Dashboard) {
	for i := range dashboards {
		d := &dashboards[i]
		sortTabs(d.Tabs)
		for j := range d.Tabs {
			t := &d.Tabs[j]
			for k := range t.Widgets {
				w := &t.Widgets[k]
				w.Group = group.Normalize(w.Group)
				w.Layout = grid.Clamp(w.Layout)
				if w.Config == nil {
					w.Config = map[string]any{}
				}
			}
		}
	}
}
