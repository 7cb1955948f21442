package template

import (
	"log/slog"

	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/grid"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
)

// slotSize is the uniform footprint used by template application: a fixed
// two-column grid of half-width cells. Individual widgets can be resized
// afterwards; applying a template is intentionally uniform so the result
// is reproducible.
var slotSize = grid.Size{W: 6, H: 4}

// Apply creates a dashboard from a template: one CreateDashboard, one
// AddWidget per slot on the two-column grid, then SetActiveDashboard.
// Slots with unknown widget types are skipped with a log entry so one
// retired type cannot break a whole template. Returns the created
// dashboard.
func Apply(s *deck.Store, tpl Template, logger *slog.Logger) deck.Dashboard {
	if logger == nil {
		logger = slog.Default()
	}

	d := s.CreateDashboard(tpl.Name)
	tabID := d.Tabs[0].ID

	placed := 0
	for _, slot := range tpl.Widgets {
		t := registry.Type(slot.Type)
		if !registry.Known(t) {
			logger.Warn("template: skipping unknown widget type",
				"template", tpl.Name, "type", slot.Type)
			continue
		}
		_, ok := s.AddWidget(d.ID, tabID, deck.WidgetSpec{
			Type:   t,
			Config: slot.Config,
			Layout: grid.PlaceTwoColumn(placed, slotSize),
		})
		if ok {
			placed++
		}
	}

	s.SetActiveDashboard(d.ID)

	out, _ := s.ActiveDashboard()
	return out
}
