package deck

import (
	"github.com/google/uuid"

	"gitlab.com/tinyland/lab/marketdeck/pkg/grid"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
)

// blankDashboard builds a dashboard with one empty default tab.
func (s *Store) blankDashboard(name string) Dashboard {
	return Dashboard{
		ID:   uuid.NewString(),
		Name: name,
		Tabs: []Tab{{
			ID:      uuid.NewString(),
			Name:    DefaultTabName,
			Order:   0,
			Widgets: []Widget{},
		}},
	}
}

// CreateDashboard appends a new dashboard seeded with one empty default tab
// and returns a copy of it, so the caller can immediately add widgets to
// dashboard.Tabs[0].ID.
func (s *Store) CreateDashboard(name string) Dashboard {
	if name == "" {
		name = DefaultDashboardName
	}
	d := s.blankDashboard(name)

	s.mu.Lock()
	s.dashboards = append(s.dashboards, d)
	s.mu.Unlock()

	s.commit()
	return copyDashboard(d)
}

// RenameDashboard changes a dashboard's display name. No-op if the id is
// unknown.
func (s *Store) RenameDashboard(dashboardID, name string) {
	s.mu.Lock()
	d := s.findDashboard(dashboardID)
	if d == nil || name == "" {
		s.mu.Unlock()
		s.logger.Debug("deck: rename dashboard skipped", "dashboard", dashboardID)
		return
	}
	d.Name = name
	s.mu.Unlock()

	s.commit()
}

// RemoveDashboard deletes a dashboard and, by ownership, all of its tabs
// and widgets. No-op if the id is unknown.
func (s *Store) RemoveDashboard(dashboardID string) {
	s.mu.Lock()
	idx := -1
	for i := range s.dashboards {
		if s.dashboards[i].ID == dashboardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("deck: remove dashboard skipped", "dashboard", dashboardID)
		return
	}
	s.dashboards = append(s.dashboards[:idx], s.dashboards[idx+1:]...)
	s.resetPointersLocked()
	s.mu.Unlock()

	s.commit()
}

// AddTab appends a tab to a dashboard, ordered after all existing tabs, and
// returns a copy of it. The second return value is false if the dashboard
// is unknown.
func (s *Store) AddTab(dashboardID, name string) (Tab, bool) {
	if name == "" {
		name = DefaultTabName
	}

	s.mu.Lock()
	d := s.findDashboard(dashboardID)
	if d == nil {
		s.mu.Unlock()
		s.logger.Warn("deck: add tab to unknown dashboard", "dashboard", dashboardID)
		return Tab{}, false
	}
	order := 0
	for _, t := range d.Tabs {
		if t.Order >= order {
			order = t.Order + 1
		}
	}
	tab := Tab{
		ID:      uuid.NewString(),
		Name:    name,
		Order:   order,
		Widgets: []Widget{},
	}
	d.Tabs = append(d.Tabs, tab)
	s.mu.Unlock()

	s.commit()
	return copyTab(tab), true
}

// RenameTab changes a tab's display name. No-op if not found.
func (s *Store) RenameTab(dashboardID, tabID, name string) {
	s.mu.Lock()
	t := s.findTab(s.findDashboard(dashboardID), tabID)
	if t == nil || name == "" {
		s.mu.Unlock()
		s.logger.Debug("deck: rename tab skipped", "dashboard", dashboardID, "tab", tabID)
		return
	}
	t.Name = name
	s.mu.Unlock()

	s.commit()
}

// RemoveTab deletes a tab and cascade-removes every widget it owns. Widgets
// on other tabs are untouched. No-op if not found.
func (s *Store) RemoveTab(dashboardID, tabID string) {
	s.mu.Lock()
	d := s.findDashboard(dashboardID)
	if d == nil {
		s.mu.Unlock()
		s.logger.Debug("deck: remove tab skipped", "dashboard", dashboardID, "tab", tabID)
		return
	}
	idx := -1
	for i := range d.Tabs {
		if d.Tabs[i].ID == tabID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("deck: remove tab skipped", "dashboard", dashboardID, "tab", tabID)
		return
	}
	d.Tabs = append(d.Tabs[:idx], d.Tabs[idx+1:]...)
	s.resetPointersLocked()
	s.mu.Unlock()

	s.commit()
}

// AddWidget inserts a widget into the target tab and returns a copy of the
// created instance. Unknown dashboards, tabs, or widget types are logged
// no-ops; this runs in the render path and must never throw upward.
//
// A zero-size spec layout means "registry default footprint, placed below
// the existing stack".
func (s *Store) AddWidget(dashboardID, tabID string, spec WidgetSpec) (Widget, bool) {
	def, known := registry.Lookup(spec.Type)
	if !known {
		s.logger.Warn("deck: add widget with unknown type", "type", string(spec.Type))
		return Widget{}, false
	}

	s.mu.Lock()
	t := s.findTab(s.findDashboard(dashboardID), tabID)
	if t == nil {
		s.mu.Unlock()
		s.logger.Warn("deck: add widget to unknown target",
			"dashboard", dashboardID, "tab", tabID)
		return Widget{}, false
	}

	layout := spec.Layout
	if layout.W <= 0 || layout.H <= 0 {
		layout = grid.PlaceBelow(widgetLayouts(t), def.DefaultSize)
	}

	cfg := spec.Config
	if cfg == nil {
		cfg = registry.CloneConfig(def)
	}

	// uuid collisions are not a practical concern, but id uniqueness is a
	// store invariant, so regenerate on the off chance.
	id := uuid.NewString()
	for s.widgetIDExists(id) {
		id = uuid.NewString()
	}

	w := Widget{
		ID:     id,
		Type:   spec.Type,
		TabID:  t.ID,
		Config: cfg,
		Layout: grid.Clamp(layout),
		Group:  group.Normalize(spec.Group),
	}
	t.Widgets = append(t.Widgets, copyWidget(w))
	s.mu.Unlock()

	s.commit()
	return w, true
}

// UpdateWidget merges a patch into an existing widget. Config entries are
// shallow-merged key by key; a nested object in the patch replaces the
// stored object wholesale rather than deep-merging into it. No-op if the
// widget is not found.
func (s *Store) UpdateWidget(dashboardID, tabID, widgetID string, patch WidgetPatch) {
	s.mu.Lock()
	t := s.findTab(s.findDashboard(dashboardID), tabID)
	if t == nil {
		s.mu.Unlock()
		s.logger.Debug("deck: update widget skipped",
			"dashboard", dashboardID, "tab", tabID, "widget", widgetID)
		return
	}
	var w *Widget
	for i := range t.Widgets {
		if t.Widgets[i].ID == widgetID {
			w = &t.Widgets[i]
			break
		}
	}
	if w == nil {
		s.mu.Unlock()
		s.logger.Debug("deck: update widget skipped", "widget", widgetID)
		return
	}

	if patch.ReplaceConfig {
		w.Config = make(map[string]any, len(patch.Config))
		for k, v := range patch.Config {
			w.Config[k] = v
		}
	} else if len(patch.Config) > 0 {
		if w.Config == nil {
			w.Config = make(map[string]any, len(patch.Config))
		}
		for k, v := range patch.Config {
			w.Config[k] = v
		}
	}
	if patch.Layout != nil {
		w.Layout = grid.Clamp(*patch.Layout)
	}
	if patch.Group != nil {
		w.Group = group.Normalize(*patch.Group)
	}
	s.mu.Unlock()

	s.commit()
}

// RemoveWidget deletes a widget by id. No-op if absent.
func (s *Store) RemoveWidget(dashboardID, tabID, widgetID string) {
	s.mu.Lock()
	t := s.findTab(s.findDashboard(dashboardID), tabID)
	if t == nil {
		s.mu.Unlock()
		s.logger.Debug("deck: remove widget skipped", "widget", widgetID)
		return
	}
	idx := -1
	for i := range t.Widgets {
		if t.Widgets[i].ID == widgetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("deck: remove widget skipped", "widget", widgetID)
		return
	}
	t.Widgets = append(t.Widgets[:idx], t.Widgets[idx+1:]...)
	s.mu.Unlock()

	s.commit()
}

// SetActiveDashboard moves the active pointer. Selecting a dashboard also
// selects its first tab. No-op if the id is unknown.
func (s *Store) SetActiveDashboard(dashboardID string) {
	s.mu.Lock()
	d := s.findDashboard(dashboardID)
	if d == nil {
		s.mu.Unlock()
		s.logger.Debug("deck: set active dashboard skipped", "dashboard", dashboardID)
		return
	}
	s.activeDashboard = d.ID
	if len(d.Tabs) > 0 {
		s.activeTab = d.Tabs[0].ID
	} else {
		s.activeTab = ""
	}
	s.mu.Unlock()

	s.commit()
}

// SetActiveTab moves the active tab pointer within the active dashboard.
// No-op if the tab does not belong to the active dashboard.
func (s *Store) SetActiveTab(tabID string) {
	s.mu.Lock()
	d := s.findDashboard(s.activeDashboard)
	if s.findTab(d, tabID) == nil {
		s.mu.Unlock()
		s.logger.Debug("deck: set active tab skipped", "tab", tabID)
		return
	}
	s.activeTab = tabID
	s.mu.Unlock()

	s.commit()
}
