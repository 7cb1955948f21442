package deck

import (
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
)

// Persistence keys. The dashboards blob and the two selection pointers are
// stored separately so a corrupt blob does not take the pointers down with
// it (and vice versa).
const (
	keyDashboards      = "dashboards"
	keyActiveDashboard = "active_dashboard"
	keyActiveTab       = "active_tab"
)

// DefaultDashboardName is used when the store initializes empty state.
const DefaultDashboardName = "Main"

// DefaultTabName seeds every newly created dashboard.
const DefaultTabName = "Overview"

// Option configures a Store.
type Option func(*Store)

// WithSaveDebounce delays persistence writes by d after the last mutation,
// coalescing bursts such as drag-resize. In-memory state is always updated
// immediately; only the disk write is deferred. Zero keeps synchronous
// write-through.
func WithSaveDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

type subscription struct {
	id int
	fn func()
}

// Store holds the canonical dashboard state. There is exactly one Store per
// application session; all mutation goes through its methods. Safe for
// concurrent use.
type Store struct {
	logger *slog.Logger
	disk   *persist.Store

	mu              sync.RWMutex
	dashboards      []Dashboard
	activeDashboard string
	activeTab       string

	subs   []subscription
	nextID int

	debounce    time.Duration
	saveTimer   *time.Timer
	savePending bool
}

// New creates the Store, loading persisted state from disk. Persisted state
// that fails to parse or violates invariants is discarded and replaced by a
// single default dashboard, so the store never starts partially invalid.
// A nil logger falls back to slog.Default.
func New(disk *persist.Store, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		logger: logger,
		disk:   disk,
	}
	for _, o := range opts {
		o(s)
	}
	s.load()
	return s
}

// Subscribe registers fn to run after every successful mutation. The
// returned cancel function removes the subscription.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Dashboards returns a deep-copy snapshot of all dashboards.
func (s *Store) Dashboards() []Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Dashboard, len(s.dashboards))
	for i, d := range s.dashboards {
		out[i] = copyDashboard(d)
	}
	return out
}

// ActiveDashboard returns a copy of the dashboard the active pointer
// currently resolves to. It is recomputed from the canonical list on every
// call, never stored redundantly.
func (s *Store) ActiveDashboard() (Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := s.findDashboard(s.activeDashboard)
	if d == nil {
		return Dashboard{}, false
	}
	return copyDashboard(*d), true
}

// ActiveTab returns a copy of the active tab within the active dashboard.
func (s *Store) ActiveTab() (Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := s.findDashboard(s.activeDashboard)
	if d == nil {
		return Tab{}, false
	}
	for i := range d.Tabs {
		if d.Tabs[i].ID == s.activeTab {
			return copyTab(d.Tabs[i]), true
		}
	}
	return Tab{}, false
}

// FindWidget looks a widget up by id alone, across all dashboards. Used by
// settings dialogs and UI-state consumers that only hold a widget id.
func (s *Store) FindWidget(widgetID string) (Widget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.dashboards {
		for j := range s.dashboards[i].Tabs {
			for _, w := range s.dashboards[i].Tabs[j].Widgets {
				if w.ID == widgetID {
					return copyWidget(w), true
				}
			}
		}
	}
	return Widget{}, false
}

// Flush forces any debounced persistence write to disk immediately.
func (s *Store) Flush() {
	s.mu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	pending := s.savePending
	s.savePending = false
	s.mu.Unlock()

	if pending {
		s.persistNow()
	}
}

// Close flushes pending writes and stops the debounce timer. The store
// remains usable afterwards; Close exists for orderly shutdown.
func (s *Store) Close() {
	s.Flush()
}

// --- internals ---

// findDashboard returns a pointer into canonical state. Caller must hold
// s.mu.
func (s *Store) findDashboard(id string) *Dashboard {
	for i := range s.dashboards {
		if s.dashboards[i].ID == id {
			return &s.dashboards[i]
		}
	}
	return nil
}

// findTab returns a pointer into canonical state. Caller must hold s.mu.
func (s *Store) findTab(d *Dashboard, tabID string) *Tab {
	if d == nil {
		return nil
	}
	for i := range d.Tabs {
		if d.Tabs[i].ID == tabID {
			return &d.Tabs[i]
		}
	}
	return nil
}

// widgetIDExists reports whether any widget in the store has the given id.
// Caller must hold s.mu.
func (s *Store) widgetIDExists(id string) bool {
	for i := range s.dashboards {
		for j := range s.dashboards[i].Tabs {
			for _, w := range s.dashboards[i].Tabs[j].Widgets {
				if w.ID == id {
					return true
				}
			}
		}
	}
	return false
}

// commit persists state and notifies subscribers. Called after every
// successful mutation, with s.mu NOT held.
func (s *Store) commit() {
	s.scheduleSave()
	s.notify()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn()
	}
}

// scheduleSave writes through synchronously, or arms the trailing-edge
// debounce timer when one is configured.
func (s *Store) scheduleSave() {
	if s.debounce <= 0 {
		s.persistNow()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.savePending = true
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		pending := s.savePending
		s.savePending = false
		s.saveTimer = nil
		s.mu.Unlock()
		if pending {
			s.persistNow()
		}
	})
}

// persistNow snapshots state under the read lock and writes it out.
func (s *Store) persistNow() {
	if s.disk == nil {
		return
	}

	s.mu.RLock()
	snapshot := make([]Dashboard, len(s.dashboards))
	for i, d := range s.dashboards {
		snapshot[i] = copyDashboard(d)
	}
	activeDash := s.activeDashboard
	activeTab := s.activeTab
	s.mu.RUnlock()

	persist.Set(s.disk, keyDashboards, snapshot)
	persist.Set(s.disk, keyActiveDashboard, activeDash)
	persist.Set(s.disk, keyActiveTab, activeTab)
}

// load restores state from disk, falling back to a single default
// dashboard when the persisted blob is corrupt or structurally invalid.
func (s *Store) load() {
	var loaded []Dashboard
	if s.disk != nil {
		loaded = persist.Get(s.disk, keyDashboards, []Dashboard(nil))
	}

	if len(loaded) > 0 {
		if err := validate(loaded); err != nil {
			s.logger.Warn("deck: persisted state invalid, reinitializing",
				"error", err)
			loaded = nil
		} else {
			sanitize(loaded)
		}
	}

	if len(loaded) == 0 {
		d := s.blankDashboard(DefaultDashboardName)
		s.dashboards = []Dashboard{d}
		s.activeDashboard = d.ID
		s.activeTab = d.Tabs[0].ID
		s.persistNow()
		return
	}

	s.dashboards = loaded
	s.activeDashboard = persist.Get(s.disk, keyActiveDashboard, "")
	s.activeTab = persist.Get(s.disk, keyActiveTab, "")
	s.resetPointersLocked()
}

// resetPointersLocked repairs the active dashboard/tab pointers so exactly
// one dashboard and one tab are active. Safe to call without the lock
// during load; otherwise caller must hold s.mu.
func (s *Store) resetPointersLocked() {
	d := s.findDashboard(s.activeDashboard)
	if d == nil && len(s.dashboards) > 0 {
		d = &s.dashboards[0]
		s.activeDashboard = d.ID
		s.activeTab = ""
	}
	if d == nil {
		s.activeDashboard = ""
		s.activeTab = ""
		return
	}
	if s.findTab(d, s.activeTab) == nil {
		if len(d.Tabs) > 0 {
			s.activeTab = d.Tabs[0].ID
		} else {
			s.activeTab = ""
		}
	}
}
