package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/feed"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
	"gitlab.com/tinyland/lab/marketdeck/pkg/uistate"
)

// Config controls the application shell.
type Config struct {
	// RefreshInterval is the feed tick cadence.
	RefreshInterval time.Duration

	// UI persists the add-widget prompt's recently used types. Optional.
	UI *persist.Store
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	return Config{RefreshInterval: 2 * time.Second}
}

// inputMode selects what the status line input captures.
type inputMode int

const (
	modeNormal inputMode = iota
	modeAddWidget
	modeSymbol
)

// AppModel is the root bubbletea model. It renders the active tab of the
// dashboard store and translates key and mouse input into store mutations.
type AppModel struct {
	cfg     Config
	store   *deck.Store
	bus     *group.Bus
	feed    *feed.Feed
	factory Factory
	zones   *zone.Manager

	// instances maps widget ids on the active tab to their renderers.
	instances   map[string]Widget
	widgetOrder []string

	width  int
	height int

	focusedWidget  string
	expandedWidget string
	quitting       bool
	helpVisible    bool
	statusMsg      string

	mode   inputMode
	prompt string
	input  textinput.Model
}

// NewAppModel creates the root model. factory may be nil, in which case
// every widget renders as a placeholder.
func NewAppModel(cfg Config, store *deck.Store, bus *group.Bus, f *feed.Feed, factory Factory) AppModel {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}
	ti := textinput.New()
	ti.CharLimit = 64

	m := AppModel{
		cfg:       cfg,
		store:     store,
		bus:       bus,
		feed:      f,
		factory:   factory,
		zones:     zone.New(),
		instances: map[string]Widget{},
		input:     ti,
	}
	m.syncInstances()
	return m
}

// Width returns the current terminal width.
func (m AppModel) Width() int { return m.width }

// Height returns the current terminal height.
func (m AppModel) Height() int { return m.height }

// FocusedWidgetID returns the id of the focused widget, or "".
func (m AppModel) FocusedWidgetID() string { return m.focusedWidget }

// ExpandedWidgetID returns the id of the expanded widget, or "".
func (m AppModel) ExpandedWidgetID() string { return m.expandedWidget }

// Quitting reports whether the model is shutting down.
func (m AppModel) Quitting() bool { return m.quitting }

// HelpVisible reports whether the help overlay is shown.
func (m AppModel) HelpVisible() bool { return m.helpVisible }

// Init starts the tick loop.
func (m AppModel) Init() tea.Cmd {
	return TickCmd(m.cfg.RefreshInterval)
}

// Update handles all incoming messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickEvent:
		if m.feed != nil {
			m.feed.Step()
		}
		m.syncInstances()
		cmds := []tea.Cmd{TickCmd(m.cfg.RefreshInterval)}
		if cmd := m.broadcast(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case SymbolSelectedEvent:
		return m.handleSymbolSelected(msg)

	case StatusEvent:
		m.statusMsg = msg.Message
		return m, nil

	case WidgetFocusEvent:
		m.FocusWidget(msg.WidgetID)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, m.broadcast(msg)
}

// View renders the full terminal frame.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	bodyH := m.height - 2 // tab bar and status bar
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	tab, ok := m.store.ActiveTab()
	switch {
	case m.helpVisible:
		body = m.renderHelp(m.width, bodyH)
	case !ok:
		body = components.Fit("no active tab", m.width)
	case m.expandedWidget != "":
		if w, found := m.store.FindWidget(m.expandedWidget); found {
			body = m.renderWidget(w, m.width, bodyH)
		} else {
			body = m.renderGrid(tab, m.width, bodyH)
		}
	default:
		body = m.renderGrid(tab, m.width, bodyH)
	}

	out := m.renderTabBar(m.width) + "\n" + body + "\n" + m.renderStatusBar(m.width)
	return m.zones.Scan(out)
}

// handleKey processes normal-mode key presses.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		if m.store != nil {
			m.store.Flush()
		}
		return m, tea.Quit

	case "tab":
		m.CycleFocusForward()
		return m, nil
	case "shift+tab":
		m.CycleFocusBackward()
		return m, nil

	case "enter":
		m.ToggleExpand()
		return m, nil
	case "esc":
		m.expandedWidget = ""
		return m, nil

	case "?":
		m.helpVisible = !m.helpVisible
		return m, nil

	case "[", "left":
		m.switchTab(-1)
		return m, nil
	case "]", "right":
		m.switchTab(1)
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.selectTab(int(msg.String()[0] - '1'))
		return m, nil

	case "a":
		m.mode = modeAddWidget
		m.prompt = "add widget (type tag): "
		if m.cfg.UI != nil {
			if recent := uistate.RecentTypes(m.cfg.UI); len(recent) > 0 {
				tags := make([]string, len(recent))
				for i, t := range recent {
					tags[i] = string(t)
				}
				m.prompt = "add widget (recent: " + strings.Join(tags, ", ") + "): "
			}
		}
		m.input.SetValue("")
		return m, m.input.Focus()

	case "s":
		if m.focusedWidget == "" {
			return m, nil
		}
		m.mode = modeSymbol
		m.prompt = "symbol: "
		m.input.SetValue("")
		return m, m.input.Focus()

	case "t":
		if tab, ok := m.store.AddTab(m.activeDashboardID(), "New Tab"); ok {
			m.store.SetActiveTab(tab.ID)
			m.syncInstances()
		}
		return m, nil

	case "x":
		if m.focusedWidget != "" {
			if w, ok := m.store.FindWidget(m.focusedWidget); ok {
				m.store.RemoveWidget(m.activeDashboardID(), w.TabID, w.ID)
			}
			if m.expandedWidget == m.focusedWidget {
				m.expandedWidget = ""
			}
			m.syncInstances()
		}
		return m, nil

	case "g":
		return m, m.cycleFocusedGroup()
	}

	if inst := m.instances[m.focusedWidget]; inst != nil {
		return m, inst.HandleKey(msg)
	}
	return m, nil
}

// handleInputKey processes key presses while the status line input is open.
func (m AppModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = modeNormal
		m.input.Blur()
		return m.commitInput(mode, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitInput applies the completed status line input.
func (m AppModel) commitInput(mode inputMode, value string) (tea.Model, tea.Cmd) {
	if value == "" {
		return m, nil
	}
	switch mode {
	case modeAddWidget:
		tab, ok := m.store.ActiveTab()
		if !ok {
			return m, nil
		}
		tag := registry.Type(strings.ToLower(value))
		w, ok := m.store.AddWidget(m.activeDashboardID(), tab.ID, deck.WidgetSpec{Type: tag})
		if !ok {
			return m, StatusCmd("unknown widget type " + value)
		}
		if m.cfg.UI != nil {
			uistate.TouchRecentType(m.cfg.UI, tag)
		}
		m.syncInstances()
		m.focusedWidget = w.ID
		return m, StatusCmd("added " + string(tag))

	case modeSymbol:
		w, ok := m.store.FindWidget(m.focusedWidget)
		if !ok {
			return m, nil
		}
		if m.feed != nil {
			m.feed.Track(value)
		}
		return m, SelectSymbolCmd(w.Group, strings.ToUpper(value))
	}
	return m, nil
}

// handleSymbolSelected publishes the selection on the bus and forwards it
// to every widget instance linked to the same group.
func (m AppModel) handleSymbolSelected(ev SymbolSelectedEvent) (tea.Model, tea.Cmd) {
	if m.bus != nil {
		m.bus.SetSymbol(ev.Group, ev.Symbol)
	}
	for id, inst := range m.instances {
		sub, ok := inst.(SymbolSubscriber)
		if !ok {
			continue
		}
		w, found := m.store.FindWidget(id)
		if !found || w.Group != group.Normalize(ev.Group) {
			continue
		}
		sub.SetSymbol(ev.Symbol)
	}
	return m, StatusCmd(string(group.Normalize(ev.Group)) + " → " + ev.Symbol)
}

// handleMouse activates tabs on click.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	d, ok := m.store.ActiveDashboard()
	if !ok {
		return m, nil
	}
	for _, tab := range d.Tabs {
		if m.zones.Get("tab:" + tab.ID).InBounds(msg) {
			m.store.SetActiveTab(tab.ID)
			m.syncInstances()
			break
		}
	}
	return m, nil
}

// cycleFocusedGroup advances the focused widget through the group ring.
func (m *AppModel) cycleFocusedGroup() tea.Cmd {
	w, ok := m.store.FindWidget(m.focusedWidget)
	if !ok {
		return nil
	}
	ring := group.All()
	next := ring[0]
	for i, g := range ring {
		if g == w.Group {
			next = ring[(i+1)%len(ring)]
			break
		}
	}
	m.store.UpdateWidget(m.activeDashboardID(), w.TabID, w.ID, deck.WidgetPatch{Group: &next})
	return StatusCmd("group " + string(next))
}

// switchTab moves the active tab by delta, clamped at the ends.
func (m *AppModel) switchTab(delta int) {
	d, ok := m.store.ActiveDashboard()
	if !ok {
		return
	}
	active, _ := m.store.ActiveTab()
	for i, tab := range d.Tabs {
		if tab.ID == active.ID {
			j := i + delta
			if j >= 0 && j < len(d.Tabs) {
				m.store.SetActiveTab(d.Tabs[j].ID)
				m.syncInstances()
			}
			return
		}
	}
}

// selectTab activates the tab at the given index on the active dashboard.
func (m *AppModel) selectTab(idx int) {
	d, ok := m.store.ActiveDashboard()
	if !ok || idx < 0 || idx >= len(d.Tabs) {
		return
	}
	m.store.SetActiveTab(d.Tabs[idx].ID)
	m.syncInstances()
}

// activeDashboardID returns the active dashboard id, or "".
func (m *AppModel) activeDashboardID() string {
	d, ok := m.store.ActiveDashboard()
	if !ok {
		return ""
	}
	return d.ID
}

// syncInstances reconciles widget renderers with the active tab, building
// missing instances and dropping ones whose widgets are gone. Focus is
// repaired when its widget disappears.
func (m *AppModel) syncInstances() {
	tab, ok := m.store.ActiveTab()
	if !ok {
		m.instances = map[string]Widget{}
		m.widgetOrder = nil
		m.focusedWidget = ""
		m.expandedWidget = ""
		return
	}

	next := make(map[string]Widget, len(tab.Widgets))
	order := make([]string, 0, len(tab.Widgets))
	for _, w := range tab.Widgets {
		order = append(order, w.ID)
		if inst, exists := m.instances[w.ID]; exists {
			next[w.ID] = inst
			continue
		}
		var inst Widget
		if m.factory != nil {
			inst = m.factory(w)
		}
		if inst == nil {
			title := string(w.Type)
			if def, known := registry.Lookup(w.Type); known {
				title = def.Name
			}
			inst = NewPlaceholder(w.ID, title, string(w.Type))
		}
		next[w.ID] = inst
	}

	m.instances = next
	m.widgetOrder = order

	if _, ok := next[m.focusedWidget]; !ok {
		m.focusedWidget = ""
		if len(order) > 0 {
			m.focusedWidget = order[0]
		}
	}
	if _, ok := next[m.expandedWidget]; !ok {
		m.expandedWidget = ""
	}
}

// broadcast forwards a message to every widget instance in order.
func (m *AppModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.widgetOrder {
		if inst := m.instances[id]; inst != nil {
			if cmd := inst.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
