// Package group implements the symbol-link channels that keep independently
// rendered widgets on the same ticker. Each channel holds the currently
// selected symbol; widgets tagged with the same group observe changes
// without referencing each other.
//
// Group symbols are intentionally session-scoped: the bus is never
// persisted, so links reset on restart. This is distinct from dashboard
// state, which survives reloads.
package group

import "sync"

// ID names a symbol-link channel. The set is closed; unknown values
// normalize to Global.
type ID string

const (
	// Global is the default channel for widgets without explicit grouping.
	Global ID = "global"
	A      ID = "A"
	B      ID = "B"
	C      ID = "C"
	D      ID = "D"
)

// colors maps each group to its display tint, used for widget border
// accents only.
var colors = map[ID]string{
	Global: "#9CA3AF",
	A:      "#F59E0B",
	B:      "#3B82F6",
	C:      "#10B981",
	D:      "#EC4899",
}

// All returns the group identifiers in display order.
func All() []ID {
	return []ID{Global, A, B, C, D}
}

// Normalize maps unknown group values to Global.
func Normalize(id ID) ID {
	if _, ok := colors[id]; ok {
		return id
	}
	return Global
}

// ColorFor returns the display hex color for a group. Unknown groups get
// the Global color.
func ColorFor(id ID) string {
	return colors[Normalize(id)]
}

// subscriber pairs a callback with a handle so individual subscriptions can
// be cancelled without disturbing the rest of the channel.
type subscriber struct {
	id int
	fn func(symbol string)
}

// Bus holds the current symbol per group and fans out updates to that
// group's subscribers. There is one Bus per application session; it has no
// teardown. Safe for concurrent use.
type Bus struct {
	mu      sync.RWMutex
	symbols map[ID]string
	subs    map[ID][]subscriber
	nextID  int
}

// NewBus returns an empty bus with no symbols selected.
func NewBus() *Bus {
	return &Bus{
		symbols: make(map[ID]string),
		subs:    make(map[ID][]subscriber),
	}
}

// Symbol returns the currently selected symbol for a group, or "" if none
// has been selected this session.
func (b *Bus) Symbol(id ID) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.symbols[Normalize(id)]
}

// SetSymbol updates the group's symbol and synchronously notifies every
// subscriber to that group. Subscribers of other groups are unaffected.
func (b *Bus) SetSymbol(id ID, symbol string) {
	id = Normalize(id)

	b.mu.Lock()
	b.symbols[id] = symbol
	// Copy the subscriber list so callbacks run outside the lock and may
	// themselves subscribe or publish.
	notify := make([]subscriber, len(b.subs[id]))
	copy(notify, b.subs[id])
	b.mu.Unlock()

	for _, s := range notify {
		s.fn(symbol)
	}
}

// Subscribe registers fn for symbol changes on a group. The returned cancel
// function removes the subscription; cancelling twice is harmless.
func (b *Bus) Subscribe(id ID, fn func(symbol string)) (cancel func()) {
	id = Normalize(id)

	b.mu.Lock()
	b.nextID++
	handle := b.nextID
	b.subs[id] = append(b.subs[id], subscriber{id: handle, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[id]
		for i, s := range list {
			if s.id == handle {
				b.subs[id] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Link is the widget-facing handle for one group: widgets publish a newly
// selected ticker with Set and read the group's symbol with Current.
type Link struct {
	bus   *Bus
	group ID
}

// NewLink binds a link to a group on the given bus.
func NewLink(bus *Bus, id ID) Link {
	return Link{bus: bus, group: Normalize(id)}
}

// Set publishes symbol to the link's group.
func (l Link) Set(symbol string) {
	if l.bus != nil {
		l.bus.SetSymbol(l.group, symbol)
	}
}

// Current returns the link's group symbol, or "" if unset.
func (l Link) Current() string {
	if l.bus == nil {
		return ""
	}
	return l.bus.Symbol(l.group)
}

// Group returns the group this link is bound to.
func (l Link) Group() ID {
	return l.group
}
