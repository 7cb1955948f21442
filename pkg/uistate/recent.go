package uistate

import (
	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
	"gitlab.com/tinyland/lab/marketdeck/pkg/registry"
)

// keyRecentTypes stores the add-widget picker's recently used list.
const keyRecentTypes = "recent_widget_types"

// maxRecentTypes bounds the recently used list.
const maxRecentTypes = 5

// RecentTypes returns the most recently inserted widget types, newest
// first. Tags that are no longer part of the closed type set are filtered
// out on read.
func RecentTypes(store *persist.Store) []registry.Type {
	raw := persist.Get(store, keyRecentTypes, []string(nil))
	var out []registry.Type
	for _, s := range raw {
		t := registry.Type(s)
		if registry.Known(t) {
			out = append(out, t)
		}
	}
	return out
}

// TouchRecentType moves t to the front of the recently used list,
// de-duplicating and trimming to the bound. Unknown tags are ignored.
func TouchRecentType(store *persist.Store, t registry.Type) {
	if !registry.Known(t) {
		return
	}

	existing := RecentTypes(store)
	out := []string{string(t)}
	for _, e := range existing {
		if e == t {
			continue
		}
		out = append(out, string(e))
		if len(out) == maxRecentTypes {
			break
		}
	}
	persist.Set(store, keyRecentTypes, out)
}
