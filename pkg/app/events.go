// Package app provides the Bubbletea application shell for marketdeck. It
// defines the event types, root model, widget interface, and navigation
// logic that form the Elm-architecture skeleton around the dashboard store.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
)

// TickEvent is sent periodically to advance the quote feed and refresh the
// UI.
type TickEvent struct {
	Time time.Time
}

// SymbolSelectedEvent announces that a widget selected a symbol for its
// group. The model publishes it on the group bus and forwards it to every
// widget linked to the same group.
type SymbolSelectedEvent struct {
	Group  group.ID
	Symbol string
}

// StatusEvent sets the transient message shown in the status bar.
type StatusEvent struct {
	Message string
}

// WidgetFocusEvent requests that focus move to a specific widget.
type WidgetFocusEvent struct {
	WidgetID string
}
