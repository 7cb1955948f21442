package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
)

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration. This drives the feed and the periodic UI refresh cycle.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// SelectSymbolCmd returns a Cmd that announces a symbol selection for a
// group. Widgets return it from their key handlers.
func SelectSymbolCmd(g group.ID, symbol string) tea.Cmd {
	return func() tea.Msg {
		return SymbolSelectedEvent{Group: g, Symbol: symbol}
	}
}

// StatusCmd returns a Cmd that sets the status bar message.
func StatusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusEvent{Message: msg}
	}
}
