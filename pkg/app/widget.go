package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
)

// Widget is the interface every rendered dashboard widget implements.
// View receives the interior dimensions of the widget frame; the frame
// itself is drawn by the model.
type Widget interface {
	ID() string
	Title() string
	Update(msg tea.Msg) tea.Cmd
	HandleKey(msg tea.KeyMsg) tea.Cmd
	View(width, height int) string
}

// SymbolSubscriber is implemented by widgets that follow their symbol
// group. The model calls SetSymbol when the widget's group changes symbol.
type SymbolSubscriber interface {
	SetSymbol(symbol string)
}

// Factory builds a rendering instance for one stored widget. Returning nil
// makes the model fall back to a placeholder.
type Factory func(w deck.Widget) Widget
