package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
)

// PlaceholderWidget renders a stub for widget types that have no renderer
// yet. Dashboards carrying such widgets stay loadable and editable; only
// the body is inert.
type PlaceholderWidget struct {
	id    string
	title string
	tag   string
}

// NewPlaceholder creates a placeholder for the given widget id and type tag.
func NewPlaceholder(id, title, tag string) *PlaceholderWidget {
	return &PlaceholderWidget{id: id, title: title, tag: tag}
}

// ID returns the widget's unique identifier.
func (w *PlaceholderWidget) ID() string {
	return w.id
}

// Title returns the widget's display title.
func (w *PlaceholderWidget) Title() string {
	return w.title
}

// Update is a no-op for the placeholder widget.
func (w *PlaceholderWidget) Update(_ tea.Msg) tea.Cmd {
	return nil
}

// HandleKey is a no-op for the placeholder widget.
func (w *PlaceholderWidget) HandleKey(_ tea.KeyMsg) tea.Cmd {
	return nil
}

// View centers the type tag and dimensions in the available area.
func (w *PlaceholderWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	tagStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Current.Dim))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Current.Dim))

	var lines []string
	topPad := (height - 2) / 2
	for i := 0; i < topPad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, tagStyle.Render(fmt.Sprintf("no renderer for %q", w.tag)))
	if height > 1 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%dx%d", width, height)))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}
