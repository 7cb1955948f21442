package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/marketdeck/pkg/components"
	"gitlab.com/tinyland/lab/marketdeck/pkg/deck"
	"gitlab.com/tinyland/lab/marketdeck/pkg/grid"
	"gitlab.com/tinyland/lab/marketdeck/pkg/group"
	"gitlab.com/tinyland/lab/marketdeck/pkg/theme"
)

// renderTabBar renders the one-line dashboard and tab strip. Each tab label
// is marked as a mouse zone so clicks can activate it.
func (m *AppModel) renderTabBar(width int) string {
	d, ok := m.store.ActiveDashboard()
	if !ok {
		return components.Fit("", width)
	}
	activeTab, _ := m.store.ActiveTab()

	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Current.Accent))
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Current.Dim))
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Current.Foreground)).
		Underline(true)

	parts := []string{nameStyle.Render(d.Name)}
	for i, tab := range d.Tabs {
		label := fmt.Sprintf(" %d:%s ", i+1, tab.Name)
		if tab.ID == activeTab.ID {
			label = activeStyle.Render(label)
		} else {
			label = tabStyle.Render(label)
		}
		parts = append(parts, m.zones.Mark("tab:"+tab.ID, label))
	}

	return components.Fit(strings.Join(parts, " "), width)
}

// renderStatusBar renders the bottom hint line, padded to exactly width.
func (m *AppModel) renderStatusBar(width int) string {
	hints := "tab:focus  enter:expand  a:add  s:symbol  g:group  x:close  ?:help  q:quit"
	if m.mode != modeNormal {
		hints = m.prompt + m.input.View()
		return components.Fit(hints, width)
	}
	if m.statusMsg != "" {
		hints = m.statusMsg + "  |  " + hints
	}
	return components.Dim(components.Fit(hints, width))
}

// renderGrid composites every widget on the active tab into one string of
// the given dimensions. Grid units are scaled to terminal cells, with the
// last column and row absorbing the integer remainder.
func (m *AppModel) renderGrid(tab deck.Tab, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	rows := 1
	for _, w := range tab.Widgets {
		if b := w.Layout.Y + w.Layout.H; b > rows {
			rows = b
		}
	}
	cellW := width / grid.Columns
	cellH := height / rows
	if cellW < 1 || cellH < 1 {
		return components.Fit("terminal too small", width)
	}

	buf := newScreen(width, height)
	for _, w := range tab.Widgets {
		x := w.Layout.X * cellW
		y := w.Layout.Y * cellH
		cw := w.Layout.W * cellW
		ch := w.Layout.H * cellH
		if w.Layout.X+w.Layout.W == grid.Columns {
			cw = width - x
		}
		if w.Layout.Y+w.Layout.H == rows {
			ch = height - y
		}
		buf.blit(m.renderWidget(w, cw, ch), x, y)
	}
	return buf.String()
}

// renderWidget draws one widget frame with its content at the given outer
// dimensions.
func (m *AppModel) renderWidget(w deck.Widget, width, height int) string {
	inst := m.instances[w.ID]
	if inst == nil {
		return ""
	}

	badge := ""
	if w.Group != group.Global {
		badge = "●" + string(w.Group)
	}
	content := inst.View(width-2, height-2)

	return components.RenderFrame(content, width, height, components.FrameStyle{
		Title:       inst.Title(),
		Badge:       badge,
		BadgeColor:  group.ColorFor(w.Group),
		Focused:     w.ID == m.focusedWidget && m.mode == modeNormal,
		BorderColor: theme.Current.Border,
		FocusColor:  theme.Current.BorderFocus,
		TitleColor:  theme.Current.Title,
	})
}

// renderHelp renders the keybinding overlay centered in the body area.
func (m *AppModel) renderHelp(width, height int) string {
	lines := []string{
		"tab / shift+tab   cycle widget focus",
		"enter / esc       expand, collapse widget",
		"1-9, [ ]          switch tab",
		"a                 add widget to this tab",
		"t                 add tab",
		"s                 set symbol for focused group",
		"g                 cycle focused widget's group",
		"x                 close focused widget",
		"?                 toggle this help",
		"q / ctrl+c        quit",
	}
	content := strings.Join(lines, "\n")
	frame := components.RenderFrame(content, 46, len(lines)+2, components.FrameStyle{
		Title:       "Keys",
		BorderColor: theme.Current.Accent,
		TitleColor:  theme.Current.Title,
	})
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, frame)
}

// screen is a compositing buffer of styled cells. Each cell carries its own
// escape sequences so widgets can overlap without bleeding color.
type screen struct {
	w, h  int
	cells [][]string
}

func newScreen(w, h int) *screen {
	cells := make([][]string, h)
	for y := range cells {
		row := make([]string, w)
		for x := range row {
			row[x] = " "
		}
		cells[y] = row
	}
	return &screen{w: w, h: h, cells: cells}
}

// blit writes a rendered multi-line string into the buffer at (x, y),
// clipping to the buffer bounds. ANSI escapes travel with the cell they
// style instead of occupying columns.
func (s *screen) blit(rendered string, x, y int) {
	if rendered == "" {
		return
	}
	for dy, line := range strings.Split(rendered, "\n") {
		ry := y + dy
		if ry < 0 || ry >= s.h {
			continue
		}
		col := x
		style := ""
		runes := []rune(line)
		for i := 0; i < len(runes); i++ {
			if runes[i] == '\x1b' {
				// Capture the whole CSI sequence.
				j := i + 1
				for j < len(runes) && !isFinalByte(runes[j]) {
					j++
				}
				seq := string(runes[i : j+1])
				if seq == "\x1b[0m" {
					style = ""
				} else {
					style += seq
				}
				i = j
				continue
			}
			if col >= 0 && col < s.w {
				cell := string(runes[i])
				if style != "" {
					cell = style + cell + "\x1b[0m"
				}
				s.cells[ry][col] = cell
			}
			col++
		}
	}
}

// isFinalByte reports whether r terminates a CSI escape sequence.
func isFinalByte(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// String flattens the buffer into newline-joined rows.
func (s *screen) String() string {
	lines := make([]string, s.h)
	for y, row := range s.cells {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
