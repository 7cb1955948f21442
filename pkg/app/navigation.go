package app

// CycleFocusForward moves focus to the next widget on the active tab,
// wrapping around to the first widget after the last.
func (m *AppModel) CycleFocusForward() {
	if len(m.widgetOrder) == 0 {
		return
	}
	idx := m.focusedIndex()
	idx = (idx + 1) % len(m.widgetOrder)
	m.focusedWidget = m.widgetOrder[idx]
}

// CycleFocusBackward moves focus to the previous widget on the active tab,
// wrapping around to the last widget before the first.
func (m *AppModel) CycleFocusBackward() {
	if len(m.widgetOrder) == 0 {
		return
	}
	idx := m.focusedIndex()
	idx = (idx - 1 + len(m.widgetOrder)) % len(m.widgetOrder)
	m.focusedWidget = m.widgetOrder[idx]
}

// FocusWidget directly sets focus to the widget with the given ID. Unknown
// ids leave focus unchanged.
func (m *AppModel) FocusWidget(id string) {
	for _, wid := range m.widgetOrder {
		if wid == id {
			m.focusedWidget = id
			return
		}
	}
}

// ToggleExpand toggles the focused widget between grid and fullscreen mode.
// If a different widget is already expanded, expansion moves to the focused
// widget.
func (m *AppModel) ToggleExpand() {
	if m.focusedWidget == "" {
		return
	}
	if m.expandedWidget == m.focusedWidget {
		m.expandedWidget = ""
	} else {
		m.expandedWidget = m.focusedWidget
	}
}

// focusedIndex returns the index of the focused widget in the order list,
// or 0 if not found.
func (m *AppModel) focusedIndex() int {
	for i, id := range m.widgetOrder {
		if id == m.focusedWidget {
			return i
		}
	}
	return 0
}
