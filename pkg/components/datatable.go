package components

import (
	"strings"
)

// Column defines one column of a DataTable.
type Column struct {
	Title string
	Width int // visible cell width, excluding the separator
	Align Align
}

// TableStyle controls table chrome colors.
type TableStyle struct {
	HeaderColor   string // hex color for the header row
	SelectedColor string // hex color for the selected row marker
}

// DataTable renders fixed-width rows with an optional header and a selected
// row highlight. Cell values may carry their own ANSI coloring; alignment is
// computed on visible width.
type DataTable struct {
	Columns  []Column
	Style    TableStyle
	Selected int // index into Rows, -1 for no selection
}

// NewDataTable creates a table with no selection.
func NewDataTable(cols []Column, style TableStyle) *DataTable {
	return &DataTable{Columns: cols, Style: style, Selected: -1}
}

// Render produces the table as a multi-line string. Rows shorter than the
// column set render empty trailing cells; extra cells are dropped. maxRows
// bounds the body row count, with negative meaning unbounded.
func (t *DataTable) Render(rows [][]string, maxRows int) string {
	var b strings.Builder

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Title
	}
	h := t.renderRow(header)
	if t.Style.HeaderColor != "" {
		h = Colorize(h, t.Style.HeaderColor)
	}
	b.WriteString("  " + Bold(h))

	for i, row := range rows {
		if maxRows >= 0 && i >= maxRows {
			break
		}
		b.WriteByte('\n')
		line := t.renderRow(row)
		if i == t.Selected {
			marker := "▸ "
			if t.Style.SelectedColor != "" {
				marker = Colorize(marker, t.Style.SelectedColor)
			}
			b.WriteString(marker + line)
			continue
		}
		b.WriteString("  " + line)
	}

	return b.String()
}

// renderRow joins cells padded to their column widths.
func (t *DataTable) renderRow(cells []string) string {
	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = Truncate(cell, col.Width)
		switch col.Align {
		case AlignRight:
			cell = PadLeft(cell, col.Width)
		case AlignCenter:
			cell = PadCenter(cell, col.Width)
		default:
			cell = PadRight(cell, col.Width)
		}
		parts[i] = cell
	}
	return strings.Join(parts, " ")
}
