// Package table is the interactive table browser: a bubbles table whose
// column widths come from the width engine.
package table

import (
	"fmt"
	"image/color"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/tablewidth/internal/measure"
	"github.com/oakwood-commons/tablewidth/internal/render"
)

type Column = bubtable.Column
type Row = bubtable.Row

const focusMarker = "▸"

// Model wraps the bubbles table and mirrors a render.Table into it.
type Model struct {
	table  bubtable.Model
	styles bubtable.Styles
	source *render.Table

	focus   int
	width   int
	height  int
	noColor bool

	headerFG   color.Color
	selectedBG color.Color
}

// NewModel creates a table view over source.
func NewModel(source *render.Table) *Model {
	t := bubtable.New(
		bubtable.WithFocused(true),
		bubtable.WithHeight(5),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Padding(0, measure.CellPadding)
	s.Selected = s.Selected.Padding(0)
	s.Cell = lipgloss.NewStyle().Padding(0, measure.CellPadding)
	t.SetStyles(s)

	m := &Model{
		table:      t,
		styles:     s,
		source:     source,
		height:     5,
		headerFG:   lipgloss.Color("12"),
		selectedBG: lipgloss.Color("236"),
	}
	m.applyColorScheme()
	m.Sync()
	return m
}

// Sync copies columns, widths and rows from the source table. RTL tables are
// mirrored.
func (m *Model) Sync() {
	st := m.source.State
	if n := len(st.Columns); n > 0 && m.focus >= n {
		m.focus = n - 1
	}
	order := render.VisualOrder(st)
	headers := m.source.Headers()

	cols := make([]Column, len(order))
	for k, i := range order {
		title := headers[i]
		if i == m.focus {
			title = focusMarker + title
		}
		cols[k] = Column{Title: title, Width: max(m.source.ColumnWidth(i)-2*measure.CellPadding, 0)}
	}

	rows := make([]Row, m.source.RowCount())
	for r := range rows {
		cells := m.source.Cells(r)
		row := make(Row, len(order))
		for k, i := range order {
			row[k] = cells[i]
		}
		rows[r] = row
	}

	if m.width == 0 {
		m.table.SetWidth(m.source.RenderedWidth())
	}

	cursor := m.table.Cursor()
	// Rows must be cleared first: the bubbles table renders old rows
	// against the new columns inside SetColumns.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor >= 0 {
		m.table.SetCursor(cursor)
	}
}

// Focus returns the focused column index.
func (m *Model) Focus() int { return m.focus }

// MoveFocus moves the focused column by delta positions on screen, staying
// in range. Negative moves left, also in RTL tables.
func (m *Model) MoveFocus(delta int) {
	order := render.VisualOrder(m.source.State)
	if len(order) == 0 {
		return
	}
	pos := 0
	for k, i := range order {
		if i == m.focus {
			pos = k
			break
		}
	}
	m.focus = order[min(max(pos+delta, 0), len(order)-1)]
	m.Sync()
}

// Cursor returns the selected row.
func (m *Model) Cursor() int {
	return m.table.Cursor()
}

// SetCursor selects row pos.
func (m *Model) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// SetWidth sets the width of the table viewport.
func (m *Model) SetWidth(width int) {
	m.width = max(width, 0)
	m.table.SetWidth(m.width)
}

// SetHeight sets the number of visible rows including the header.
func (m *Model) SetHeight(height int) {
	m.height = max(height, 2)
	m.table.SetHeight(m.height)
}

// SetNoColor enables/disables color output.
func (m *Model) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

func (m *Model) applyColorScheme() {
	s := m.styles
	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}
	m.table.SetStyles(s)
	m.styles = s
}

// Update forwards navigation to the bubbles table.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m *Model) View() string {
	return m.table.View()
}

// Width returns the rendered width of the table.
func (m *Model) Width() int {
	return lipgloss.Width(m.View())
}

func (m *Model) String() string {
	return fmt.Sprintf("Table[rows=%d, columns=%d, cursor=%d, focus=%d]",
		m.source.RowCount(), len(m.source.State.Columns), m.Cursor(), m.focus)
}
