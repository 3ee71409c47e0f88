package render

import (
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/tablewidth/internal/measure"
	"github.com/oakwood-commons/tablewidth/pkg/widths"
)

const ellipsis = "…"

// Paint styles a piece of text.
type Paint func(strs ...string) string

// Styles paints the parts of a drawn table.
type Styles struct {
	Header    Paint
	Cell      Paint
	Fixed     Paint
	Checked   Paint
	Separator Paint
}

func plain(strs ...string) string { return strings.Join(strs, " ") }

// DefaultStyles returns the colored styles, or unstyled ones when noColor is
// set.
func DefaultStyles(noColor bool) Styles {
	if noColor {
		return Styles{Header: plain, Cell: plain, Fixed: plain, Checked: plain, Separator: plain}
	}
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render,
		Cell:      plain,
		Fixed:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render,
		Checked:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Render,
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render,
	}
}

// VisualOrder returns column indices from left to right. RTL tables are
// mirrored using the offsets stored by the last layout.
func VisualOrder(state widths.TableState) []int {
	order := make([]int, len(state.Columns))
	for i := range order {
		order[i] = i
	}
	if state.IsRTL() {
		sort.SliceStable(order, func(a, b int) bool {
			return state.Columns[order[a]].Offset > state.Columns[order[b]].Offset
		})
	}
	return order
}

// Draw writes the table: a header line, a rule, then the rows.
func Draw(w io.Writer, t *Table, styles Styles) error {
	_, err := io.WriteString(w, String(t, styles))
	return err
}

// String renders the table.
func String(t *Table, styles Styles) string {
	order := VisualOrder(t.State)
	rtl := t.State.IsRTL()
	colWidths := make([]int, len(t.State.Columns))
	for i := range colWidths {
		colWidths[i] = t.ColumnWidth(i)
	}
	sep := styles.Separator("│")

	var b strings.Builder
	headers := t.Headers()
	cells := make([]string, len(order))
	for k, i := range order {
		cells[k] = styles.Header(padCell(fitLines(headers[i], colWidths[i], false, 1)[0], colWidths[i], rtl))
	}
	b.WriteString(strings.Join(cells, sep))
	b.WriteByte('\n')

	rules := make([]string, len(order))
	for k, i := range order {
		rules[k] = strings.Repeat("─", colWidths[i])
	}
	b.WriteString(styles.Separator(strings.Join(rules, "┼")))
	b.WriteByte('\n')

	maxLines := max(t.Widths.WrapTextMaxLines, 1)
	for r := range t.Doc.Rows {
		row := t.Cells(r)
		lines := make([][]string, len(order))
		height := 1
		for k, i := range order {
			c := t.State.Columns[i]
			lines[k] = fitLines(row[i], colWidths[i], c.WrapText, maxLines)
			height = max(height, len(lines[k]))
		}
		for l := 0; l < height; l++ {
			for k, i := range order {
				text := ""
				if l < len(lines[k]) {
					text = lines[k][l]
				}
				cells[k] = cellStyle(t, styles, i, r)(padCell(text, colWidths[i], rtl))
			}
			b.WriteString(strings.Join(cells, sep))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cellStyle(t *Table, styles Styles, col, row int) Paint {
	c := t.State.Columns[col]
	switch {
	case c.Kind == widths.KindCheckbox && t.Checked(row):
		return styles.Checked
	case c.FixedWidth > 0:
		return styles.Fixed
	}
	return styles.Cell
}

// padCell pads text to the column width, aligned to the reading direction.
func padCell(text string, width int, rtl bool) string {
	inner := width - 2*measure.CellPadding
	if inner <= 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	pad := strings.Repeat(" ", measure.CellPadding)
	if rtl {
		return pad + runewidth.FillLeft(text, inner) + pad
	}
	return pad + runewidth.FillRight(text, inner) + pad
}

// fitLines cuts text to the inner width of a column. Wrapping columns break
// on spaces and keep at most maxLines lines; the last kept line ends with an
// ellipsis when text was dropped.
func fitLines(text string, width int, wrap bool, maxLines int) []string {
	inner := width - 2*measure.CellPadding
	if inner <= 0 {
		return []string{""}
	}
	if !wrap || maxLines <= 1 {
		return []string{runewidth.Truncate(text, inner, ellipsis)}
	}

	var lines []string
	line := ""
	flush := func() {
		lines = append(lines, line)
		line = ""
	}
	for _, word := range strings.Fields(text) {
		for runewidth.StringWidth(word) > inner {
			if line != "" {
				flush()
			}
			head := runewidth.Truncate(word, inner, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}
		switch {
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= inner:
			line += " " + word
		default:
			flush()
			line = word
		}
	}
	if line != "" || len(lines) == 0 {
		flush()
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		room := inner - runewidth.StringWidth(ellipsis)
		if runewidth.StringWidth(last) > room {
			last = runewidth.Truncate(last, room, "")
		}
		lines[maxLines-1] = last + ellipsis
	}
	return lines
}
