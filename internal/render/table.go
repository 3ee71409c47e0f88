// Package render lays out and draws layout documents in a terminal using
// the width engine.
package render

import (
	"strconv"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tablewidth/internal/config"
	"github.com/oakwood-commons/tablewidth/internal/layout"
	"github.com/oakwood-commons/tablewidth/internal/measure"
	"github.com/oakwood-commons/tablewidth/pkg/widths"
)

const (
	RowNumberKey = "#"
	CheckboxKey  = "[ ]"

	// CheckboxWidth fits "[x]" plus padding.
	CheckboxWidth = 3 + 2*measure.CellPadding
)

// TerminalRowNumbers sizes the row number column in cells.
var TerminalRowNumbers = widths.RowNumberSizing{PerDigit: 1, Padding: 2 * measure.CellPadding, Min: 3}

// Options controls how a Table is built.
type Options struct {
	Config config.Config
	// Offset is the zero-based index of the first row within the full data
	// set. It is added to the configured row number offset.
	Offset int
	// Observed means the host reports size changes, so the table may be
	// measured before it has been drawn.
	Observed bool
	Logger   logr.Logger
}

// Table is a document together with its width state. It is not safe for
// concurrent use.
type Table struct {
	Doc layout.Document

	State    widths.TableState
	Widths   widths.WidthsData
	Expected int

	Manager *widths.Manager
	Grid    *measure.Grid

	rowNumbers bool
	checkbox   bool
	// base is the configured row number offset, page the index of the
	// first row within the full data set.
	base    int
	page    int
	checked map[int]bool
	log     logr.Logger
}

// LayoutResult reports one adjust call.
type LayoutResult struct {
	widths.Result
	// ResizeEvent is set when a fixed-mode table changed its column count.
	ResizeEvent bool
}

// New builds a Table and queues its first layout.
func New(doc layout.Document, opts Options) *Table {
	lgr := opts.Logger
	if lgr.GetSink() == nil {
		lgr = logr.Discard()
	}
	cfg := opts.Config
	data := cfg.WidthsData()
	m := widths.NewManager(data,
		widths.WithLogger(lgr.WithName("widths")),
		widths.WithResizeObserver(opts.Observed),
		widths.WithTruncationAllowance(cfg.TruncationAllowance),
		widths.WithRowNumberSizing(TerminalRowNumbers),
	)
	t := &Table{
		Doc:        doc,
		State:      widths.TableState{Direction: cfg.LayoutDirection()},
		Widths:     data,
		Manager:    m,
		Grid:       &measure.Grid{Width: cfg.Width},
		rowNumbers: cfg.RowNumbers,
		checkbox:   cfg.Checkbox,
		base:       cfg.RowNumberOffset,
		page:       opts.Offset,
		checked:    map[int]bool{},
		log:        lgr,
	}
	t.State.Columns = t.buildColumns()
	t.syncGrid()
	m.HandleColumnsChange(t.State.Columns)
	m.HandleDataChange(0, len(doc.Rows), t.State.Columns)
	return t
}

// buildColumns lays out checkbox, row number and data columns in that
// order. Data columns keep what a previous layout or resize stored on them.
func (t *Table) buildColumns() []widths.Column {
	prev := make(map[string]widths.Column, len(t.State.Columns))
	for _, c := range t.State.Columns {
		if c.Kind == widths.KindData {
			prev[c.Key] = c
		}
	}

	cols := make([]widths.Column, 0, len(t.Doc.Columns)+2)
	if t.checkbox {
		cols = append(cols, widths.Column{Key: CheckboxKey, Label: CheckboxKey, Kind: widths.KindCheckbox, FixedWidth: CheckboxWidth})
	}
	if t.rowNumbers {
		w := t.Manager.RowNumberColumnWidth(len(t.Doc.Rows), t.Offset())
		cols = append(cols, widths.Column{Key: RowNumberKey, Label: RowNumberKey, Kind: widths.KindRowNumber, FixedWidth: w, InitialWidth: w})
	}
	for _, c := range t.Doc.EngineColumns() {
		if p, ok := prev[c.Key]; ok {
			c.IsResized = p.IsResized
			c.ColumnWidth = p.ColumnWidth
		}
		cols = append(cols, c)
	}
	return widths.NormalizeColumnBounds(cols, t.Widths.Bounds())
}

func (t *Table) syncGrid() {
	t.Grid.Headers = t.Headers()
	t.Grid.FirstRow = nil
	if len(t.Doc.Rows) > 0 {
		t.Grid.FirstRow = t.Cells(0)
	}
}

// Headers returns the header text of every column.
func (t *Table) Headers() []string {
	out := make([]string, len(t.State.Columns))
	for i, c := range t.State.Columns {
		out[i] = c.Label
		if out[i] == "" {
			out[i] = c.Key
		}
	}
	return out
}

// Cells returns the text of row i aligned with State.Columns.
func (t *Table) Cells(i int) []string {
	row := t.Doc.Rows[i]
	out := make([]string, 0, len(t.State.Columns))
	data := 0
	for _, c := range t.State.Columns {
		switch c.Kind {
		case widths.KindCheckbox:
			if t.checked[i] {
				out = append(out, "[x]")
			} else {
				out = append(out, "[ ]")
			}
		case widths.KindRowNumber:
			out = append(out, strconv.Itoa(t.Offset()+i+1))
		default:
			cell := ""
			if data < len(row) {
				cell = row[data]
			}
			out = append(out, cell)
			data++
		}
	}
	return out
}

// RowCount is the number of rows in the table.
func (t *Table) RowCount() int { return len(t.Doc.Rows) }

// Offset is the row number shown before the first row.
func (t *Table) Offset() int { return t.base + t.page }

// Page is the index of the first row within the full data set.
func (t *Table) Page() int { return t.page }

// RowNumbers reports whether the row number column is shown.
func (t *Table) RowNumbers() bool { return t.rowNumbers }

// Checkbox reports whether the checkbox column is shown.
func (t *Table) Checkbox() bool { return t.checkbox }

// Checked reports whether row i is checked.
func (t *Table) Checked(i int) bool { return t.checked[i] }

// ToggleChecked flips the checked state of row i.
func (t *Table) ToggleChecked(i int) {
	if i < 0 || i >= len(t.Doc.Rows) {
		return
	}
	t.checked[i] = !t.checked[i]
}

// ColumnWidth is the width column i is drawn with. Before the first layout,
// or while a column set change is pending, it falls back to the column
// definition and then the minimum width.
func (t *Table) ColumnWidth(i int) int {
	if len(t.Widths.ColumnWidths) == len(t.State.Columns) {
		return t.Widths.ColumnWidths[i]
	}
	c := t.State.Columns[i]
	if w := widths.ColumnWidthFromDef(c); w > 0 {
		return w
	}
	if c.ColumnWidth > 0 {
		return c.ColumnWidth
	}
	return t.Widths.MinColumnWidth
}

// RenderedWidth is the width the table occupies once drawn.
func (t *Table) RenderedWidth() int {
	return t.Widths.TableWidth + measure.Chrome(len(t.State.Columns))
}

// Layout runs a queued adjust. Nothing changes when no update is queued.
func (t *Table) Layout() LayoutResult {
	fire := t.Manager.ShouldFireResizeEvent(t.Widths, t.State.Columns)
	res := t.Manager.AdjustColumnsSize(t.Grid, t.State, t.Widths)
	return t.apply(res, fire)
}

// Resize re-lays out the table for a new screen width.
func (t *Table) Resize(screenWidth int) LayoutResult {
	t.Grid.Width = screenWidth
	fire := t.Manager.ShouldFireResizeEvent(t.Widths, t.State.Columns)
	res := t.Manager.AdjustColumnsSizeAfterResize(t.Grid, t.State, t.Widths)
	return t.apply(res, fire)
}

func (t *Table) apply(res widths.Result, fire bool) LayoutResult {
	if !res.Applied {
		return LayoutResult{Result: res}
	}
	t.State = res.State
	t.Widths = res.Widths
	t.Expected = res.ExpectedTableWidth
	t.Grid.Rendered = t.RenderedWidth()
	t.log.V(1).Info("layout applied",
		"mode", t.Manager.ColumnWidthMode(),
		"widths", t.Widths.ColumnWidths,
		"expected", t.Expected,
		"resizeEvent", fire)
	return LayoutResult{Result: res, ResizeEvent: fire && res.Applied}
}

// ResizeColumn moves column i's width by steps resize steps.
func (t *Table) ResizeColumn(i, steps int) widths.ResizeResult {
	res := widths.ResizeColumnByStep(t.State, t.Widths, i, steps)
	if res.Changed {
		t.State = res.State
		t.Widths = res.Widths
		t.Grid.Rendered = t.RenderedWidth()
	}
	return res
}

// ToggleMode switches between fixed and auto and queues a layout.
func (t *Table) ToggleMode() widths.Mode {
	next := widths.ModeAuto
	if t.Manager.ColumnWidthMode() == widths.ModeAuto {
		next = widths.ModeFixed
	}
	t.Manager.SetColumnWidthMode(next)
	t.Widths.ColumnWidthsMode = next
	t.Manager.HandleWidthModeChange(t.State.Columns)
	return next
}

// SetRowNumbers shows or hides the row number column.
func (t *Table) SetRowNumbers(on bool) {
	prev := t.rowNumbers
	t.rowNumbers = on
	t.rebuild()
	t.Manager.HandleRowNumberColumnChange(prev, on, t.State.Columns)
}

// SetCheckbox shows or hides the checkbox column.
func (t *Table) SetCheckbox(on bool) {
	prev := t.checkbox
	t.checkbox = on
	t.rebuild()
	t.Manager.HandleCheckboxColumnChange(prev, on, t.State.Columns)
}

// SetBounds changes the global minimum and maximum column width and queues
// a layout. Column bounds that followed the old globals follow the new ones.
// It reports whether anything changed.
func (t *Table) SetBounds(minWidth, maxWidth int) bool {
	minWidth = max(minWidth, 1)
	maxWidth = max(maxWidth, minWidth)
	prev := t.Widths.Bounds()
	if prev.Min == minWidth && prev.Max == maxWidth {
		return false
	}
	next := prev
	next.Min, next.Max = minWidth, maxWidth

	t.Manager.SetMinColumnWidth(minWidth)
	t.Manager.SetMaxColumnWidth(maxWidth)
	t.Widths.MinColumnWidth = minWidth
	t.Widths.MaxColumnWidth = maxWidth
	t.State.Columns = widths.RefreshColumnBounds(t.State.Columns, prev, next)
	t.Manager.HandleColumnsChange(t.State.Columns)
	return true
}

// SetWrapLines changes how many lines a wrapping column may take and queues
// a layout.
func (t *Table) SetWrapLines(n int) {
	n = max(n, 1)
	t.Manager.SetWrapTextMaxLines(n)
	t.Widths.WrapTextMaxLines = n
	t.Manager.HandleColumnsChange(t.State.Columns)
}

// SetRows replaces the visible rows, e.g. when paging. offset is the index
// of the first row within the full data set.
func (t *Table) SetRows(rows [][]string, offset int) {
	prevLen := len(t.Doc.Rows)
	t.Doc = t.Doc.WithRows(rows)
	t.checked = map[int]bool{}
	t.page = offset
	t.syncGrid()
	t.Manager.HandleDataChange(prevLen, len(rows), t.State.Columns)
	if state, changed := t.Manager.HandleRowNumberOffsetChange(t.State, len(rows), t.Offset()); changed {
		t.State = state
	}
}

func (t *Table) rebuild() {
	t.State.Columns = t.buildColumns()
	t.syncGrid()
}
