package widths

// ResizeResult carries the state after a manual resize.
type ResizeResult struct {
	State   TableState
	Widths  WidthsData
	Changed bool
	// Delta is the applied change in width; zero when nothing changed.
	Delta int
}

// ResizeColumn sets the width of column colIndex to width, clamped to the
// column's own bounds. The column is marked resized so later allocation
// passes treat its width as an input. In RTL every later column's offset
// moves by the same delta. Fixed-width columns and out-of-range indices are
// left alone.
func ResizeColumn(state TableState, data WidthsData, colIndex, width int) ResizeResult {
	unchanged := ResizeResult{State: state, Widths: data}
	if colIndex < 0 || colIndex >= len(state.Columns) {
		return unchanged
	}
	col := state.Columns[colIndex]
	if col.FixedWidth > 0 {
		return unchanged
	}

	lo, hi := resolvedBounds(col, data)
	next := clamp(width, lo, hi)
	current := currentWidth(state, data, colIndex)
	if next == current {
		return unchanged
	}
	delta := next - current

	state = state.Clone()
	data = data.Clone()

	data.TableWidth += delta
	if colIndex < len(data.ColumnWidths) {
		data.ColumnWidths[colIndex] = next
	}

	col.ColumnWidth = next
	col.Style = StyleFor(next)
	col.IsResized = true
	state.Columns[colIndex] = col

	if state.IsRTL() {
		for j := colIndex + 1; j < len(state.Columns); j++ {
			state.Columns[j].Offset += delta
		}
	}
	return ResizeResult{State: state, Widths: data, Changed: true, Delta: delta}
}

// ResizeColumnWithDelta resizes column colIndex by delta.
func ResizeColumnWithDelta(state TableState, data WidthsData, colIndex, delta int) ResizeResult {
	if colIndex < 0 || colIndex >= len(state.Columns) {
		return ResizeResult{State: state, Widths: data}
	}
	return ResizeColumn(state, data, colIndex, currentWidth(state, data, colIndex)+delta)
}

// ResizeColumnByStep is the keyboard variant: it moves by steps multiples
// of the table's resize step and does nothing when resizing is disabled.
func ResizeColumnByStep(state TableState, data WidthsData, colIndex, steps int) ResizeResult {
	if IsResizeColumnDisabled(data) {
		return ResizeResult{State: state, Widths: data}
	}
	step := data.ResizeStep
	if step <= 0 {
		step = DefaultResizeStep
	}
	return ResizeColumnWithDelta(state, data, colIndex, steps*step)
}

// IsResizeColumnDisabled reports whether user resizing is turned off.
func IsResizeColumnDisabled(data WidthsData) bool {
	return data.ResizeColumnDisabled
}

// ColumnOffsets returns the running start position of each column.
func ColumnOffsets(widths []int) []int {
	out := make([]int, len(widths))
	offset := 0
	for i, w := range widths {
		out[i] = offset
		offset += w
	}
	return out
}

// RefreshColumnBounds updates per-column bounds after the global bounds
// change from prev to next. Bounds that were unset or still equal to the
// previous global value follow the new global value; anything else was set
// on the column and is kept.
func RefreshColumnBounds(cols []Column, prev, next Bounds) []Column {
	out := append([]Column(nil), cols...)
	for i := range out {
		if out[i].MinWidth <= 0 || out[i].MinWidth == prev.Min {
			out[i].MinWidth = next.Min
		}
		if out[i].MaxWidth <= 0 || out[i].MaxWidth == prev.Max {
			out[i].MaxWidth = next.Max
		}
	}
	return out
}

// NormalizeColumnBounds fills unset per-column bounds from b.
func NormalizeColumnBounds(cols []Column, b Bounds) []Column {
	return RefreshColumnBounds(cols, Bounds{}, b)
}

func resolvedBounds(c Column, data WidthsData) (int, int) {
	return columnBounds(c, WidthsMetadata{MinColumnWidth: data.MinColumnWidth, MaxColumnWidth: data.MaxColumnWidth})
}

func currentWidth(state TableState, data WidthsData, colIndex int) int {
	if colIndex < len(data.ColumnWidths) {
		return data.ColumnWidths[colIndex]
	}
	return state.Columns[colIndex].ColumnWidth
}
