package widths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoColumnState() (TableState, WidthsData) {
	state := TableState{Columns: []Column{
		{Key: "a", MinWidth: 50, MaxWidth: 300, ColumnWidth: 100},
		{Key: "b", MinWidth: 50, MaxWidth: 300, ColumnWidth: 100},
	}}
	data := DefaultWidthsData()
	data.ColumnWidths = []int{100, 100}
	data.TableWidth = 200
	return state, data
}

func TestResizeColumn_ClampsAndUpdatesTotal(t *testing.T) {
	state, data := twoColumnState()

	res := ResizeColumn(state, data, 0, 30)

	require.True(t, res.Changed)
	assert.Equal(t, -50, res.Delta)
	assert.Equal(t, 50, res.Widths.ColumnWidths[0])
	assert.Equal(t, 150, res.Widths.TableWidth)
	assert.True(t, res.State.Columns[0].IsResized)
	assert.Equal(t, 50, res.State.Columns[0].ColumnWidth)
	assert.Equal(t, "width:50px", res.State.Columns[0].Style)
	assert.False(t, res.State.Columns[1].IsResized)

	// originals untouched
	assert.Equal(t, []int{100, 100}, data.ColumnWidths)
	assert.False(t, state.Columns[0].IsResized)
}

func TestResizeColumn_ClampsToMax(t *testing.T) {
	state, data := twoColumnState()

	res := ResizeColumn(state, data, 1, 900)

	require.True(t, res.Changed)
	assert.Equal(t, 300, res.Widths.ColumnWidths[1])
	assert.Equal(t, 400, res.Widths.TableWidth)
}

func TestResizeColumn_NoChange(t *testing.T) {
	state, data := twoColumnState()

	res := ResizeColumn(state, data, 0, 100)
	assert.False(t, res.Changed)
	assert.False(t, res.State.Columns[0].IsResized)

	res = ResizeColumn(state, data, 5, 120)
	assert.False(t, res.Changed)

	state.Columns[0].FixedWidth = 100
	res = ResizeColumn(state, data, 0, 120)
	assert.False(t, res.Changed, "fixed columns are not resizable")
}

func TestResizeColumn_FallsBackToGlobalBounds(t *testing.T) {
	state := TableState{Columns: []Column{{ColumnWidth: 100}}}
	data := DefaultWidthsData()
	data.ColumnWidths = []int{100}
	data.TableWidth = 100

	res := ResizeColumn(state, data, 0, 5)

	assert.Equal(t, DefaultMinColumnWidth, res.Widths.ColumnWidths[0])
}

func TestResizeColumn_RTLShiftsLaterOffsets(t *testing.T) {
	state := TableState{
		Direction: RTL,
		Columns: []Column{
			{Offset: 0, ColumnWidth: 100},
			{Offset: 100, ColumnWidth: 100},
			{Offset: 200, ColumnWidth: 100},
			{Offset: 300, ColumnWidth: 100},
		},
	}
	data := DefaultWidthsData()
	data.ColumnWidths = []int{100, 100, 100, 100}
	data.TableWidth = 400

	res := ResizeColumnWithDelta(state, data, 1, 25)

	require.True(t, res.Changed)
	got := make([]int, 0, 4)
	for _, c := range res.State.Columns {
		got = append(got, c.Offset)
	}
	assert.Equal(t, []int{0, 100, 225, 325}, got)
	assert.Equal(t, 425, res.Widths.TableWidth)
}

func TestResizeColumn_LTRLeavesOffsets(t *testing.T) {
	state, data := twoColumnState()
	state.Columns[1].Offset = 7

	res := ResizeColumnWithDelta(state, data, 0, 20)

	require.True(t, res.Changed)
	assert.Equal(t, 7, res.State.Columns[1].Offset)
	assert.Equal(t, 120, res.Widths.ColumnWidths[0])
}

func TestResizeColumnByStep(t *testing.T) {
	state, data := twoColumnState()
	data.ResizeStep = 15

	res := ResizeColumnByStep(state, data, 1, -2)
	require.True(t, res.Changed)
	assert.Equal(t, 70, res.Widths.ColumnWidths[1])

	data.ResizeColumnDisabled = true
	assert.True(t, IsResizeColumnDisabled(data))
	res = ResizeColumnByStep(state, data, 1, -2)
	assert.False(t, res.Changed)
}

func TestResizedColumnFeedsNextAllocation(t *testing.T) {
	m := NewManager(DefaultWidthsData(), WithResizeObserver(true))
	state := TableState{Columns: []Column{{}, {}, {}}}
	data := DefaultWidthsData()
	view := &fakeView{available: 600}

	m.HandleColumnsChange(state.Columns)
	first := m.AdjustColumnsSize(view, state, data)
	require.Equal(t, []int{200, 200, 200}, first.Widths.ColumnWidths)

	resized := ResizeColumn(first.State, first.Widths, 0, 300)
	require.True(t, resized.Changed)

	after := m.AdjustColumnsSizeAfterResize(view, resized.State, resized.Widths)
	assert.Equal(t, []int{300, 150, 150}, after.Widths.ColumnWidths)
}

func TestColumnOffsets(t *testing.T) {
	assert.Equal(t, []int{0, 10, 30}, ColumnOffsets([]int{10, 20, 5}))
	assert.Empty(t, ColumnOffsets(nil))
}

func TestRefreshColumnBounds(t *testing.T) {
	cols := []Column{{}, {MinWidth: 50, MaxWidth: 1000}, {MinWidth: 80, MaxWidth: 200}}

	normalized := NormalizeColumnBounds(cols[:1], Bounds{Min: 50, Max: 1000})
	assert.Equal(t, 50, normalized[0].MinWidth)
	assert.Equal(t, 1000, normalized[0].MaxWidth)

	refreshed := RefreshColumnBounds(cols, Bounds{Min: 50, Max: 1000}, Bounds{Min: 60, Max: 500})
	assert.Equal(t, 60, refreshed[0].MinWidth)
	assert.Equal(t, 60, refreshed[1].MinWidth)
	assert.Equal(t, 500, refreshed[1].MaxWidth)
	assert.Equal(t, 80, refreshed[2].MinWidth)
	assert.Equal(t, 200, refreshed[2].MaxWidth)
	assert.Zero(t, cols[0].MinWidth)
}
