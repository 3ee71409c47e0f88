package widths

import (
	"strconv"

	"github.com/go-logr/logr"
)

// RowNumberSizing describes how wide the row number column must be for a
// given label length.
type RowNumberSizing struct {
	PerDigit int
	Padding  int
	Min      int
}

// DefaultRowNumberSizing fits proportional digits in a browser-like host.
var DefaultRowNumberSizing = RowNumberSizing{PerDigit: 7, Padding: 24, Min: 52}

// Width returns the width needed to show row labels up to rowCount+offset.
func (s RowNumberSizing) Width(rowCount, offset int) int {
	label := max(rowCount+offset, 1)
	w := len(strconv.Itoa(label))*s.PerDigit + s.Padding
	return max(w, s.Min)
}

// Result is the outcome of an adjust call. When Applied is false the state
// and widths are the inputs, untouched.
type Result struct {
	State              TableState
	Widths             WidthsData
	ExpectedTableWidth int
	Applied            bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for trace output.
func WithLogger(l logr.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithResizeObserver tells the manager the host is notified of size
// changes, so measuring is safe even before the table is visible.
func WithResizeObserver(available bool) Option {
	return func(m *Manager) { m.resizeObserver = available }
}

// WithTruncationAllowance overrides the auto strategy's allowance.
func WithTruncationAllowance(n int) Option {
	return func(m *Manager) { m.auto.TruncationAllowance = n }
}

// WithRowNumberSizing overrides how the row number column is sized.
func WithRowNumberSizing(s RowNumberSizing) Option {
	return func(m *Manager) { m.rowNumbers = s }
}

// Manager owns the strategies of one table and decides when widths must be
// recomputed. It is not safe for concurrent use.
type Manager struct {
	mode  Mode
	fixed *FixedWidthStrategy
	auto  *AutoWidthStrategy

	// queueResizingUpdate means a recompute is owed; queueAutoResizingUpdate
	// means it must measure again rather than reuse cached ratios.
	queueResizingUpdate     bool
	queueAutoResizingUpdate bool

	resizeObserver bool
	rowNumbers     RowNumberSizing
	log            logr.Logger
}

// NewManager builds a manager from the table's initial state.
func NewManager(data WidthsData, opts ...Option) *Manager {
	mode := data.ColumnWidthsMode
	if mode == "" {
		mode = ModeFixed
	}
	fixed := NewFixedWidthStrategy(data.MinColumnWidth, data.MaxColumnWidth)
	fixed.WrapTextMaxLines = data.WrapTextMaxLines
	m := &Manager{
		mode:       mode,
		fixed:      fixed,
		auto:       NewAutoWidthStrategy(data.MinColumnWidth, data.MaxColumnWidth, data.WrapTextMaxLines),
		rowNumbers: DefaultRowNumberSizing,
		log:        logr.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) ColumnWidthMode() Mode { return m.mode }

// SetColumnWidthMode switches strategy. Call HandleWidthModeChange to queue
// the recompute.
func (m *Manager) SetColumnWidthMode(mode Mode) {
	m.mode = mode
}

func (m *Manager) SetMinColumnWidth(v int) {
	m.fixed.MinColumnWidth = v
	m.auto.MinColumnWidth = v
}

func (m *Manager) SetMaxColumnWidth(v int) {
	m.fixed.MaxColumnWidth = v
	m.auto.MaxColumnWidth = v
}

func (m *Manager) SetWrapTextMaxLines(v int) {
	m.fixed.WrapTextMaxLines = v
	m.auto.WrapTextMaxLines = v
}

// AutoStrategy exposes the auto strategy for inspection.
func (m *Manager) AutoStrategy() *AutoWidthStrategy { return m.auto }

func (m *Manager) IsResizingUpdateQueued() bool     { return m.queueResizingUpdate }
func (m *Manager) IsAutoResizingUpdateQueued() bool { return m.queueAutoResizingUpdate }

func (m *Manager) queueAll() {
	m.queueResizingUpdate = true
	m.queueAutoResizingUpdate = true
}

// HandleDataChange queues a recompute when the row count changed. Only auto
// mode depends on content, so only auto mode asks for a fresh measurement.
func (m *Manager) HandleDataChange(prevRows, newRows int, cols []Column) {
	if len(cols) == 0 {
		return
	}
	if prevRows != newRows {
		m.queueResizingUpdate = true
		if m.mode == ModeAuto {
			m.queueAutoResizingUpdate = true
		}
	}
}

// HandleColumnsChange queues a recompute after the column definitions
// changed. Cached ratios belong to the old columns and are dropped.
func (m *Manager) HandleColumnsChange(cols []Column) {
	m.auto.InvalidateRatios()
	m.queueResizingUpdate = true
	if m.mode == ModeAuto {
		m.queueAutoResizingUpdate = true
	}
}

// HandleWidthModeChange queues a full recompute after a mode switch.
func (m *Manager) HandleWidthModeChange(cols []Column) {
	if len(cols) > 0 {
		m.queueAll()
	}
}

// HandleCheckboxColumnChange queues a full recompute when the checkbox
// column was shown or hidden.
func (m *Manager) HandleCheckboxColumnChange(prev, next bool, cols []Column) {
	if len(cols) > 0 && prev != next {
		m.queueAll()
	}
}

// HandleRowNumberColumnChange queues a full recompute when the row number
// column was shown or hidden.
func (m *Manager) HandleRowNumberColumnChange(prev, next bool, cols []Column) {
	if len(cols) > 0 && prev != next {
		m.queueAll()
	}
}

// HandleRowNumberOffsetChange widens the row number column when the largest
// label no longer fits. It only reacts to growth; the returned flag reports
// whether the state changed.
func (m *Manager) HandleRowNumberOffsetChange(state TableState, rowCount, offset int) (TableState, bool) {
	idx := -1
	for i, c := range state.Columns {
		if c.Kind == KindRowNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return state, false
	}
	required := m.rowNumbers.Width(rowCount, offset)
	if required <= ColumnWidthFromDef(state.Columns[idx]) {
		return state, false
	}
	state = state.Clone()
	state.Columns[idx].FixedWidth = required
	state.Columns[idx].InitialWidth = required
	m.queueAll()
	return state, true
}

// RowNumberColumnWidth returns the width the row number column needs.
func (m *Manager) RowNumberColumnWidth(rowCount, offset int) int {
	return m.rowNumbers.Width(rowCount, offset)
}

// AdjustColumnsSize recomputes widths when an update is queued and clears
// the queue. With nothing queued the inputs come back unchanged.
func (m *Manager) AdjustColumnsSize(view Measurements, state TableState, data WidthsData) Result {
	if !m.queueResizingUpdate {
		return Result{State: state, Widths: data, ExpectedTableWidth: data.TableWidth}
	}
	res := m.adjust(view, state, data, m.queueAutoResizingUpdate)
	m.queueResizingUpdate = false
	m.queueAutoResizingUpdate = false
	return res
}

// AdjustColumnsSizeAfterResize recomputes widths after the available width
// changed. Cached ratios are reused unless a fresh measurement is queued.
func (m *Manager) AdjustColumnsSizeAfterResize(view Measurements, state TableState, data WidthsData) Result {
	res := m.adjust(view, state, data, m.queueAutoResizingUpdate)
	m.queueResizingUpdate = false
	m.queueAutoResizingUpdate = false
	return res
}

func (m *Manager) adjust(view Measurements, state TableState, data WidthsData, recompute bool) Result {
	var adj Adjusted
	if view.TableElementWidth() > 0 || m.resizeObserver {
		adj = m.strategyWidths(view, state.Columns, recompute)
	} else {
		m.log.V(1).Info("table not visible, reusing last widths", "columns", len(state.Columns))
		adj = Adjusted{ColumnWidths: data.ColumnWidths, ExpectedTableWidth: data.TableWidth}
	}

	if len(adj.ColumnWidths) != len(state.Columns) {
		m.log.V(1).Info("width count does not match columns, skipping",
			"widths", len(adj.ColumnWidths), "columns", len(state.Columns), "mode", string(m.mode))
		return Result{State: state, Widths: data, ExpectedTableWidth: data.TableWidth}
	}

	res := ApplyAdjusted(state, data, adj)
	m.log.V(1).Info("column widths adjusted",
		"mode", string(m.mode), "recompute", recompute,
		"tableWidth", res.Widths.TableWidth, "expected", adj.ExpectedTableWidth)
	return res
}

func (m *Manager) strategyWidths(view Measurements, cols []Column, recompute bool) Adjusted {
	if m.mode == ModeAuto {
		return m.auto.GetAdjustedColumnWidths(view, cols, recompute)
	}
	return m.fixed.GetAdjustedColumnWidths(view, cols)
}

// ShouldFireResizeEvent reports whether the host should announce a resize.
// Fixed mode announces only when the column count changed since prev; auto
// mode leaves announcements to user driven resizes.
func (m *Manager) ShouldFireResizeEvent(prev WidthsData, cols []Column) bool {
	if m.mode != ModeFixed {
		return false
	}
	return len(prev.ColumnWidths) != len(cols)
}

// ApplyAdjusted writes strategy output onto copies of state and data.
// Offsets are only maintained in RTL. Mismatched lengths leave the inputs
// untouched.
func ApplyAdjusted(state TableState, data WidthsData, adj Adjusted) Result {
	if len(adj.ColumnWidths) != len(state.Columns) {
		return Result{State: state, Widths: data, ExpectedTableWidth: data.TableWidth}
	}
	state = state.Clone()
	data = data.Clone()

	widths := append([]int(nil), adj.ColumnWidths...)
	offsets := ColumnOffsets(widths)
	for i := range state.Columns {
		w := widths[i]
		state.Columns[i].ColumnWidth = w
		state.Columns[i].Style = StyleFor(w)
		if state.IsRTL() {
			state.Columns[i].Offset = offsets[i]
		}
	}
	data.ColumnWidths = widths
	data.TableWidth = sum(widths)
	return Result{State: state, Widths: data, ExpectedTableWidth: adj.ExpectedTableWidth, Applied: true}
}
