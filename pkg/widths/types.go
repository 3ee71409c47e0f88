// Package widths allocates column widths for data tables.
//
// Two strategies are provided: [FixedWidthStrategy] splits the space left by
// explicitly sized columns equally across the remaining columns, and
// [AutoWidthStrategy] distributes it in proportion to measured content. The
// [Manager] owns both strategies, tracks when a recompute is owed, and turns
// strategy output into updated column state. Manual drag or keyboard resizing
// is handled by [ResizeColumn] and friends.
//
// All operations are synchronous and take their inputs by value; results are
// returned to the caller, which is the single owner of table state.
package widths

import "fmt"

// Mode selects the allocation strategy.
type Mode string

const (
	ModeFixed Mode = "fixed"
	ModeAuto  Mode = "auto"
)

// ParseMode converts a user supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFixed, ModeAuto:
		return Mode(s), nil
	case "":
		return ModeFixed, nil
	}
	return "", fmt.Errorf("%w: %q (expected fixed or auto)", ErrInvalidMode, s)
}

// Direction is the horizontal layout direction of the table.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// ColumnKind distinguishes data columns from the host's utility columns.
type ColumnKind string

const (
	KindData      ColumnKind = "data"
	KindRowNumber ColumnKind = "rowNumber"
	KindCheckbox  ColumnKind = "checkbox"
)

// Column is the allocation-relevant view of one table column.
type Column struct {
	Key   string
	Label string
	Kind  ColumnKind

	// FixedWidth is never changed by allocation.
	FixedWidth int
	// InitialWidth is a suggested width; it counts as resized, not flexible.
	InitialWidth int
	// IsResized is set once a user resizes the column; ColumnWidth then
	// becomes an input to later allocation passes.
	IsResized   bool
	ColumnWidth int

	MinWidth int
	MaxWidth int
	WrapText bool

	// Style and Offset are outputs. Offset is only maintained in RTL.
	Style  string
	Offset int
}

// HasExplicitWidth reports whether the column is excluded from flexible
// distribution.
func (c Column) HasExplicitWidth() bool {
	return sourceOf(c) != sourceFlexible
}

// WidthsMetadata aggregates width statistics for one allocation pass.
type WidthsMetadata struct {
	TotalFixedWidth      int
	TotalFixedColumns    int
	TotalResizedWidth    int
	TotalResizedColumns  int
	TotalFlexibleColumns int
	MinColumnWidth       int
	MaxColumnWidth       int
	WrapTextMaxLines     int
}

// Bounds are the global limits applied to flexible columns.
type Bounds struct {
	Min          int
	Max          int
	WrapMaxLines int
}

// WidthsData is the per-table state that persists across renders.
type WidthsData struct {
	ColumnWidths         []int
	TableWidth           int
	MinColumnWidth       int
	MaxColumnWidth       int
	ResizeStep           int
	ResizeColumnDisabled bool
	ColumnWidthsMode     Mode
	WrapTextMaxLines     int
}

const (
	DefaultMinColumnWidth   = 50
	DefaultMaxColumnWidth   = 1000
	DefaultResizeStep       = 10
	DefaultWrapTextMaxLines = 3
)

// DefaultWidthsData returns the state a new table starts with.
func DefaultWidthsData() WidthsData {
	return WidthsData{
		ColumnWidths:     []int{},
		MinColumnWidth:   DefaultMinColumnWidth,
		MaxColumnWidth:   DefaultMaxColumnWidth,
		ResizeStep:       DefaultResizeStep,
		ColumnWidthsMode: ModeFixed,
		WrapTextMaxLines: DefaultWrapTextMaxLines,
	}
}

// Bounds returns the global bounds carried by the state.
func (d WidthsData) Bounds() Bounds {
	return Bounds{Min: d.MinColumnWidth, Max: d.MaxColumnWidth, WrapMaxLines: d.WrapTextMaxLines}
}

// Clone returns a copy that shares no slices with d.
func (d WidthsData) Clone() WidthsData {
	out := d
	out.ColumnWidths = append([]int(nil), d.ColumnWidths...)
	return out
}

// TableState is the column list together with its layout direction.
type TableState struct {
	Columns   []Column
	Direction Direction
}

// Clone returns a copy whose column slice can be mutated freely.
func (s TableState) Clone() TableState {
	out := s
	out.Columns = append([]Column(nil), s.Columns...)
	return out
}

// IsRTL reports whether columns are laid out right to left.
func (s TableState) IsRTL() bool {
	return s.Direction == RTL
}

// Adjusted is what a strategy hands back.
type Adjusted struct {
	ColumnWidths       []int
	ExpectedTableWidth int
}

// Measurements is implemented by the host view. Reads are synchronous and
// may be stale.
type Measurements interface {
	// AvailableWidth is the width the table may occupy.
	AvailableWidth() int
	// DataCellWidths are the widths of the first data row's cells, empty
	// when there is no data.
	DataCellWidths() []int
	// HeaderCellWidths are the header cell widths.
	HeaderCellWidths() []int
	// TableElementWidth is the width of the rendered table, zero when it is
	// not visible.
	TableElementWidth() int
}
