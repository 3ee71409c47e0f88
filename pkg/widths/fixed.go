package widths

// FixedWidthStrategy gives every flexible column the same width.
type FixedWidthStrategy struct {
	MinColumnWidth   int
	MaxColumnWidth   int
	WrapTextMaxLines int
}

// NewFixedWidthStrategy returns a strategy bounded by min and max.
func NewFixedWidthStrategy(minWidth, maxWidth int) *FixedWidthStrategy {
	return &FixedWidthStrategy{MinColumnWidth: minWidth, MaxColumnWidth: maxWidth}
}

func (s *FixedWidthStrategy) bounds() Bounds {
	return Bounds{Min: s.MinColumnWidth, Max: s.MaxColumnWidth, WrapMaxLines: s.WrapTextMaxLines}
}

// GetAdjustedColumnWidths computes widths for cols. Columns with an explicit
// width keep it; the rest share the flexible budget equally.
func (s *FixedWidthStrategy) GetAdjustedColumnWidths(m Measurements, cols []Column) Adjusted {
	meta := ComputeMetadata(s.bounds(), cols)
	expected := ExpectedTableWidth(meta, m.AvailableWidth())

	flexible := 0
	if meta.TotalFlexibleColumns > 0 {
		flexible = clamp(
			FlexibleBudget(meta, expected)/meta.TotalFlexibleColumns,
			meta.MinColumnWidth, meta.MaxColumnWidth,
		)
	}

	out := make([]int, len(cols))
	for i, c := range cols {
		if c.HasExplicitWidth() {
			out[i] = ColumnWidthFromDef(c)
			continue
		}
		lo, hi := columnBounds(c, meta)
		out[i] = clamp(flexible, lo, hi)
	}
	return Adjusted{ColumnWidths: out, ExpectedTableWidth: expected}
}
