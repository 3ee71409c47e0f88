package widths

import "fmt"

type widthSource int

const (
	sourceFlexible widthSource = iota
	sourceFixed
	sourceResized
	sourceInitial
)

// sourceOf is the single precedence rule: fixed, then resized, then
// initial. A resized column stays resized even when its width is 0.
func sourceOf(c Column) widthSource {
	switch {
	case c.FixedWidth > 0:
		return sourceFixed
	case c.IsResized:
		return sourceResized
	case c.InitialWidth > 0:
		return sourceInitial
	}
	return sourceFlexible
}

// ColumnWidthFromDef returns the explicit width of a column, or 0 when the
// column is flexible. Precedence is fixed, then resized, then initial.
func ColumnWidthFromDef(c Column) int {
	switch sourceOf(c) {
	case sourceFixed:
		return c.FixedWidth
	case sourceResized:
		return c.ColumnWidth
	case sourceInitial:
		return c.InitialWidth
	}
	return 0
}

// ComputeMetadata classifies each column into exactly one of fixed,
// resized-or-initial, or flexible and totals them.
func ComputeMetadata(bounds Bounds, cols []Column) WidthsMetadata {
	meta := WidthsMetadata{
		MinColumnWidth:   bounds.Min,
		MaxColumnWidth:   bounds.Max,
		WrapTextMaxLines: bounds.WrapMaxLines,
	}
	for _, c := range cols {
		switch sourceOf(c) {
		case sourceFixed:
			meta.TotalFixedWidth += c.FixedWidth
			meta.TotalFixedColumns++
		case sourceResized, sourceInitial:
			meta.TotalResizedWidth += ColumnWidthFromDef(c)
			meta.TotalResizedColumns++
		default:
			meta.TotalFlexibleColumns++
		}
	}
	return meta
}

// MinExpectedTableWidth is the narrowest the table can be: explicit widths
// plus every flexible column at the minimum.
func MinExpectedTableWidth(meta WidthsMetadata) int {
	return meta.TotalFixedWidth + meta.TotalResizedWidth + meta.TotalFlexibleColumns*meta.MinColumnWidth
}

// ExpectedTableWidth is the width the table should occupy. Without flexible
// columns the table never stretches to fill the available width.
func ExpectedTableWidth(meta WidthsMetadata, available int) int {
	minWidth := MinExpectedTableWidth(meta)
	if meta.TotalFlexibleColumns > 0 {
		return max(minWidth, available)
	}
	return minWidth
}

// FlexibleBudget is the width left for flexible columns.
func FlexibleBudget(meta WidthsMetadata, tableWidth int) int {
	return tableWidth - meta.TotalFixedWidth - meta.TotalResizedWidth
}

// columnBounds resolves a column's own bounds, falling back to the globals.
func columnBounds(c Column, meta WidthsMetadata) (int, int) {
	lo, hi := c.MinWidth, c.MaxWidth
	if lo <= 0 {
		lo = meta.MinColumnWidth
	}
	if hi <= 0 {
		hi = meta.MaxColumnWidth
	}
	return lo, hi
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// StyleFor renders the layout declaration stored on Column.Style.
func StyleFor(width int) string {
	return fmt.Sprintf("width:%dpx", width)
}
