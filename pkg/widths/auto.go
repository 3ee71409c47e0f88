package widths

import "math"

const (
	// DefaultTruncationAllowance is added to every ratio-derived width to
	// make up for the floor rounding of the share.
	DefaultTruncationAllowance = 20
	// MinMaxThreshold marks columns within this fraction of a bound as
	// redistribution candidates, whether or not they were clamped.
	MinMaxThreshold = 0.5
)

// Distribution lists the columns that landed near a bound during the first
// pass of an allocation.
type Distribution struct {
	ColsWithMinWidth []int
	ColsWithMaxWidth []int
}

// AutoWidthStrategy sizes flexible columns in proportion to their measured
// content. Ratios are cached on the strategy and only recomputed when asked
// to, or when the cache is empty.
type AutoWidthStrategy struct {
	MinColumnWidth      int
	MaxColumnWidth      int
	WrapTextMaxLines    int
	TruncationAllowance int

	ratios       []float64
	distribution Distribution
}

// NewAutoWidthStrategy returns a strategy with the default truncation
// allowance.
func NewAutoWidthStrategy(minWidth, maxWidth, wrapTextMaxLines int) *AutoWidthStrategy {
	return &AutoWidthStrategy{
		MinColumnWidth:      minWidth,
		MaxColumnWidth:      maxWidth,
		WrapTextMaxLines:    wrapTextMaxLines,
		TruncationAllowance: DefaultTruncationAllowance,
	}
}

func (s *AutoWidthStrategy) bounds() Bounds {
	return Bounds{Min: s.MinColumnWidth, Max: s.MaxColumnWidth, WrapMaxLines: s.WrapTextMaxLines}
}

// ColumnWidthRatios returns a copy of the cached percentage shares.
func (s *AutoWidthStrategy) ColumnWidthRatios() []float64 {
	return append([]float64(nil), s.ratios...)
}

// ColumnWidthsDistribution returns the bucket lists of the last allocation.
func (s *AutoWidthStrategy) ColumnWidthsDistribution() Distribution {
	return Distribution{
		ColsWithMinWidth: append([]int(nil), s.distribution.ColsWithMinWidth...),
		ColsWithMaxWidth: append([]int(nil), s.distribution.ColsWithMaxWidth...),
	}
}

// InvalidateRatios drops the ratio cache so the next allocation measures.
func (s *AutoWidthStrategy) InvalidateRatios() {
	s.ratios = nil
}

// GetAdjustedColumnWidths computes widths for cols. When the cached ratios
// do not line up with cols the returned widths are empty and the caller is
// expected to keep what it has.
func (s *AutoWidthStrategy) GetAdjustedColumnWidths(m Measurements, cols []Column, recomputeRatios bool) Adjusted {
	meta := ComputeMetadata(s.bounds(), cols)
	expected := ExpectedTableWidth(meta, m.AvailableWidth())

	s.distribution = Distribution{}

	if recomputeRatios || len(s.ratios) == 0 {
		s.ratios = s.computeRatios(m, cols, meta)
	}
	if len(s.ratios) != len(cols) {
		return Adjusted{ColumnWidths: []int{}, ExpectedTableWidth: expected}
	}

	out := s.distributeByRatio(cols, meta, expected)
	s.redistribute(out, cols, meta, expected)
	return Adjusted{ColumnWidths: out, ExpectedTableWidth: expected}
}

// computeRatios derives each flexible column's percentage of the flexible
// width from the first data row, or from the header when there is no data.
// Wrapped columns are measured as if spread over the maximum line count.
func (s *AutoWidthStrategy) computeRatios(m Measurements, cols []Column, meta WidthsMetadata) []float64 {
	cells := m.DataCellWidths()
	fromData := len(cells) > 0
	if !fromData {
		cells = m.HeaderCellWidths()
	}
	if len(cells) != len(cols) {
		return nil
	}

	effective := make([]float64, len(cells))
	flexTotal := 0.0
	for i, w := range cells {
		v := float64(w)
		if fromData && cols[i].WrapText && meta.WrapTextMaxLines > 0 {
			v /= float64(meta.WrapTextMaxLines)
		}
		effective[i] = v
		if !cols[i].HasExplicitWidth() {
			flexTotal += v
		}
	}

	ratios := make([]float64, len(cells))
	if flexTotal <= 0 {
		if meta.TotalFlexibleColumns == 0 {
			return ratios
		}
		share := 100 / float64(meta.TotalFlexibleColumns)
		for i, c := range cols {
			if !c.HasExplicitWidth() {
				ratios[i] = share
			}
		}
		return ratios
	}
	for i, c := range cols {
		if !c.HasExplicitWidth() {
			ratios[i] = effective[i] * 100 / flexTotal
		}
	}
	return ratios
}

// distributeByRatio is the first pass. The threshold checks use the value
// before clamping.
func (s *AutoWidthStrategy) distributeByRatio(cols []Column, meta WidthsMetadata, expected int) []int {
	budget := FlexibleBudget(meta, expected)
	out := make([]int, len(cols))
	for i, c := range cols {
		if c.HasExplicitWidth() {
			out[i] = ColumnWidthFromDef(c)
			continue
		}
		lo, hi := columnBounds(c, meta)
		calculated := int(math.Floor(float64(budget)*s.ratios[i]/100)) + s.TruncationAllowance

		if calculated < lo+thresholdOf(lo) {
			s.distribution.ColsWithMinWidth = append(s.distribution.ColsWithMinWidth, i)
		}
		if hi > 0 && calculated > hi-thresholdOf(hi) {
			s.distribution.ColsWithMaxWidth = append(s.distribution.ColsWithMaxWidth, i)
		}
		out[i] = clamp(calculated, lo, hi)
	}
	return out
}

func thresholdOf(bound int) int {
	return int(math.Ceil(MinMaxThreshold * float64(bound)))
}

// redistribute is the second pass: a single sweep that moves the gap
// between the expected width and the first pass total onto the columns most
// likely to absorb it, then onto every flexible column. Whatever cannot be
// placed without breaking a bound is left as is.
func (s *AutoWidthStrategy) redistribute(out []int, cols []Column, meta WidthsMetadata, expected int) {
	total := sum(out)
	switch {
	case expected > total:
		remaining := expected - total
		remaining = growEvenly(out, cols, meta, s.distribution.ColsWithMinWidth, remaining)
		if remaining > 0 {
			growEvenly(out, cols, meta, flexibleIndices(cols, nil), remaining)
		}
	case expected < total:
		excess := total - expected
		excess = shrinkEvenly(out, cols, meta, s.distribution.ColsWithMaxWidth, excess)
		if excess > 0 {
			shrinkEvenly(out, cols, meta, flexibleIndices(cols, s.distribution.ColsWithMinWidth), excess)
		}
	}
}

// flexibleIndices lists columns without an explicit width, minus skip.
func flexibleIndices(cols []Column, skip []int) []int {
	skipped := make(map[int]bool, len(skip))
	for _, i := range skip {
		skipped[i] = true
	}
	out := make([]int, 0, len(cols))
	for i, c := range cols {
		if c.HasExplicitWidth() || skipped[i] {
			continue
		}
		out = append(out, i)
	}
	return out
}

// evenShares splits amount over n slots; the first amount%n slots get one
// extra unit so the shares add up to amount.
func evenShares(amount, n int) func(k int) int {
	share, extra := amount/n, amount%n
	return func(k int) int {
		if k < extra {
			return share + 1
		}
		return share
	}
}

func growEvenly(out []int, cols []Column, meta WidthsMetadata, indices []int, remaining int) int {
	if len(indices) == 0 || remaining <= 0 {
		return remaining
	}
	shareOf := evenShares(remaining, len(indices))
	for k, idx := range indices {
		add := shareOf(k)
		if add == 0 {
			continue
		}
		_, hi := columnBounds(cols[idx], meta)
		if hi > 0 && out[idx]+add > hi {
			continue
		}
		out[idx] += add
		remaining -= add
	}
	return remaining
}

func shrinkEvenly(out []int, cols []Column, meta WidthsMetadata, indices []int, excess int) int {
	if len(indices) == 0 || excess <= 0 {
		return excess
	}
	shareOf := evenShares(excess, len(indices))
	for k, idx := range indices {
		take := shareOf(k)
		if take == 0 {
			continue
		}
		lo, _ := columnBounds(cols[idx], meta)
		if out[idx]-take < lo {
			continue
		}
		out[idx] -= take
		excess -= take
	}
	return excess
}
