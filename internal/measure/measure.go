// Package measure reports terminal cell widths to the width engine.
package measure

import (
	"os"
	"strconv"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/tablewidth/pkg/widths"
)

const (
	// CellPadding is the blank cell on each side of a cell's text.
	CellPadding = 1
	// SeparatorWidth is the width of the rule drawn between columns.
	SeparatorWidth = 1
	// FallbackWidth is used when the terminal size cannot be detected.
	FallbackWidth = 120
)

// termGetSize is swapped in tests.
var termGetSize = term.GetSize

// DetectTerminalWidth probes stdout, stderr and stdin, then $COLUMNS.
func DetectTerminalWidth() int {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		if w, _, err := termGetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w
		}
	}
	return FallbackWidth
}

// Grid is a widths.Measurements backed by cell text. Headers and FirstRow
// are aligned with the table's columns; FirstRow is nil without data.
type Grid struct {
	Headers  []string
	FirstRow []string

	// Width is the total width of the screen area; 0 detects it.
	Width int
	// Rendered is the width the table last occupied; 0 while hidden.
	Rendered int
}

var _ widths.Measurements = (*Grid)(nil)

// CellWidth is the display width of text inside a padded cell.
func CellWidth(text string) int {
	return lipgloss.Width(text) + 2*CellPadding
}

// Chrome is the width taken by separators between n columns.
func Chrome(n int) int {
	if n <= 1 {
		return 0
	}
	return (n - 1) * SeparatorWidth
}

func (g *Grid) screenWidth() int {
	if g.Width > 0 {
		return g.Width
	}
	return DetectTerminalWidth()
}

// AvailableWidth is the screen width minus separators.
func (g *Grid) AvailableWidth() int {
	return max(g.screenWidth()-Chrome(len(g.Headers)), 0)
}

func (g *Grid) DataCellWidths() []int {
	if g.FirstRow == nil {
		return nil
	}
	return cellWidths(g.FirstRow)
}

func (g *Grid) HeaderCellWidths() []int {
	return cellWidths(g.Headers)
}

func (g *Grid) TableElementWidth() int {
	return g.Rendered
}

func cellWidths(cells []string) []int {
	out := make([]int, len(cells))
	for i, c := range cells {
		out[i] = CellWidth(c)
	}
	return out
}
