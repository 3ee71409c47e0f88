package render

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/tablewidth/pkg/widths"
)

// Explain renders the metadata and allocation of t as a tree.
func Explain(t *Table) string {
	r := NewReport(t)
	meta := widths.ComputeMetadata(t.Widths.Bounds(), t.State.Columns)

	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("table (%s, %s)", r.Mode, r.Direction))

	sizes := tree.AddBranch("widths")
	sizes.AddNode(fmt.Sprintf("available: %d", r.AvailableWidth))
	sizes.AddNode(fmt.Sprintf("minimum expected: %d", widths.MinExpectedTableWidth(meta)))
	sizes.AddNode(fmt.Sprintf("expected: %d", r.ExpectedTableWidth))
	sizes.AddNode(fmt.Sprintf("allocated: %d", r.TableWidth))
	sizes.AddNode(fmt.Sprintf("bounds: %d..%d", meta.MinColumnWidth, meta.MaxColumnWidth))

	totals := tree.AddBranch("metadata")
	totals.AddNode(fmt.Sprintf("fixed: %d columns, %d wide", meta.TotalFixedColumns, meta.TotalFixedWidth))
	totals.AddNode(fmt.Sprintf("resized or initial: %d columns, %d wide", meta.TotalResizedColumns, meta.TotalResizedWidth))
	totals.AddNode(fmt.Sprintf("flexible: %d columns", meta.TotalFlexibleColumns))

	cols := tree.AddBranch("columns")
	for _, c := range r.Columns {
		label := fmt.Sprintf("%s: %d (%s", c.Key, c.Width, c.Bucket)
		if c.Ratio > 0 {
			label += fmt.Sprintf(", ratio %.1f%%", c.Ratio)
		}
		cols.AddNode(label + ")")
	}

	if r.Mode == string(widths.ModeAuto) {
		dist := tree.AddBranch("redistribution")
		dist.AddNode("near minimum: " + keyList(r.MinBucket))
		dist.AddNode("near maximum: " + keyList(r.MaxBucket))
	}
	return tree.String()
}

func keyList(keys []string) string {
	if len(keys) == 0 {
		return "none"
	}
	return strings.Join(keys, ", ")
}
