package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tablewidth/pkg/widths"
)

// Output formats accepted by Write.
const (
	OutputTable  = "table"
	OutputWidths = "widths"
	OutputYAML   = "yaml"
	OutputJSON   = "json"
	OutputTOML   = "toml"
)

// ErrUnknownOutput is returned for an unsupported -o value.
var ErrUnknownOutput = errors.New("unknown output format")

// Bucket names how a column's width was decided.
type Bucket string

const (
	BucketFixed    Bucket = "fixed"
	BucketResized  Bucket = "resized"
	BucketInitial  Bucket = "initial"
	BucketFlexible Bucket = "flexible"
)

// BucketOf classifies c the same way the engine totals its metadata.
func BucketOf(c widths.Column) Bucket {
	switch {
	case c.FixedWidth > 0:
		return BucketFixed
	case c.IsResized:
		return BucketResized
	case c.InitialWidth > 0:
		return BucketInitial
	}
	return BucketFlexible
}

// ColumnReport is one column of a Report.
type ColumnReport struct {
	Key    string  `yaml:"key" json:"key" toml:"key"`
	Kind   string  `yaml:"kind" json:"kind" toml:"kind"`
	Bucket Bucket  `yaml:"bucket" json:"bucket" toml:"bucket"`
	Width  int     `yaml:"width" json:"width" toml:"width"`
	Offset int     `yaml:"offset,omitempty" json:"offset,omitempty" toml:"offset,omitempty"`
	Ratio  float64 `yaml:"ratio,omitempty" json:"ratio,omitempty" toml:"ratio,omitempty"`
}

// Report is the allocation of a table in serializable form.
type Report struct {
	Mode               string         `yaml:"mode" json:"mode" toml:"mode"`
	Direction          string         `yaml:"direction" json:"direction" toml:"direction"`
	AvailableWidth     int            `yaml:"available_width" json:"available_width" toml:"available_width"`
	ExpectedTableWidth int            `yaml:"expected_table_width" json:"expected_table_width" toml:"expected_table_width"`
	TableWidth         int            `yaml:"table_width" json:"table_width" toml:"table_width"`
	MinBucket          []string       `yaml:"min_bucket,omitempty" json:"min_bucket,omitempty" toml:"min_bucket,omitempty"`
	MaxBucket          []string       `yaml:"max_bucket,omitempty" json:"max_bucket,omitempty" toml:"max_bucket,omitempty"`
	Columns            []ColumnReport `yaml:"columns" json:"columns" toml:"columns"`
}

// NewReport describes the table's current allocation.
func NewReport(t *Table) Report {
	mode := t.Manager.ColumnWidthMode()
	dir := t.State.Direction
	if dir == "" {
		dir = widths.LTR
	}
	r := Report{
		Mode:               string(mode),
		Direction:          string(dir),
		AvailableWidth:     t.Grid.AvailableWidth(),
		ExpectedTableWidth: t.Expected,
		TableWidth:         t.Widths.TableWidth,
		Columns:            make([]ColumnReport, len(t.State.Columns)),
	}

	var ratios []float64
	if mode == widths.ModeAuto {
		ratios = t.Manager.AutoStrategy().ColumnWidthRatios()
		dist := t.Manager.AutoStrategy().ColumnWidthsDistribution()
		r.MinBucket = columnKeys(t.State.Columns, dist.ColsWithMinWidth)
		r.MaxBucket = columnKeys(t.State.Columns, dist.ColsWithMaxWidth)
	}
	for i, c := range t.State.Columns {
		cr := ColumnReport{
			Key:    c.Key,
			Kind:   string(c.Kind),
			Bucket: BucketOf(c),
			Width:  t.ColumnWidth(i),
			Offset: c.Offset,
		}
		if len(ratios) == len(t.State.Columns) {
			cr.Ratio = ratios[i]
		}
		r.Columns[i] = cr
	}
	return r
}

func columnKeys(cols []widths.Column, idx []int) []string {
	if len(idx) == 0 {
		return nil
	}
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(cols) {
			out = append(out, cols[i].Key)
		}
	}
	return out
}

// Write renders t in the given output format.
func Write(w io.Writer, t *Table, format string, styles Styles) error {
	switch format {
	case "", OutputTable:
		return Draw(w, t, styles)
	case OutputWidths:
		return writeWidths(w, t)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(t)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case OutputJSON:
		data, err := json.MarshalIndent(NewReport(t), "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputTOML:
		if err := toml.NewEncoder(w).Encode(NewReport(t)); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q (expected table, widths, yaml, json or toml)", ErrUnknownOutput, format)
}

// writeWidths prints one "key width" line per column.
func writeWidths(w io.Writer, t *Table) error {
	keyWidth := 0
	for _, c := range t.State.Columns {
		keyWidth = max(keyWidth, runewidth.StringWidth(c.Key))
	}
	for i, c := range t.State.Columns {
		if _, err := fmt.Fprintf(w, "%s  %d\n", runewidth.FillRight(c.Key, keyWidth), t.ColumnWidth(i)); err != nil {
			return err
		}
	}
	return nil
}
