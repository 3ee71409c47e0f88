// Package layout reads table documents: column definitions plus rows.
package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tablewidth/pkg/widths"
)

var (
	// ErrNoColumns is returned when a document defines no columns and none
	// can be inferred from its rows.
	ErrNoColumns = errors.New("document has no columns")
	// ErrUnknownFormat is returned for unsupported document formats.
	ErrUnknownFormat = errors.New("unknown document format")
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ColumnSpec is one column as written in a document.
type ColumnSpec struct {
	Key          string `yaml:"key" json:"key" toml:"key"`
	Label        string `yaml:"label,omitempty" json:"label,omitempty" toml:"label,omitempty"`
	FixedWidth   int    `yaml:"fixed_width,omitempty" json:"fixed_width,omitempty" toml:"fixed_width,omitempty"`
	InitialWidth int    `yaml:"initial_width,omitempty" json:"initial_width,omitempty" toml:"initial_width,omitempty"`
	MinWidth     int    `yaml:"min_width,omitempty" json:"min_width,omitempty" toml:"min_width,omitempty"`
	MaxWidth     int    `yaml:"max_width,omitempty" json:"max_width,omitempty" toml:"max_width,omitempty"`
	WrapText     bool   `yaml:"wrap_text,omitempty" json:"wrap_text,omitempty" toml:"wrap_text,omitempty"`
}

// Title returns the header text for the column.
func (c ColumnSpec) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// Document is a decoded table. Rows are aligned with Columns.
type Document struct {
	Title   string
	Columns []ColumnSpec
	Rows    [][]string
}

type rawDocument struct {
	Title   string        `yaml:"title" json:"title" toml:"title"`
	Columns []ColumnSpec  `yaml:"columns" json:"columns" toml:"columns"`
	Rows    []interface{} `yaml:"rows" json:"rows" toml:"rows"`
}

// FormatFromPath picks a format from the file extension. Unknown and empty
// extensions read as YAML.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", "":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads the document at path. A path of "-" reads YAML from stdin.
func Load(path string) (Document, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return Document{}, fmt.Errorf("read stdin: %w", err)
		}
		return Decode(data, FormatYAML)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	doc, err := Decode(data, format)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses data in the given format and validates the result.
func Decode(data []byte, format Format) (Document, error) {
	var raw rawDocument
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", format, err)
	}

	cols := raw.Columns
	if len(cols) == 0 {
		cols = inferColumns(raw.Rows)
	}
	doc := Document{Title: raw.Title, Columns: cols}
	if err := doc.validateColumns(); err != nil {
		return Document{}, err
	}
	doc.Rows = make([][]string, 0, len(raw.Rows))
	for i, r := range raw.Rows {
		row, err := normalizeRow(r, cols)
		if err != nil {
			return Document{}, fmt.Errorf("row %d: %w", i, err)
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc, nil
}

func (d Document) validateColumns() error {
	if len(d.Columns) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]bool, len(d.Columns))
	for i, c := range d.Columns {
		if c.Key == "" {
			return fmt.Errorf("column %d: missing key", i)
		}
		if seen[c.Key] {
			return fmt.Errorf("duplicate column key %q", c.Key)
		}
		seen[c.Key] = true
		if err := c.validateWidths(); err != nil {
			return fmt.Errorf("column %q: %w", c.Key, err)
		}
	}
	return nil
}

func (c ColumnSpec) validateWidths() error {
	for _, w := range []struct {
		name  string
		value int
	}{
		{"fixed_width", c.FixedWidth},
		{"initial_width", c.InitialWidth},
		{"min_width", c.MinWidth},
		{"max_width", c.MaxWidth},
	} {
		if w.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", w.name, w.value)
		}
	}
	if c.MinWidth > 0 && c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
		return fmt.Errorf("min_width %d exceeds max_width %d", c.MinWidth, c.MaxWidth)
	}
	return nil
}

// inferColumns takes the sorted keys of the first map row.
func inferColumns(rows []interface{}) []ColumnSpec {
	if len(rows) == 0 {
		return nil
	}
	m, ok := rows[0].(map[string]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	cols := make([]ColumnSpec, len(keys))
	for i, k := range keys {
		cols[i] = ColumnSpec{Key: k}
	}
	return cols
}

func normalizeRow(r interface{}, cols []ColumnSpec) ([]string, error) {
	out := make([]string, len(cols))
	switch v := r.(type) {
	case []interface{}:
		if len(v) > len(cols) {
			return nil, fmt.Errorf("%d values for %d columns", len(v), len(cols))
		}
		for i, cell := range v {
			out[i] = cellString(cell)
		}
	case map[string]interface{}:
		for i, c := range cols {
			out[i] = cellString(v[c.Key])
		}
	default:
		return nil, fmt.Errorf("unsupported row type %T", r)
	}
	return out, nil
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// EngineColumns converts the document columns into engine columns.
func (d Document) EngineColumns() []widths.Column {
	out := make([]widths.Column, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = widths.Column{
			Key:          c.Key,
			Label:        c.Title(),
			Kind:         widths.KindData,
			FixedWidth:   c.FixedWidth,
			InitialWidth: c.InitialWidth,
			MinWidth:     c.MinWidth,
			MaxWidth:     c.MaxWidth,
			WrapText:     c.WrapText,
		}
	}
	return out
}

// RowMaps returns each row keyed by column key.
func (d Document) RowMaps() []map[string]string {
	out := make([]map[string]string, len(d.Rows))
	for i, row := range d.Rows {
		m := make(map[string]string, len(d.Columns))
		for j, c := range d.Columns {
			if j < len(row) {
				m[c.Key] = row[j]
			}
		}
		out[i] = m
	}
	return out
}

// WithRows returns a copy of d holding rows.
func (d Document) WithRows(rows [][]string) Document {
	d.Rows = rows
	return d
}
