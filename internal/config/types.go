// Package config loads tablewidth settings from defaults, a YAML file, the
// environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oakwood-commons/tablewidth/pkg/widths"
)

// Config is the merged configuration for one run.
type Config struct {
	Mode                string `koanf:"mode" yaml:"mode"`
	MinColumnWidth      int    `koanf:"min_column_width" yaml:"min_column_width"`
	MaxColumnWidth      int    `koanf:"max_column_width" yaml:"max_column_width"`
	WrapTextMaxLines    int    `koanf:"wrap_text_max_lines" yaml:"wrap_text_max_lines"`
	ResizeStep          int    `koanf:"resize_step" yaml:"resize_step"`
	ResizeDisabled      bool   `koanf:"resize_disabled" yaml:"resize_disabled"`
	TruncationAllowance int    `koanf:"truncation_allowance" yaml:"truncation_allowance"`
	Direction           string `koanf:"direction" yaml:"direction"`
	RowNumbers          bool   `koanf:"row_numbers" yaml:"row_numbers"`
	RowNumberOffset     int    `koanf:"row_number_offset" yaml:"row_number_offset"`
	Checkbox            bool   `koanf:"checkbox" yaml:"checkbox"`
	NoColor             bool   `koanf:"no_color" yaml:"no_color"`
	// Width is the available width; 0 means detect from the terminal.
	Width int `koanf:"width" yaml:"width"`
}

// Terminal defaults. The engine's own defaults are sized for pixels; a
// terminal counts cells.
const (
	DefaultMode                = "auto"
	DefaultMinColumnWidth      = 4
	DefaultMaxColumnWidth      = 60
	DefaultWrapTextMaxLines    = 3
	DefaultResizeStep          = 2
	DefaultTruncationAllowance = 2
	DefaultDirection           = "ltr"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Mode:                DefaultMode,
		MinColumnWidth:      DefaultMinColumnWidth,
		MaxColumnWidth:      DefaultMaxColumnWidth,
		WrapTextMaxLines:    DefaultWrapTextMaxLines,
		ResizeStep:          DefaultResizeStep,
		TruncationAllowance: DefaultTruncationAllowance,
		Direction:           DefaultDirection,
	}
}

// ValidationError lists every problem found in a Config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var problems []string
	if _, err := widths.ParseMode(c.Mode); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := widths.ParseDirection(c.Direction); err != nil {
		problems = append(problems, err.Error())
	}
	if c.MinColumnWidth <= 0 {
		problems = append(problems, fmt.Sprintf("min_column_width must be positive, got %d", c.MinColumnWidth))
	}
	if c.MaxColumnWidth < c.MinColumnWidth {
		problems = append(problems, fmt.Sprintf("max_column_width (%d) must not be below min_column_width (%d)", c.MaxColumnWidth, c.MinColumnWidth))
	}
	if c.WrapTextMaxLines < 0 {
		problems = append(problems, fmt.Sprintf("wrap_text_max_lines must be non-negative, got %d", c.WrapTextMaxLines))
	}
	if c.ResizeStep <= 0 {
		problems = append(problems, fmt.Sprintf("resize_step must be positive, got %d", c.ResizeStep))
	}
	if c.TruncationAllowance < 0 {
		problems = append(problems, fmt.Sprintf("truncation_allowance must be non-negative, got %d", c.TruncationAllowance))
	}
	if c.RowNumberOffset < 0 {
		problems = append(problems, fmt.Sprintf("row_number_offset must be non-negative, got %d", c.RowNumberOffset))
	}
	if c.Width < 0 {
		problems = append(problems, fmt.Sprintf("width must be non-negative, got %d", c.Width))
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// WidthsData converts the configuration into initial engine state.
func (c Config) WidthsData() widths.WidthsData {
	mode, _ := widths.ParseMode(c.Mode)
	d := widths.DefaultWidthsData()
	d.ColumnWidthsMode = mode
	d.MinColumnWidth = c.MinColumnWidth
	d.MaxColumnWidth = c.MaxColumnWidth
	d.WrapTextMaxLines = c.WrapTextMaxLines
	d.ResizeStep = c.ResizeStep
	d.ResizeColumnDisabled = c.ResizeDisabled
	return d
}

// LayoutDirection returns the parsed direction, defaulting to LTR.
func (c Config) LayoutDirection() widths.Direction {
	dir, err := widths.ParseDirection(c.Direction)
	if err != nil {
		return widths.LTR
	}
	return dir
}
