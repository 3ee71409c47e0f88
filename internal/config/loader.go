package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides, e.g. TABLEWIDTH_MODE=fixed.
const EnvPrefix = "TABLEWIDTH_"

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"wrap-lines": "wrap_text_max_lines",
	"min-width":  "min_column_width",
	"max-width":  "max_column_width",
}

// Loaded is a merged configuration plus where it came from.
type Loaded struct {
	Config   Config
	FileUsed string
}

// ResolvePath returns explicit when set, otherwise the XDG config file
// ($XDG_CONFIG_HOME/tablewidth/config.yaml, or ~/.config/...) if it exists.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, "tablewidth", "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", "tablewidth", "config.yaml")
	}
	if candidate == "" {
		return ""
	}
	if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
		return candidate
	}
	return ""
}

// Load merges, lowest to highest precedence: defaults, the config file at
// path (if any), TABLEWIDTH_* environment variables, and flags that were
// explicitly set. The result is validated.
func Load(path string, flags *pflag.FlagSet) (Loaded, error) {
	k := koanf.New(".")

	d := Defaults()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"mode":                 d.Mode,
		"min_column_width":     d.MinColumnWidth,
		"max_column_width":     d.MaxColumnWidth,
		"wrap_text_max_lines":  d.WrapTextMaxLines,
		"resize_step":          d.ResizeStep,
		"truncation_allowance": d.TruncationAllowance,
		"direction":            d.Direction,
	}, "."), nil); err != nil {
		return Loaded{}, fmt.Errorf("load defaults: %w", err)
	}

	used := ResolvePath(path)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return Loaded{}, fmt.Errorf("read config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Loaded{}, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			if f.Name == "rtl" {
				if v, _ := flags.GetBool("rtl"); v {
					return "direction", "rtl"
				}
				return "direction", "ltr"
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Loaded{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Loaded{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Loaded{}, err
	}
	return Loaded{Config: cfg, FileUsed: used}, nil
}
