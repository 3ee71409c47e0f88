// Package cmd holds the tablewidth command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/tablewidth/internal/config"
	"github.com/oakwood-commons/tablewidth/internal/filter"
	"github.com/oakwood-commons/tablewidth/internal/layout"
	"github.com/oakwood-commons/tablewidth/internal/limiter"
	"github.com/oakwood-commons/tablewidth/internal/render"
	"github.com/oakwood-commons/tablewidth/pkg/logger"
	"github.com/oakwood-commons/tablewidth/pkg/settings"
)

// rootOptions are the flags that are not part of the width configuration.
type rootOptions struct {
	debug       bool
	interactive bool
	output      string
	filterExpr  string
	limit       int
	offset      int
	tail        int
}

var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	run := settings.NewCliParams()
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: "Lay out table columns to fit the available width",
		Long: `tablewidth reads a table document (YAML, JSON or TOML) and sizes its
columns for the terminal, either evenly (fixed mode) or in proportion to
their content (auto mode).`,
		Example: "  tablewidth orders.yaml\n  tablewidth orders.yaml --mode fixed --width 100\n" +
			"  tablewidth orders.yaml --filter 'row.status == \"open\"' -o widths\n  cat orders.json | tablewidth -o yaml\n",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level int8
			if opts.debug {
				level = -1
			}
			run.MinLogLevel = level
			run.Interactive = opts.interactive || cmd.Name() == "browse"
			lgr := logger.Get(level)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			ctx = settings.IntoContext(ctx, run)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.interactive {
				return runBrowse(cmd, opts, args)
			}
			return runRender(cmd, opts, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&run.ConfigPath, "config", "", "path to a YAML config file (default $XDG_CONFIG_HOME/tablewidth/config.yaml)")
	pf.BoolVar(&opts.debug, "debug", false, "write debug logs to stderr")
	pf.String("mode", config.DefaultMode, "column width mode: fixed|auto")
	pf.Int("min-width", config.DefaultMinColumnWidth, "minimum width of a flexible column")
	pf.Int("max-width", config.DefaultMaxColumnWidth, "maximum width of a flexible column")
	pf.Int("wrap-lines", config.DefaultWrapTextMaxLines, "maximum lines of a wrapping column")
	pf.Int("resize-step", config.DefaultResizeStep, "width change per resize key press")
	pf.Bool("resize-disabled", false, "disable interactive column resizing")
	pf.Int("truncation-allowance", config.DefaultTruncationAllowance, "width added to each proportional column in auto mode")
	pf.Bool("rtl", false, "lay out columns right to left")
	pf.Bool("row-numbers", false, "show a row number column")
	pf.Int("row-number-offset", 0, "number shown before the first row")
	pf.Bool("checkbox", false, "show a checkbox column")
	pf.BoolVar(&run.NoColor, "no-color", false, "disable color output")
	pf.Int("width", 0, "available width in cells (0 = terminal width)")
	pf.StringVar(&opts.filterExpr, "filter", "", "CEL predicate over row (column key to cell text) and index, e.g. 'row.status == \"open\"'")
	pf.IntVar(&opts.limit, "limit", 0, "show only this many rows")
	pf.IntVar(&opts.offset, "offset", 0, "skip the first N rows")
	pf.IntVar(&opts.tail, "tail", 0, "show the last N rows (mutually exclusive with --limit; ignores --offset)")

	root.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the table interactively")
	root.Flags().StringVarP(&opts.output, "output", "o", render.OutputTable, "output format: table|widths|yaml|json|toml")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(
		newRenderCmd(opts),
		newExplainCmd(opts),
		newBrowseCmd(opts),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// loadConfig merges the configuration for cmd.
func loadConfig(cmd *cobra.Command) (config.Loaded, error) {
	path := ""
	if run, ok := settings.FromContext(cmd.Context()); ok {
		path = run.ConfigPath
	}
	loaded, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Loaded{}, err
	}
	logger.FromContext(cmd.Context()).V(1).Info("configuration loaded", "file", loaded.FileUsed, "mode", loaded.Config.Mode)
	return loaded, nil
}

// tableInput is a loaded, filtered and limited document.
type tableInput struct {
	cfg   config.Config
	doc   layout.Document
	page  limiter.Config
	table *render.Table
}

// loadTable reads the document named by args (stdin when empty), applies
// --filter and --limit/--offset/--tail, and builds the table.
func loadTable(cmd *cobra.Command, opts *rootOptions, args []string, observed bool) (*tableInput, error) {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)

	loaded, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	page := limiter.Config{Limit: opts.limit, Offset: opts.offset, Tail: opts.tail}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("row limiting: %w", err)
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	} else if stdinIsTerminal() {
		return nil, fmt.Errorf("no input: pass a document path or pipe one on stdin")
	}
	doc, err := layout.Load(path)
	if err != nil {
		return nil, err
	}

	if opts.filterExpr != "" {
		p, err := filter.Compile(opts.filterExpr)
		if err != nil {
			return nil, fmt.Errorf("--filter: %w", err)
		}
		rows, err := p.Rows(doc.Rows, doc.RowMaps())
		if err != nil {
			return nil, fmt.Errorf("--filter: %w", err)
		}
		lgr.V(1).Info("rows filtered", "expression", p.String(), "kept", len(rows), "total", len(doc.Rows))
		doc = doc.WithRows(rows)
	}

	start, _ := page.Window(len(doc.Rows))
	visible := doc.WithRows(limiter.Apply(page, doc.Rows))
	tbl := render.New(visible, render.Options{
		Config:   cfg,
		Offset:   start,
		Observed: observed,
		Logger:   withTable(*lgr, doc),
	})
	return &tableInput{cfg: cfg, doc: doc, page: page, table: tbl}, nil
}

func withTable(lgr logr.Logger, doc layout.Document) logr.Logger {
	if doc.Title == "" {
		return lgr
	}
	return lgr.WithValues(logger.TableKey, doc.Title)
}

func noColor(cmd *cobra.Command, cfg config.Config) bool {
	if cfg.NoColor {
		return true
	}
	if run, ok := settings.FromContext(cmd.Context()); ok && run.NoColor {
		return true
	}
	_, set := os.LookupEnv("NO_COLOR")
	return set
}
