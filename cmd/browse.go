package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tablewidth/internal/limiter"
	"github.com/oakwood-commons/tablewidth/internal/ui/table"
	"github.com/oakwood-commons/tablewidth/pkg/logger"
)

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Browse the table interactively and resize its columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts, args)
		},
	}
}

func runBrowse(cmd *cobra.Command, opts *rootOptions, args []string) error {
	// Not observed: widths wait for the first window size.
	in, err := loadTable(cmd, opts, args, false)
	if err != nil {
		return err
	}
	page := limiter.Config{}
	if in.page.Limit > 0 {
		page = in.page
	}
	lgr := logger.FromContext(cmd.Context())
	b := table.NewBrowser(in.table, in.doc.Rows, page, noColor(cmd, in.cfg), lgr.WithName("browse"))
	return table.Run(cmd.Context(), b)
}
