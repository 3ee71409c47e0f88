package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tablewidth/internal/render"
	"github.com/oakwood-commons/tablewidth/pkg/logger"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "render [file]",
		Short: "Print the table with computed column widths (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}
	c.Flags().StringVarP(&opts.output, "output", "o", render.OutputTable, "output format: table|widths|yaml|json|toml")
	return c
}

func runRender(cmd *cobra.Command, opts *rootOptions, args []string) error {
	in, err := loadTable(cmd, opts, args, true)
	if err != nil {
		return err
	}
	res := in.table.Layout()
	if !res.Applied {
		logger.FromContext(cmd.Context()).V(1).Info("layout not applied, drawing with column defaults")
	}
	return render.Write(cmd.OutOrStdout(), in.table, opts.output, render.DefaultStyles(noColor(cmd, in.cfg)))
}
