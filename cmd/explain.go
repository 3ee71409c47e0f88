package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tablewidth/internal/render"
)

func newExplainCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [file]",
		Short: "Show how the column widths were decided",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadTable(cmd, opts, args, true)
			if err != nil {
				return err
			}
			in.table.Layout()
			_, err = fmt.Fprint(cmd.OutOrStdout(), render.Explain(in.table))
			return err
		},
	}
}
