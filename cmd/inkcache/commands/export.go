package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <document.svg>",
		Short: "Export a drawing, re-rendering only the changed nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := c.app.Export(cmd.Context(), args[0], exportOptions(cmd))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.OutputPath)
			return err
		},
	}
	addSettingsFlags(cmd)
	cmd.Flags().BoolP("force", "f", false, "Bypass the cache and export every node")
	return cmd
}
