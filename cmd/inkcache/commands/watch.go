package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <document.svg>",
		Short: "Export a drawing and again every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), args[0], exportOptions(cmd))
		},
	}
	addSettingsFlags(cmd)
	cmd.Flags().BoolP("force", "f", false, "Bypass the cache on the first export")
	return cmd
}
