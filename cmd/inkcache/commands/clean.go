package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/inkcache/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the export cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return c.app.Clean(cmd.Context(), app.CleanOptions{
				SettingsOptions: settingsOptions(cmd),
				All:             all,
			})
		},
	}
	addSettingsFlags(cmd)
	cmd.Flags().BoolP("all", "a", false, "Remove the whole project folder, including the output")
	return cmd
}
