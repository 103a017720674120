package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <document.svg>",
		Short: "Show which nodes would be exported, without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Status(cmd.Context(), args[0], settingsOptions(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, n := range report.Nodes {
				if _, err := fmt.Fprintf(out, "%-8s %s %s\n", n.Status, n.Fingerprint, n.Node.ID); err != nil {
					return err
				}
			}
			for _, id := range report.Stale {
				if _, err := fmt.Fprintf(out, "%-8s %16s %s\n", "stale", "-", id); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addSettingsFlags(cmd)
	return cmd
}
