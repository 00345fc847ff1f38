package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/avert/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the execution history and the build cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, _ := cmd.Flags().GetBool("history")
			cache, _ := cmd.Flags().GetBool("cache")

			opts := app.CleanOptions{History: history, Cache: cache}
			if !history && !cache {
				// Default behavior: clean everything
				opts = app.CleanOptions{History: true, Cache: true}
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("history", false, "Remove only the execution history")
	cmd.Flags().Bool("cache", false, "Remove only the build cache")

	return cmd
}
