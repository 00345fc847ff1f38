package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/avert/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [targets...]",
		Short: "Run tasks that are not up to date",
		Long:  "Run the given tasks and their dependencies. The target \"all\" selects every task.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			rerun, _ := cmd.Flags().GetBool("rerun")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Rerun:       rerun,
				NoCache:     noCache,
				MetricsFile: metricsFile,
			})
		},
	}
	cmd.Flags().BoolP("rerun", "r", false, "Execute tasks even when they are up to date")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the build cache")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics of the run to this file")
	return cmd
}
