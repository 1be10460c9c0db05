// internal/cli/dashboard.go
package codsim

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/codsim/internal/dashboard"
	"github.com/spf13/cobra"
)

var startDashboard = dashboard.Run

// dashboardCmd represents the 'dashboard' command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Start the interactive terminal dashboard",
	Long:  `The 'dashboard' command collects the simulation parameters through an interactive form and shows the results, comparison table and chart in a terminal view. Press r to rerun, p to change the parameters, e to export the CSV, c to save the chart and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runDashboard(ctx, cmd)
	},
}

func runDashboard(ctx context.Context, cmd *cobra.Command) error {
	cfg := GetConfig()
	defaults, err := cfg.DefaultRequest()
	if err != nil {
		return err
	}
	return startDashboard(ctx, dashboard.Options{
		Simulator:  newSimulator(cfg.Seed),
		Defaults:   defaults,
		ExportPath: cfg.ExportFilePath(),
		ChartPath:  cfg.ChartFilePath(),
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
	})
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
