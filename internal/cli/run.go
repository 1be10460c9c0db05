// internal/cli/run.go
package codsim

import "github.com/spf13/cobra"

var htmlPath string

// runCmd implements 'run', which simulates one set of parameters and prints
// the summary, comparison table and chart.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single simulation",
	Long:  `The 'run' command simulates one prompting strategy, task type, model and token limit, then prints the results, the strategy comparison and a chart. Use --export, --chart and --html to save the CSV, PNG and HTML report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *GetConfig()
		report := htmlPath
		if report == "" {
			report = cfg.HTMLPath
		}
		return runSimulation(cmd.OutOrStdout(), cfg, report)
	},
}

func init() {
	runCmd.Flags().StringVar(&htmlPath, "html", "", "write a standalone HTML chart report to this path")
	rootCmd.AddCommand(runCmd)
}
