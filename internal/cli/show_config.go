// internal/cli/show_config.go
package codsim

import (
	"github.com/spf13/cobra"
)

// showConfigCmd implements 'show config', which prints the merged
// configuration after flags have been applied over the config file.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		runShowConfig(cmd.OutOrStdout())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
