// internal/cli/list.go
package codsim

import "github.com/spf13/cobra"

// listCmd represents the 'list' command group.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing options and commands",
	Long:  `The 'list' command groups subcommands that list the available form options or the command tree. It performs no action on its own.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
