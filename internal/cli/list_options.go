// internal/cli/list_options.go
package codsim

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/codsim/internal/simulation"
	"github.com/spf13/cobra"
)

// optionsCmd implements 'list options', which prints every valid value of
// the simulation form fields.
var optionsCmd = &cobra.Command{
	Use:     "options",
	Aliases: []string{"opts"},
	Short:   "List valid strategies, task types, models and token limits",
	Long:    `The 'options' subcommand prints every value accepted by --strategy, --taskType, --model and --tokenLimit, with the label shown in the dashboards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListOptions(cmd.OutOrStdout(), GetConfig().JSONMode)
	},
}

func init() {
	listCmd.AddCommand(optionsCmd)
}

type optionValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type optionList struct {
	Strategies  []optionValue `json:"strategies"`
	TaskTypes   []optionValue `json:"taskTypes"`
	Models      []optionValue `json:"models"`
	TokenLimits []int         `json:"tokenLimits"`
}

func collectOptions() optionList {
	var opts optionList
	for _, s := range simulation.Strategies {
		opts.Strategies = append(opts.Strategies, optionValue{Value: string(s), Label: s.Label()})
	}
	for _, t := range simulation.TaskTypes {
		opts.TaskTypes = append(opts.TaskTypes, optionValue{Value: string(t), Label: t.Label()})
	}
	for _, m := range simulation.Models {
		opts.Models = append(opts.Models, optionValue{Value: string(m), Label: m.Label()})
	}
	opts.TokenLimits = simulation.TokenLimitOptions()
	return opts
}

func runListOptions(out io.Writer, jsonMode bool) error {
	opts := collectOptions()
	if jsonMode {
		data, err := json.MarshalIndent(opts, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printGroup := func(title string, values []optionValue) {
		headingColor.Fprintln(out, title)
		for _, v := range values {
			fmt.Fprintf(out, "  %-16s %s\n", v.Value, v.Label)
		}
	}
	printGroup("Prompting Strategies:", opts.Strategies)
	printGroup("Task Types:", opts.TaskTypes)
	printGroup("Models:", opts.Models)

	limits := make([]string, 0, len(opts.TokenLimits))
	for _, v := range opts.TokenLimits {
		limits = append(limits, fmt.Sprint(v))
	}
	headingColor.Fprintln(out, "Token Limits:")
	fmt.Fprintf(out, "  %s (default %d)\n", strings.Join(limits, ", "), simulation.DefaultTokenLimit)
	return nil
}
