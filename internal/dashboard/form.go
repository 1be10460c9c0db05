// Package dashboard is the interactive terminal dashboard: a huh form that
// collects the simulation parameters and a Bubble Tea view of the results.
package dashboard

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/mwiater/codsim/internal/presenter"
	"github.com/mwiater/codsim/internal/simulation"
	"golang.org/x/term"
)

// formValues holds the selections a parameter form edits.
type formValues struct {
	strategy   string
	taskType   string
	model      string
	tokenLimit int
}

func valuesFrom(req simulation.Request) *formValues {
	return &formValues{
		strategy:   string(req.Strategy),
		taskType:   string(req.TaskType),
		model:      string(req.Model),
		tokenLimit: req.TokenLimit,
	}
}

func (v *formValues) request() (simulation.Request, error) {
	return simulation.NewRequest(v.strategy, v.taskType, v.model, v.tokenLimit)
}

// newParamForm builds the parameter form bound to v.
func newParamForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(presenter.Heading).
				Description(presenter.Description),
			huh.NewSelect[string]().
				Title("Choose Prompting Strategy").
				Options(strategyOptions()...).
				Inline(true).
				Value(&v.strategy),
			huh.NewSelect[string]().
				Title("Select Task Type").
				Options(taskTypeOptions()...).
				Value(&v.taskType),
			huh.NewSelect[string]().
				Title("Select Model").
				Options(modelOptions()...).
				Value(&v.model),
			huh.NewSelect[int]().
				Title("Set Token Limit per Step").
				Description(fmt.Sprintf("%d to %d in steps of %d", simulation.MinTokenLimit, simulation.MaxTokenLimit, simulation.TokenLimitStep)).
				Options(tokenLimitOptions()...).
				Value(&v.tokenLimit),
		),
	)
}

// PromptRequest runs the parameter form, starting from defaults, and returns
// the validated selections.
func PromptRequest(in io.Reader, out io.Writer, defaults simulation.Request) (simulation.Request, error) {
	values := valuesFrom(defaults)
	form := newParamForm(values).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return simulation.Request{}, fmt.Errorf("parameter form failed: %w", err)
	}
	return values.request()
}

func strategyOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(simulation.Strategies))
	for _, s := range simulation.Strategies {
		opts = append(opts, huh.NewOption(s.Label(), string(s)))
	}
	return opts
}

func taskTypeOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(simulation.TaskTypes))
	for _, t := range simulation.TaskTypes {
		opts = append(opts, huh.NewOption(t.Label(), string(t)))
	}
	return opts
}

func modelOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(simulation.Models))
	for _, m := range simulation.Models {
		opts = append(opts, huh.NewOption(m.Label(), string(m)))
	}
	return opts
}

func tokenLimitOptions() []huh.Option[int] {
	limits := simulation.TokenLimitOptions()
	opts := make([]huh.Option[int], 0, len(limits))
	for _, v := range limits {
		opts = append(opts, huh.NewOption(strconv.Itoa(v), v))
	}
	return opts
}
