package dashboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/codsim/internal/chart"
	"github.com/mwiater/codsim/internal/logging"
	"github.com/mwiater/codsim/internal/presenter"
	"github.com/mwiater/codsim/internal/simulation"
	"github.com/mwiater/codsim/internal/util"
)

// Options configures a dashboard session.
type Options struct {
	Simulator  simulation.Simulator
	Defaults   simulation.Request
	ExportPath string
	ChartPath  string
	In         io.Reader
	Out        io.Writer
}

type keyMap struct {
	Rerun  key.Binding
	Params key.Binding
	Export key.Binding
	Chart  key.Binding
	Quit   key.Binding
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rerun, k.Params, k.Export, k.Chart, k.Quit}
}

// FullHelp returns the bindings grouped for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Rerun:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rerun")),
		Params: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "change parameters")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Chart:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "save chart png")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// simulatedMsg carries a fresh result for the current request.
type simulatedMsg struct {
	result simulation.Result
}

// savedMsg reports a file written by an export or chart command.
type savedMsg struct {
	kind string
	path string
}

// saveErr reports a failed write.
type saveErr struct{ error }

// model is the Bubble Tea results view.
type model struct {
	sim        simulation.Simulator
	req        simulation.Request
	pres       presenter.Presentation
	form       *huh.Form
	values     *formValues
	table      table.Model
	keys       keyMap
	help       help.Model
	exportPath string
	chartPath  string
	status     string
	err        error
	width      int
	height     int
	writeFile  func(path string, data []byte) error
}

func newModel(sim simulation.Simulator, req simulation.Request, res simulation.Result, exportPath, chartPath string) *model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Strategy", Width: 10},
			{Title: "Accuracy (%)", Width: 14},
			{Title: "Token Usage", Width: 12},
		}),
		table.WithHeight(6),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62"))
	t.SetStyles(styles)

	m := &model{
		sim:        sim,
		req:        req,
		table:      t,
		keys:       defaultKeyMap(),
		help:       help.New(),
		exportPath: exportPath,
		chartPath:  chartPath,
		writeFile:  util.WriteFile,
	}
	m.setResult(res)
	return m
}

func (m *model) setResult(res simulation.Result) {
	m.pres = presenter.Present(m.req, res)
	m.table.SetRows(tableRows(m.pres.Table))
}

func tableRows(rows [3]presenter.ComparisonRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{r.Label, fmt.Sprintf("%.2f", r.Accuracy), fmt.Sprintf("%d", r.TokenUsage)})
	}
	return out
}

func (m *model) simulateCmd() tea.Cmd {
	sim, req := m.sim, m.req
	return func() tea.Msg {
		return simulatedMsg{result: sim.Simulate(req)}
	}
}

func (m *model) exportCmd() tea.Cmd {
	path, data, write := m.exportPath, m.pres.Export, m.writeFile
	return func() tea.Msg {
		if err := write(path, data); err != nil {
			return saveErr{error: fmt.Errorf("export %s: %w", path, err)}
		}
		return savedMsg{kind: "results", path: path}
	}
}

func (m *model) chartCmd() tea.Cmd {
	path, rows, write := m.chartPath, m.pres.Table, m.writeFile
	return func() tea.Msg {
		data, err := chart.RenderPNG(chart.FromTable(rows), chart.DefaultPNGWidth, chart.DefaultPNGHeight)
		if err != nil {
			return saveErr{error: fmt.Errorf("render chart: %w", err)}
		}
		if err := write(path, data); err != nil {
			return saveErr{error: fmt.Errorf("save chart %s: %w", path, err)}
		}
		return savedMsg{kind: "chart", path: path}
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// openParams shows the parameter form over the results, seeded with the
// current request.
func (m *model) openParams() tea.Cmd {
	m.values = valuesFrom(m.req)
	m.form = newParamForm(m.values)
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}
	m.err = nil
	return m.form.Init()
}

// applyParams closes the form and simulates the edited request.
func (m *model) applyParams() tea.Cmd {
	m.form = nil
	req, err := m.values.request()
	if err != nil {
		m.status = ""
		m.err = err
		return nil
	}
	m.req = req
	m.status = "Running simulation..."
	return m.simulateCmd()
}

func (m *model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.help.Width = ws.Width
	}
	fm, cmd := m.form.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m, m.applyParams()
	case huh.StateAborted:
		m.form = nil
		m.status = "Parameters unchanged."
		return m, nil
	}
	return m, cmd
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Rerun):
			m.status = "Running simulation..."
			m.err = nil
			return m, m.simulateCmd()
		case key.Matches(msg, m.keys.Params):
			return m, m.openParams()
		case key.Matches(msg, m.keys.Export):
			m.err = nil
			return m, m.exportCmd()
		case key.Matches(msg, m.keys.Chart):
			m.err = nil
			return m, m.chartCmd()
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case simulatedMsg:
		m.setResult(msg.result)
		m.status = "Simulation complete."
		logging.LogSimulation("dashboard", m.req, msg.result)
		return m, nil

	case savedMsg:
		m.status = fmt.Sprintf("Saved %s to %s", msg.kind, msg.path)
		logging.LogEvent("dashboard saved %s to %s", msg.kind, msg.path)
		return m, nil

	case saveErr:
		m.status = ""
		m.err = msg.error
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).MarginTop(1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// View implements tea.Model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.form != nil {
		return m.form.View() + "\n" + tipStyle.Render("ctrl+c cancel")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(presenter.Title) + "\n\n")
	b.WriteString(m.pres.Summary)
	b.WriteString(sectionStyle.Render("Comparison with Other Strategies") + "\n")
	b.WriteString(m.table.View() + "\n")
	b.WriteString(sectionStyle.Render("Strategy Comparison Chart") + "\n")
	b.WriteString(chart.RenderTerminal(chart.FromTable(m.pres.Table), min(m.width-2, 100)))

	if m.height == 0 || m.height > 30 {
		b.WriteString(sectionStyle.Render("Deployment Tips") + "\n")
		for _, tip := range presenter.DeploymentTips {
			b.WriteString(tipStyle.Render(util.WrapToWidth("- "+tip, max(m.width-2, 20))) + "\n")
		}
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run collects parameters through the form, runs the first simulation and
// hands the result to the interactive results view.
func Run(ctx context.Context, opts Options) error {
	if opts.Simulator == nil {
		return fmt.Errorf("dashboard: simulator is required")
	}
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	req, err := PromptRequest(in, out, opts.Defaults)
	if err != nil {
		return err
	}
	res, err := simulation.Run(opts.Simulator, req)
	if err != nil {
		return err
	}
	logging.LogSimulation("dashboard", req, res)

	m := newModel(opts.Simulator, req, res, opts.ExportPath, opts.ChartPath)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
