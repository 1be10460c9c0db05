package dashboard

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/codsim/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRequest = simulation.Request{
	Strategy:   simulation.ChainOfDraft,
	TaskType:   simulation.Arithmetic,
	Model:      simulation.ModelA,
	TokenLimit: 20,
}

func keyPress(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func newTestModel(t *testing.T, next simulation.Result) (*model, map[string][]byte) {
	t.Helper()
	sim := simulation.SimulatorFunc(func(simulation.Request) simulation.Result { return next })
	m := newModel(sim, testRequest, simulation.Result{Accuracy: 90, TokenUsage: 20, Latency: 1.0}, "out/results.csv", "out/chart.png")
	written := map[string][]byte{}
	m.writeFile = func(path string, data []byte) error {
		written[path] = data
		return nil
	}
	return m, written
}

func TestViewBeforeWindowSize(t *testing.T) {
	m, _ := newTestModel(t, simulation.Result{})
	assert.Equal(t, "Initializing...", m.View())
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, simulation.Result{})
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	assert.Nil(t, cmd)
	m = updated.(*model)
	assert.Equal(t, 100, m.width)

	view := m.View()
	for _, want := range []string{
		"Chain of Draft Implementation",
		"Prompting Strategy: Chain-of-Draft",
		"Accuracy: 90.00%",
		"Token Usage: 20 tokens",
		"Latency: 1.00 seconds",
		"Comparison with Other Strategies",
		"CoD",
		"CoT",
		"Standard",
		"85.00",
		"60",
		"Deployment Tips",
		"rerun",
		"quit",
	} {
		assert.Contains(t, view, want)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyPress("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m, _ := newTestModel(t, simulation.Result{})
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
	}
}

func TestRerun(t *testing.T) {
	next := simulation.Result{Accuracy: 95.5, TokenUsage: 33, Latency: 0.8}
	m, _ := newTestModel(t, next)

	_, cmd := m.Update(keyPress("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Running simulation...", m.status)

	msg := cmd()
	require.Equal(t, simulatedMsg{result: next}, msg)

	m.Update(msg)
	assert.Equal(t, next, m.pres.Result)
	assert.Equal(t, "Simulation complete.", m.status)

	rows := m.table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"CoD", "95.50", "33"}, []string(rows[0]))
	assert.Equal(t, []string{"CoT", "90.50", "66"}, []string(rows[1]))
	assert.Equal(t, []string{"Standard", "85.50", "99"}, []string(rows[2]))
}

func TestParamsKeyOpensForm(t *testing.T) {
	m, _ := newTestModel(t, simulation.Result{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	_, cmd := m.Update(keyPress("p"))
	require.NotNil(t, cmd)
	require.NotNil(t, m.form)
	assert.Equal(t, valuesFrom(testRequest), m.values)

	view := m.View()
	assert.Contains(t, view, "Select Model")
	assert.NotContains(t, view, "Comparison with Other Strategies")

	// Keys go to the form while it is open.
	m.Update(keyPress("q"))
	assert.NotNil(t, m.form)
}

func TestParamsCancelKeepsRequest(t *testing.T) {
	m, _ := newTestModel(t, simulation.Result{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m.Update(keyPress("p"))
	require.NotNil(t, m.form)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, m.form)
	assert.Equal(t, testRequest, m.req)
	assert.Equal(t, "Parameters unchanged.", m.status)
	assert.Contains(t, m.View(), "Comparison with Other Strategies")
}

func TestApplyParamsSimulatesEditedRequest(t *testing.T) {
	next := simulation.Result{Accuracy: 70, TokenUsage: 15, Latency: 1.5}
	m, _ := newTestModel(t, next)
	m.openParams()
	m.values.strategy = string(simulation.ChainOfThought)
	m.values.model = string(simulation.ModelB)
	m.values.tokenLimit = 45

	cmd := m.applyParams()
	require.NotNil(t, cmd)
	assert.Nil(t, m.form)
	assert.Equal(t, simulation.Request{
		Strategy:   simulation.ChainOfThought,
		TaskType:   simulation.Arithmetic,
		Model:      simulation.ModelB,
		TokenLimit: 45,
	}, m.req)

	m.Update(cmd())
	assert.Equal(t, "Simulation complete.", m.status)
	assert.Contains(t, m.pres.Summary, "Prompting Strategy: Chain-of-Thought")
	assert.Contains(t, m.pres.Summary, "Model: Claude 3.5 Sonnet")
}

func TestApplyParamsRejectsInvalidLimit(t *testing.T) {
	m, _ := newTestModel(t, simulation.Result{})
	m.openParams()
	m.values.tokenLimit = 0

	assert.Nil(t, m.applyParams())
	require.ErrorIs(t, m.err, simulation.ErrInvalidRequest)
	assert.Equal(t, testRequest, m.req)
}

func TestExportWritesCSV(t *testing.T) {
	m, written := newTestModel(t, simulation.Result{})

	_, cmd := m.Update(keyPress("e"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, savedMsg{kind: "results", path: "out/results.csv"}, msg)
	assert.Equal(t, "accuracy,token_usage,latency\n90.0,20,1.0\n", string(written["out/results.csv"]))

	m.Update(msg)
	assert.Equal(t, "Saved results to out/results.csv", m.status)
}

func TestChartWritesPNG(t *testing.T) {
	m, written := newTestModel(t, simulation.Result{})

	_, cmd := m.Update(keyPress("c"))
	require.NotNil(t, cmd)
	require.Equal(t, savedMsg{kind: "chart", path: "out/chart.png"}, cmd())
	assert.True(t, bytes.HasPrefix(written["out/chart.png"], []byte("\x89PNG\r\n\x1a\n")))
}

func TestSaveErrorIsShown(t *testing.T) {
	m, _ := newTestModel(t, simulation.Result{})
	m.writeFile = func(string, []byte) error { return errors.New("disk full") }
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	_, cmd := m.Update(keyPress("e"))
	msg := cmd()
	_, ok := msg.(saveErr)
	require.True(t, ok)

	m.Update(msg)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "disk full")
	assert.NotContains(t, m.View(), "Deployment Tips")
}

func TestFormOptions(t *testing.T) {
	strategies := strategyOptions()
	require.Len(t, strategies, 3)
	assert.Equal(t, "Chain-of-Draft", strategies[0].Key)
	assert.Equal(t, "ChainOfDraft", strategies[0].Value)

	assert.Len(t, taskTypeOptions(), 3)
	models := modelOptions()
	require.Len(t, models, 2)
	assert.Equal(t, "Claude 3.5 Sonnet", models[1].Key)

	limits := tokenLimitOptions()
	require.Len(t, limits, 20)
	assert.Equal(t, 5, limits[0].Value)
	assert.Equal(t, "100", limits[19].Key)
}

func TestRunRequiresSimulator(t *testing.T) {
	err := Run(context.Background(), Options{Defaults: testRequest})
	require.Error(t, err)
}
