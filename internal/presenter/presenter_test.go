package presenter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mwiater/codsim/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRequest = simulation.Request{
	Strategy:   simulation.ChainOfDraft,
	TaskType:   simulation.Commonsense,
	Model:      simulation.ModelB,
	TokenLimit: 20,
}

func TestCompareScenario(t *testing.T) {
	res := simulation.Result{Accuracy: 90.0, TokenUsage: 20, Latency: 1.0}

	want := [3]ComparisonRow{
		{Label: "CoD", Accuracy: 90.0, TokenUsage: 20},
		{Label: "CoT", Accuracy: 85.0, TokenUsage: 40},
		{Label: "Standard", Accuracy: 80.0, TokenUsage: 60},
	}
	assert.Equal(t, want, Compare(res))
}

func TestCompareDoesNotClampDerivedRows(t *testing.T) {
	table := Compare(simulation.Result{Accuracy: 82.0, TokenUsage: 10, Latency: 0.5})
	assert.Equal(t, 72.0, table[2].Accuracy)

	low := Compare(simulation.Result{Accuracy: 3.0, TokenUsage: 1, Latency: 0.5})
	assert.Equal(t, -7.0, low[2].Accuracy)
	assert.Equal(t, -2.0, low[1].Accuracy)
}

func TestCompareDerivationHoldsForSimulatedResults(t *testing.T) {
	sim := simulation.NewRandomSimulator(5)
	for i := 0; i < 200; i++ {
		r := sim.Simulate(sampleRequest)
		table := Compare(r)
		require.Equal(t, r.Accuracy, table[0].Accuracy)
		require.Equal(t, r.Accuracy-5, table[1].Accuracy)
		require.Equal(t, r.Accuracy-10, table[2].Accuracy)
		require.Equal(t, r.TokenUsage, table[0].TokenUsage)
		require.Equal(t, 2*r.TokenUsage, table[1].TokenUsage)
		require.Equal(t, 3*r.TokenUsage, table[2].TokenUsage)
	}
}

func TestExportCSVScenario(t *testing.T) {
	got := ExportCSV(simulation.Result{Accuracy: 90.0, TokenUsage: 20, Latency: 1.0})
	assert.Equal(t, "accuracy,token_usage,latency\n90.0,20,1.0\n", string(got))
}

func TestExportCSVRoundTrip(t *testing.T) {
	sim := simulation.NewRandomSimulator(17)
	for i := 0; i < 100; i++ {
		r := sim.Simulate(sampleRequest)
		data := ExportCSV(r)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, ExportHeader, records[0])

		parsed, err := ParseExport(data)
		require.NoError(t, err)
		require.Equal(t, r, parsed)
	}
}

func TestExportKeepsFullPrecision(t *testing.T) {
	r := simulation.Result{Accuracy: 93.123456789012, TokenUsage: 33, Latency: 1.23456789}
	line := strings.Split(string(ExportCSV(r)), "\n")[1]
	assert.Equal(t, "93.123456789012,33,1.23456789", line)
}

func TestPresentIsIdempotent(t *testing.T) {
	r := simulation.Result{Accuracy: 88.8, TokenUsage: 44, Latency: 0.75}
	first := Present(sampleRequest, r)
	second := Present(sampleRequest, r)

	assert.Equal(t, first.Table, second.Table)
	assert.True(t, bytes.Equal(first.Export, second.Export))
	assert.Equal(t, first.Summary, second.Summary)
}

func TestSummaryRestatesSelectionsBeforeMetrics(t *testing.T) {
	summary := Summary(sampleRequest, simulation.Result{Accuracy: 91.236, TokenUsage: 27, Latency: 1.005})

	strategyIdx := strings.Index(summary, "Prompting Strategy: Chain-of-Draft")
	taskIdx := strings.Index(summary, "Task Type: Commonsense Reasoning")
	modelIdx := strings.Index(summary, "Model: Claude 3.5 Sonnet")
	accuracyIdx := strings.Index(summary, "Accuracy: 91.24%")

	require.NotEqual(t, -1, strategyIdx, summary)
	require.NotEqual(t, -1, taskIdx, summary)
	require.NotEqual(t, -1, modelIdx, summary)
	require.NotEqual(t, -1, accuracyIdx, summary)
	assert.Less(t, strategyIdx, taskIdx)
	assert.Less(t, taskIdx, modelIdx)
	assert.Less(t, modelIdx, accuracyIdx)
	assert.Contains(t, summary, "Token Usage: 27 tokens")
	assert.Contains(t, summary, "Latency: 1.00 seconds")
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{90, "90.0"},
		{0, "0.0"},
		{-7, "-7.0"},
		{0.5, "0.5"},
		{1.25, "1.25"},
		{0.00001, "1e-05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

func TestParseExportRejectsMalformed(t *testing.T) {
	_, err := ParseExport([]byte("accuracy,token_usage,latency\n"))
	assert.Error(t, err)
	_, err = ParseExport([]byte("a,b,c\n1,2,3\n"))
	assert.Error(t, err)
	_, err = ParseExport([]byte("accuracy,token_usage,latency\nx,2,3\n"))
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	p := Present(sampleRequest, simulation.Result{Accuracy: 90, TokenUsage: 20, Latency: 1})
	data, err := ExportJSON(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "accuracy,token_usage,latency\n90.0,20,1.0\n", decoded["csv"])
	assert.Contains(t, decoded, "table")
	assert.Contains(t, decoded, "summary")
	assert.NotContains(t, decoded, "Export")
}
