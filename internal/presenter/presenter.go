// internal/presenter/presenter.go
// Package presenter turns a simulation result into the summary text,
// strategy comparison table and CSV export shown to the user.
package presenter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mwiater/codsim/internal/simulation"
)

const (
	// ExportFileName is the suggested name for downloaded exports.
	ExportFileName = "simulation_results.csv"
	// ExportMIMEType is the content type of ExportCSV output.
	ExportMIMEType = "text/csv"
)

// ExportHeader is the CSV header row, in column order.
var ExportHeader = []string{"accuracy", "token_usage", "latency"}

// ComparisonRow is one bar group of the strategy comparison.
type ComparisonRow struct {
	Label      string  `json:"label"`
	Accuracy   float64 `json:"accuracy"`
	TokenUsage int     `json:"token_usage"`
}

// Presentation bundles everything rendered for a single run.
type Presentation struct {
	Request simulation.Request `json:"request"`
	Result  simulation.Result  `json:"result"`
	Summary string             `json:"summary"`
	Table   [3]ComparisonRow   `json:"table"`
	Export  []byte             `json:"-"`
}

// Present builds the summary, comparison table and CSV export for res.
func Present(req simulation.Request, res simulation.Result) Presentation {
	return Presentation{
		Request: req,
		Result:  res,
		Summary: Summary(req, res),
		Table:   Compare(res),
		Export:  ExportCSV(res),
	}
}

// Compare derives the three comparison rows from a single result. The CoD
// row is the result itself; CoT and Standard apply fixed offsets. Derived
// accuracies are not clamped.
func Compare(res simulation.Result) [3]ComparisonRow {
	return [3]ComparisonRow{
		{Label: simulation.ChainOfDraft.Short(), Accuracy: res.Accuracy, TokenUsage: res.TokenUsage},
		{Label: simulation.ChainOfThought.Short(), Accuracy: res.Accuracy - 5, TokenUsage: res.TokenUsage * 2},
		{Label: simulation.Standard.Short(), Accuracy: res.Accuracy - 10, TokenUsage: res.TokenUsage * 3},
	}
}

// Summary restates the selections, then the rounded metrics.
func Summary(req simulation.Request, res simulation.Result) string {
	var b strings.Builder
	b.WriteString("Simulating with the following parameters:\n")
	fmt.Fprintf(&b, "Prompting Strategy: %s\n", req.Strategy.Label())
	fmt.Fprintf(&b, "Task Type: %s\n", req.TaskType.Label())
	fmt.Fprintf(&b, "Model: %s\n", req.Model.Label())
	b.WriteString("\nSimulation Results\n")
	fmt.Fprintf(&b, "Accuracy: %s\n", FormatAccuracy(res.Accuracy))
	fmt.Fprintf(&b, "Token Usage: %s\n", FormatTokens(res.TokenUsage))
	fmt.Fprintf(&b, "Latency: %s\n", FormatLatency(res.Latency))
	return b.String()
}

// FormatAccuracy renders an accuracy percentage for display.
func FormatAccuracy(v float64) string { return fmt.Sprintf("%.2f%%", v) }

// FormatTokens renders a token count for display.
func FormatTokens(v int) string { return fmt.Sprintf("%d tokens", v) }

// FormatLatency renders a latency in seconds for display.
func FormatLatency(v float64) string { return fmt.Sprintf("%.2f seconds", v) }

// ExportCSV serializes the original result (not the comparison table) as a
// header row plus one data row. Floats keep full precision.
func ExportCSV(res simulation.Result) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(ExportHeader)
	_ = w.Write([]string{
		FormatFloat(res.Accuracy),
		strconv.Itoa(res.TokenUsage),
		FormatFloat(res.Latency),
	})
	w.Flush()
	return buf.Bytes()
}

// ParseExport reads a CSV produced by ExportCSV back into a Result.
func ParseExport(data []byte) (simulation.Result, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return simulation.Result{}, fmt.Errorf("parse export: %w", err)
	}
	if len(records) != 2 {
		return simulation.Result{}, fmt.Errorf("parse export: expected header and 1 row, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(ExportHeader, ",") {
		return simulation.Result{}, fmt.Errorf("parse export: unexpected header %v", records[0])
	}
	row := records[1]
	accuracy, err := strconv.ParseFloat(row[0], 64)
	if err != nil {
		return simulation.Result{}, fmt.Errorf("parse export accuracy: %w", err)
	}
	tokens, err := strconv.Atoi(row[1])
	if err != nil {
		return simulation.Result{}, fmt.Errorf("parse export token_usage: %w", err)
	}
	latency, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return simulation.Result{}, fmt.Errorf("parse export latency: %w", err)
	}
	return simulation.Result{Accuracy: accuracy, TokenUsage: tokens, Latency: latency}, nil
}

// FormatFloat renders v in its shortest round-trip form, keeping a ".0"
// suffix on integral values so the column still reads as a float.
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ExportJSON renders the presentation, including the CSV text, as JSON.
func ExportJSON(p Presentation) ([]byte, error) {
	payload := struct {
		Presentation
		CSV string `json:"csv"`
	}{Presentation: p, CSV: string(p.Export)}
	return json.MarshalIndent(payload, "", "  ")
}
