// internal/chart/terminal.go
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultTerminalWidth = 60
	labelColumnWidth     = 10
	valueColumnWidth     = 8
)

// RenderTerminal draws the chart as paired horizontal bars. Each category
// gets an accuracy bar scaled to the left axis and a token bar scaled to
// the right axis.
func RenderTerminal(spec Spec, width int) string {
	if width <= 0 {
		width = defaultTerminalWidth
	}
	barWidth := width - labelColumnWidth - valueColumnWidth
	if barWidth < 10 {
		barWidth = 10
	}

	accStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(spec.Accuracy.Hex()))
	tokStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(spec.Tokens.Hex()))
	labelStyle := lipgloss.NewStyle().Width(labelColumnWidth).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	leftLegend := accStyle.Render("█") + " " + spec.Accuracy.Label
	rightLegend := spec.Tokens.Label + " " + tokStyle.Render("▓")
	total := labelColumnWidth + barWidth + valueColumnWidth
	gap := total - lipgloss.Width(leftLegend) - lipgloss.Width(rightLegend)
	if gap < 1 {
		gap = 1
	}

	var b strings.Builder
	b.WriteString(leftLegend + strings.Repeat(" ", gap) + rightLegend + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s: %g-%g   %s: %g-%g",
		spec.LeftAxis.Label, spec.LeftAxis.Min, spec.LeftAxis.Max,
		spec.RightAxis.Label, spec.RightAxis.Min, spec.RightAxis.Max)) + "\n\n")

	for i, category := range spec.Categories {
		acc := spec.Accuracy.Values[i]
		tok := spec.Tokens.Values[i]

		accLen := int(math.Round(scale(acc, spec.LeftAxis, float64(barWidth))))
		tokLen := int(math.Round(scale(tok, spec.RightAxis, float64(barWidth))))

		accBar := accStyle.Render(strings.Repeat("█", accLen)) + strings.Repeat(" ", barWidth-accLen)
		tokBar := tokStyle.Render(strings.Repeat("▓", tokLen)) + strings.Repeat(" ", barWidth-tokLen)

		b.WriteString(labelStyle.Render(category) + accBar + fmt.Sprintf(" %6.2f", acc) + "\n")
		b.WriteString(labelStyle.Render("") + tokBar + fmt.Sprintf(" %6.0f", tok) + "\n")
	}
	return b.String()
}
