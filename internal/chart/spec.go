// internal/chart/spec.go
// Package chart describes the twin-axis strategy comparison chart and
// renders it for terminals, PNG files and Chart.js pages.
package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/mwiater/codsim/internal/presenter"
)

// AxisSide selects which y axis a series is plotted against.
type AxisSide string

const (
	AxisLeft  AxisSide = "left"
	AxisRight AxisSide = "right"
)

// LegendPosition places a series legend inside the plot area.
type LegendPosition string

const (
	LegendUpperLeft  LegendPosition = "upper left"
	LegendUpperRight LegendPosition = "upper right"
)

// Axis is a y axis with fixed bounds.
type Axis struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Series is one bar series drawn across every category.
type Series struct {
	Label  string         `json:"label"`
	Values []float64      `json:"values"`
	Color  color.NRGBA    `json:"-"`
	Alpha  float64        `json:"alpha"`
	Axis   AxisSide       `json:"axis"`
	Legend LegendPosition `json:"legend"`
}

// CSS returns the series colour as an rgba() value with its alpha applied.
func (s Series) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", s.Color.R, s.Color.G, s.Color.B, s.Alpha)
}

// Hex returns the opaque series colour as #rrggbb.
func (s Series) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B)
}

// Spec is a complete description of the comparison chart.
type Spec struct {
	Categories []string `json:"categories"`
	Accuracy   Series   `json:"accuracy"`
	Tokens     Series   `json:"tokens"`
	LeftAxis   Axis     `json:"leftAxis"`
	RightAxis  Axis     `json:"rightAxis"`
}

var (
	accuracyColor = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	tokenColor    = color.NRGBA{R: 0, G: 128, B: 0, A: 255}
)

const barAlpha = 0.7

// FromTable builds the chart for a comparison table. Accuracy is plotted on
// a fixed 0-100 left axis; token usage on an unscaled right axis.
func FromTable(table [3]presenter.ComparisonRow) Spec {
	categories := make([]string, 0, len(table))
	accuracies := make([]float64, 0, len(table))
	tokens := make([]float64, 0, len(table))
	maxTokens := 0.0
	for _, row := range table {
		categories = append(categories, row.Label)
		accuracies = append(accuracies, row.Accuracy)
		tokens = append(tokens, float64(row.TokenUsage))
		maxTokens = math.Max(maxTokens, float64(row.TokenUsage))
	}

	return Spec{
		Categories: categories,
		Accuracy: Series{
			Label:  "Accuracy",
			Values: accuracies,
			Color:  accuracyColor,
			Alpha:  barAlpha,
			Axis:   AxisLeft,
			Legend: LegendUpperLeft,
		},
		Tokens: Series{
			Label:  "Token Usage",
			Values: tokens,
			Color:  tokenColor,
			Alpha:  barAlpha,
			Axis:   AxisRight,
			Legend: LegendUpperRight,
		},
		LeftAxis:  Axis{Label: "Accuracy (%)", Min: 0, Max: 100},
		RightAxis: Axis{Label: "Token Usage", Min: 0, Max: niceCeil(maxTokens * 1.05)},
	}
}

// niceCeil rounds v up to a 1, 2 or 5 multiple of its power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 10
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if candidate := m * exp; candidate >= v {
			return candidate
		}
	}
	return 10 * exp
}

// scale maps v in [axis.Min, axis.Max] onto [0, length], clamped.
func scale(v float64, axis Axis, length float64) float64 {
	span := axis.Max - axis.Min
	if span <= 0 {
		return 0
	}
	frac := (v - axis.Min) / span
	frac = math.Max(0, math.Min(1, frac))
	return frac * length
}
