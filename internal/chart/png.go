// internal/chart/png.go
package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// DefaultPNGWidth is the default rendered chart width in pixels.
	DefaultPNGWidth = 640
	// DefaultPNGHeight is the default rendered chart height in pixels.
	DefaultPNGHeight = 480

	marginLeft   = 70.0
	marginRight  = 70.0
	marginTop    = 30.0
	marginBottom = 50.0
	axisTicks    = 5
)

func loadFontFace(points float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse chart font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

// RenderPNG draws the twin-axis bar chart and returns the encoded PNG.
// Both series share each category slot and overlap; their fills are
// semi-transparent so either stays readable.
func RenderPNG(spec Spec, width, height int) ([]byte, error) {
	if width <= 0 {
		width = DefaultPNGWidth
	}
	if height <= 0 {
		height = DefaultPNGHeight
	}
	face, err := loadFontFace(12)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(face)

	plotX := marginLeft
	plotY := marginTop
	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom
	if plotW <= 0 || plotH <= 0 {
		return nil, fmt.Errorf("chart size %dx%d is too small", width, height)
	}
	baseline := plotY + plotH

	drawAxes(dc, spec, plotX, plotY, plotW, plotH)

	n := len(spec.Categories)
	if n > 0 {
		slot := plotW / float64(n)
		barW := slot * 0.8
		for i, category := range spec.Categories {
			x := plotX + slot*float64(i) + (slot-barW)/2

			accH := scale(spec.Accuracy.Values[i], spec.LeftAxis, plotH)
			setSeriesColor(dc, spec.Accuracy)
			dc.DrawRectangle(x, baseline-accH, barW, accH)
			dc.Fill()

			tokH := scale(spec.Tokens.Values[i], spec.RightAxis, plotH)
			setSeriesColor(dc, spec.Tokens)
			dc.DrawRectangle(x, baseline-tokH, barW, tokH)
			dc.Fill()

			dc.SetColor(color.Black)
			dc.DrawStringAnchored(category, x+barW/2, baseline+16, 0.5, 0.5)
		}
	}

	drawLegend(dc, spec.Accuracy, plotX+8, plotY+8, false)
	drawLegend(dc, spec.Tokens, plotX+plotW-8, plotY+8, true)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func setSeriesColor(dc *gg.Context, s Series) {
	dc.SetRGBA255(int(s.Color.R), int(s.Color.G), int(s.Color.B), int(s.Alpha*255))
}

func drawAxes(dc *gg.Context, spec Spec, x, y, w, h float64) {
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	for i := 0; i <= axisTicks; i++ {
		frac := float64(i) / axisTicks
		ty := y + h - frac*h

		left := spec.LeftAxis.Min + frac*(spec.LeftAxis.Max-spec.LeftAxis.Min)
		dc.DrawLine(x-4, ty, x, ty)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%g", left), x-8, ty, 1, 0.35)

		right := spec.RightAxis.Min + frac*(spec.RightAxis.Max-spec.RightAxis.Min)
		dc.DrawLine(x+w, ty, x+w+4, ty)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%g", right), x+w+8, ty, 0, 0.35)
	}

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 18, y+h/2)
	dc.DrawStringAnchored(spec.LeftAxis.Label, 18, y+h/2, 0.5, 0.5)
	dc.Pop()

	rx := x + w + marginRight - 14
	dc.Push()
	dc.RotateAbout(gg.Radians(90), rx, y+h/2)
	dc.DrawStringAnchored(spec.RightAxis.Label, rx, y+h/2, 0.5, 0.5)
	dc.Pop()
}

// drawLegend draws a swatch and label anchored at (x, y). When alignRight is
// set, x is the legend's right edge.
func drawLegend(dc *gg.Context, s Series, x, y float64, alignRight bool) {
	const swatch = 12.0
	tw, _ := dc.MeasureString(s.Label)
	boxW := swatch + 6 + tw + 12
	boxH := swatch + 10
	if alignRight {
		x -= boxW
	}

	dc.SetRGBA(1, 1, 1, 0.85)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Fill()
	dc.SetRGB(0.8, 0.8, 0.8)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Stroke()

	setSeriesColor(dc, s)
	dc.DrawRectangle(x+6, y+5, swatch, swatch)
	dc.Fill()

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(s.Label, x+6+swatch+6, y+boxH/2, 0, 0.35)
}
