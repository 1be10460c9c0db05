// internal/chart/html.go
package chart

import (
	"bytes"
	"encoding/json"
	"html/template"
)

// ChartJSConfig returns a Chart.js bar chart configuration with accuracy on
// the left "y" axis and token usage on the right "y1" axis. The built-in
// legend is disabled; pages draw the two legends themselves.
func (s Spec) ChartJSConfig() map[string]any {
	return map[string]any{
		"type": "bar",
		"data": map[string]any{
			"labels": s.Categories,
			"datasets": []map[string]any{
				{
					"label":           s.Accuracy.Label,
					"data":            s.Accuracy.Values,
					"backgroundColor": s.Accuracy.CSS(),
					"yAxisID":         "y",
					"grouped":         false,
				},
				{
					"label":           s.Tokens.Label,
					"data":            s.Tokens.Values,
					"backgroundColor": s.Tokens.CSS(),
					"yAxisID":         "y1",
					"grouped":         false,
				},
			},
		},
		"options": map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"plugins": map[string]any{
				"legend": map[string]any{"display": false},
			},
			"scales": map[string]any{
				"y": map[string]any{
					"position": "left",
					"min":      s.LeftAxis.Min,
					"max":      s.LeftAxis.Max,
					"title":    map[string]any{"display": true, "text": s.LeftAxis.Label},
				},
				"y1": map[string]any{
					"position": "right",
					"min":      s.RightAxis.Min,
					"max":      s.RightAxis.Max,
					"grid":     map[string]any{"drawOnChartArea": false},
					"title":    map[string]any{"display": true, "text": s.RightAxis.Label},
				},
			},
		},
	}
}

type htmlReportData struct {
	Title       string
	Summary     string
	Accuracy    Series
	Tokens      Series
	AccuracyCSS template.CSS
	TokensCSS   template.CSS
	ChartConfig template.JS
}

// RenderHTML renders a standalone page containing the chart.
func RenderHTML(spec Spec, title, summary string) (string, error) {
	payload, err := json.Marshal(spec.ChartJSConfig())
	if err != nil {
		return "", err
	}

	view := htmlReportData{
		Title:       title,
		Summary:     summary,
		Accuracy:    spec.Accuracy,
		Tokens:      spec.Tokens,
		AccuracyCSS: template.CSS(spec.Accuracy.CSS()),
		TokensCSS:   template.CSS(spec.Tokens.CSS()),
		ChartConfig: template.JS(payload),
	}

	var buf bytes.Buffer
	if err := htmlReportTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var htmlReportTemplate = template.Must(template.New("chart-report").Parse(htmlReportTemplateHTML))

const htmlReportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: sans-serif; background: #F1F5F9; color: #0F172A; margin: 2rem; }
    .chart-card { background: #FFFFFF; border-radius: 16px; padding: 1.5rem; border: 1px solid #E2E8F0; }
    .chart-canvas { position: relative; height: 420px; }
    .legend-row { display: flex; justify-content: space-between; margin-bottom: 0.75rem; }
    .legend-item { display: flex; align-items: center; gap: 0.5rem; }
    .legend-color { width: 14px; height: 14px; border-radius: 3px; }
    pre { background: #FFFFFF; padding: 1rem; border: 1px solid #E2E8F0; border-radius: 8px; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  {{ if .Summary }}<pre>{{ .Summary }}</pre>{{ end }}
  <div class="chart-card">
    <div class="legend-row">
      <div class="legend-item"><div class="legend-color" style="background: {{ .AccuracyCSS }};"></div><span>{{ .Accuracy.Label }}</span></div>
      <div class="legend-item"><span>{{ .Tokens.Label }}</span><div class="legend-color" style="background: {{ .TokensCSS }};"></div></div>
    </div>
    <div class="chart-canvas">
      <canvas id="comparisonChart" aria-label="Strategy comparison chart" role="img"></canvas>
    </div>
  </div>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"></script>
  <script>
    new Chart(document.getElementById('comparisonChart'), {{ .ChartConfig }});
  </script>
</body>
</html>
`
