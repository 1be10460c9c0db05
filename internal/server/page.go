package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mwiater/codsim/internal/presenter"
	"github.com/mwiater/codsim/internal/simulation"
)

type pageData struct {
	Title       string
	Heading     string
	Description string
	Tips        []string
	Options     OptionsResponse
	Defaults    simulation.Request
}

func (h *handlers) dashboard(c *gin.Context) {
	body, err := renderPage(h.cfg.Defaults)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "render_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func renderPage(defaults simulation.Request) ([]byte, error) {
	view := pageData{
		Title:       presenter.Title,
		Heading:     presenter.Heading,
		Description: presenter.Description,
		Tips:        presenter.DeploymentTips,
		Options:     buildOptions(defaults),
		Defaults:    defaults,
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("dashboard").Parse(pageTemplateHTML))

const pageTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: sans-serif; background: #F1F5F9; color: #0F172A; margin: 0; display: flex; min-height: 100vh; }
    aside { width: 300px; background: #FFFFFF; border-right: 1px solid #E2E8F0; padding: 1.5rem; }
    main { flex: 1; padding: 2rem; }
    fieldset { border: none; padding: 0; margin: 0 0 1rem 0; }
    label { display: block; margin-bottom: 0.25rem; }
    select, input[type=range] { width: 100%; }
    button { background: #2563EB; color: #FFFFFF; border: none; border-radius: 6px; padding: 0.6rem 1.2rem; cursor: pointer; }
    .card { background: #FFFFFF; border-radius: 16px; padding: 1.5rem; border: 1px solid #E2E8F0; margin-bottom: 1.5rem; }
    .chart-canvas { position: relative; height: 380px; }
    .legend-row { display: flex; justify-content: space-between; margin-bottom: 0.75rem; }
    .legend-item { display: flex; align-items: center; gap: 0.5rem; }
    .legend-color { width: 14px; height: 14px; border-radius: 3px; }
    table { border-collapse: collapse; width: 100%; }
    th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #E2E8F0; }
    pre { white-space: pre-wrap; margin: 0; }
    .error { color: #B91C1C; }
    .hidden { display: none; }
  </style>
</head>
<body>
  <aside>
    <h2>Parameters</h2>
    <form id="simForm">
      <fieldset>
        <legend>Prompting Strategy</legend>
        {{ range .Options.Strategies }}
        <label><input type="radio" name="strategy" value="{{ .Value }}"{{ if eq .Value (printf "%s" $.Defaults.Strategy) }} checked{{ end }}> {{ .Label }}</label>
        {{ end }}
      </fieldset>
      <fieldset>
        <label for="taskType">Task Type</label>
        <select id="taskType" name="taskType">
          {{ range .Options.TaskTypes }}<option value="{{ .Value }}"{{ if eq .Value (printf "%s" $.Defaults.TaskType) }} selected{{ end }}>{{ .Label }}</option>{{ end }}
        </select>
      </fieldset>
      <fieldset>
        <label for="model">Model</label>
        <select id="model" name="model">
          {{ range .Options.Models }}<option value="{{ .Value }}"{{ if eq .Value (printf "%s" $.Defaults.Model) }} selected{{ end }}>{{ .Label }}</option>{{ end }}
        </select>
      </fieldset>
      <fieldset>
        <label for="tokenLimit">Token Limit: <span id="tokenLimitValue">{{ .Defaults.TokenLimit }}</span></label>
        <input type="range" id="tokenLimit" name="tokenLimit" min="{{ .Options.TokenLimit.Min }}" max="{{ .Options.TokenLimit.Max }}" step="{{ .Options.TokenLimit.Step }}" value="{{ .Defaults.TokenLimit }}">
      </fieldset>
      <button type="submit">Run Simulation</button>
    </form>
  </aside>
  <main>
    <h1>{{ .Title }}</h1>
    <div class="card">
      <h2>{{ .Heading }}</h2>
      <p>{{ .Description }}</p>
    </div>
    <p id="error" class="error hidden"></p>
    <div id="results" class="hidden">
      <div class="card"><pre id="summary"></pre></div>
      <div class="card">
        <h3>Comparison with Other Strategies</h3>
        <table>
          <thead><tr><th>Strategy</th><th>Accuracy (%)</th><th>Token Usage</th></tr></thead>
          <tbody id="comparison"></tbody>
        </table>
      </div>
      <div class="card">
        <div class="legend-row">
          <div class="legend-item"><div class="legend-color" id="accuracyLegend"></div><span id="accuracyLabel"></span></div>
          <div class="legend-item"><span id="tokensLabel"></span><div class="legend-color" id="tokensLegend"></div></div>
        </div>
        <div class="chart-canvas"><canvas id="comparisonChart" aria-label="Strategy comparison chart" role="img"></canvas></div>
      </div>
      <div class="card">
        <a id="exportLink" href="#">Download Results as CSV</a> |
        <a id="chartLink" href="#" target="_blank">Chart as PNG</a>
      </div>
    </div>
    <div class="card">
      <h3>Deployment Tips</h3>
      <ul>{{ range .Tips }}<li>{{ . }}</li>{{ end }}</ul>
    </div>
  </main>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"></script>
  <script>
    const form = document.getElementById('simForm');
    const slider = document.getElementById('tokenLimit');
    const errorBox = document.getElementById('error');
    let chart = null;

    slider.addEventListener('input', () => {
      document.getElementById('tokenLimitValue').textContent = slider.value;
    });

    form.addEventListener('submit', async (event) => {
      event.preventDefault();
      errorBox.classList.add('hidden');
      const payload = {
        strategy: form.querySelector('input[name=strategy]:checked').value,
        taskType: document.getElementById('taskType').value,
        model: document.getElementById('model').value,
        tokenLimit: Number(slider.value),
      };
      const resp = await fetch('/api/simulate', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(payload),
      });
      const data = await resp.json();
      if (!resp.ok) {
        errorBox.textContent = data.error ? data.error.message : 'simulation failed';
        errorBox.classList.remove('hidden');
        return;
      }
      render(data);
    });

    function render(data) {
      document.getElementById('summary').textContent = data.summary;

      const body = document.getElementById('comparison');
      body.replaceChildren();
      for (const row of data.table) {
        const tr = document.createElement('tr');
        for (const cell of [row.label, Number(row.accuracy).toFixed(2), row.token_usage]) {
          const td = document.createElement('td');
          td.textContent = cell;
          tr.appendChild(td);
        }
        body.appendChild(tr);
      }

      const datasets = data.chart.data.datasets;
      document.getElementById('accuracyLabel').textContent = datasets[0].label;
      document.getElementById('accuracyLegend').style.background = datasets[0].backgroundColor;
      document.getElementById('tokensLabel').textContent = datasets[1].label;
      document.getElementById('tokensLegend').style.background = datasets[1].backgroundColor;
      if (chart) {
        chart.destroy();
      }
      chart = new Chart(document.getElementById('comparisonChart'), data.chart);

      const query = new URLSearchParams({
        accuracy: data.result.accuracy,
        token_usage: data.result.token_usage,
        latency: data.result.latency,
      });
      document.getElementById('exportLink').href = '/api/export?' + query.toString();
      document.getElementById('chartLink').href = '/api/chart.png?' + query.toString();
      document.getElementById('results').classList.remove('hidden');
    }
  </script>
</body>
</html>
`
