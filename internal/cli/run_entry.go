package codsim

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/mwiater/codsim/internal/appconfig"
	"github.com/mwiater/codsim/internal/chart"
	"github.com/mwiater/codsim/internal/logging"
	"github.com/mwiater/codsim/internal/presenter"
	"github.com/mwiater/codsim/internal/simulation"
	"github.com/mwiater/codsim/internal/util"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	savedColor   = color.New(color.FgGreen)
	tipColor     = color.New(color.FgHiBlack)
)

func runSimulation(out io.Writer, cfg appconfig.Config, htmlPath string) error {
	req, err := cfg.DefaultRequest()
	if err != nil {
		return err
	}
	res, err := simulation.Run(newSimulator(cfg.Seed), req)
	if err != nil {
		return err
	}
	logging.LogSimulation("cli", req, res)

	p := presenter.Present(req, res)
	spec := chart.FromTable(p.Table)

	if cfg.ExportPath != "" {
		if err := saveFile(cfg.ExportPath, p.Export); err != nil {
			return fmt.Errorf("export results: %w", err)
		}
	}
	if cfg.ChartPath != "" {
		data, err := chart.RenderPNG(spec, chart.DefaultPNGWidth, chart.DefaultPNGHeight)
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		if err := saveFile(cfg.ChartPath, data); err != nil {
			return fmt.Errorf("save chart: %w", err)
		}
	}
	if htmlPath != "" {
		page, err := chart.RenderHTML(spec, presenter.Title, p.Summary)
		if err != nil {
			return fmt.Errorf("render html report: %w", err)
		}
		if err := saveFile(htmlPath, []byte(page)); err != nil {
			return fmt.Errorf("save html report: %w", err)
		}
	}

	if cfg.JSONMode {
		data, err := presenter.ExportJSON(p)
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printPresentation(out, p, spec)
	for _, saved := range []struct{ kind, path string }{
		{"Results", cfg.ExportPath},
		{"Chart", cfg.ChartPath},
		{"HTML report", htmlPath},
	} {
		if saved.path != "" {
			savedColor.Fprintf(out, "%s saved to %s\n", saved.kind, saved.path)
		}
	}
	return nil
}

func printPresentation(out io.Writer, p presenter.Presentation, spec chart.Spec) {
	headingColor.Fprintln(out, presenter.Heading)
	fmt.Fprintln(out, p.Summary)

	headingColor.Fprintln(out, "Comparison with Other Strategies")
	fmt.Fprintln(out, comparisonTable(p.Table))
	fmt.Fprintln(out)

	headingColor.Fprintln(out, "Strategy Comparison Chart")
	fmt.Fprintln(out, chart.RenderTerminal(spec, 0))

	headingColor.Fprintln(out, "Deployment Tips")
	for _, tip := range presenter.DeploymentTips {
		tipColor.Fprintln(out, util.Indent(util.WrapToWidth("- "+tip, 76), "  "))
	}
}

func comparisonTable(rows [3]presenter.ComparisonRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Strategy", "Accuracy (%)", "Token Usage")
	for _, r := range rows {
		t.Row(r.Label, fmt.Sprintf("%.2f", r.Accuracy), fmt.Sprintf("%d", r.TokenUsage))
	}
	return t.Render()
}

func saveFile(path string, data []byte) error {
	if err := util.WriteFile(path, data); err != nil {
		return err
	}
	logging.LogEvent("wrote %s (%d bytes)", path, len(data))
	return nil
}
