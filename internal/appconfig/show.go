package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", cfg.JSONMode)
	if req, err := cfg.DefaultRequest(); err == nil {
		fmt.Fprintf(out, "  Strategy:        %s\n", req.Strategy.Label())
		fmt.Fprintf(out, "  Task Type:       %s\n", req.TaskType.Label())
		fmt.Fprintf(out, "  Model:           %s\n", req.Model.Label())
		fmt.Fprintf(out, "  Token Limit:     %d\n", req.TokenLimit)
	} else {
		fmt.Fprintf(out, "  Form Defaults:   invalid (%v)\n", err)
	}
	if cfg.Seed != 0 {
		fmt.Fprintf(out, "  Seed:            %d\n", cfg.Seed)
	} else {
		fmt.Fprintln(out, "  Seed:            time-based")
	}
	fmt.Fprintf(out, "  Export Path:     %s\n", cfg.ExportFilePath())
	fmt.Fprintf(out, "  Chart Path:      %s\n", cfg.ChartFilePath())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Listen Address:  %s\n", cfg.ListenAddr())
}
