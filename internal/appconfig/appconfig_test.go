// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mwiater/codsim/internal/simulation"
)

func writeTempConfig(t *testing.T, payload string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "config-*.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(payload)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

// TestLoad verifies that a valid configuration file is loaded with its
// defaults applied, while files with invalid JSON, out-of-range form
// defaults, or that are nonexistent result in an error.
func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `{
        "strategy": "Chain-of-Thought",
        "taskType": "Symbolic",
        "model": "ModelB",
        "seed": 7
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.TokenLimit != nil {
		t.Fatalf("expected omitted token limit to stay unset, got %d", *cfg.TokenLimit)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected ConfigPath %q, got %q", path, cfg.ConfigPath)
	}
	req, err := cfg.DefaultRequest()
	if err != nil {
		t.Fatalf("DefaultRequest error: %v", err)
	}
	if req.Strategy != simulation.ChainOfThought || req.Model != simulation.ModelB || req.TokenLimit != simulation.DefaultTokenLimit {
		t.Fatalf("unexpected default request: %+v", req)
	}

	if _, err := Load(writeTempConfig(t, `{ "strategy": `)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	_, err = Load(writeTempConfig(t, `{ "tokenLimit": 101 }`))
	if err == nil {
		t.Fatal("Load() with token limit 101 should have failed")
	}
	if !errors.Is(err, simulation.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}

	for _, limit := range []string{"0", "-5", "4"} {
		_, err = Load(writeTempConfig(t, `{ "tokenLimit": `+limit+` }`))
		if !errors.Is(err, simulation.ErrInvalidRequest) {
			t.Fatalf("token limit %s: expected ErrInvalidRequest, got %v", limit, err)
		}
	}

	if _, err := Load(writeTempConfig(t, `{ "model": "GPT-5" }`)); err == nil {
		t.Fatal("Load() with unknown model should have failed")
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestAccessorDefaults(t *testing.T) {
	var cfg Config

	if got := cfg.ExportFilePath(); got != "simulation_results.csv" {
		t.Fatalf("ExportFilePath = %q", got)
	}
	if got := cfg.ChartFilePath(); got != "simulation_chart.png" {
		t.Fatalf("ChartFilePath = %q", got)
	}
	if got := cfg.LogFilePath(); got != "codsim.log" {
		t.Fatalf("LogFilePath = %q", got)
	}
	if got := cfg.ListenAddr(); got != "127.0.0.1:8501" {
		t.Fatalf("ListenAddr = %q", got)
	}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "http://127.0.0.1:8501" || origins[1] != "http://localhost:8501" {
		t.Fatalf("CORSOrigins = %v", origins)
	}

	req, err := cfg.DefaultRequest()
	if err != nil {
		t.Fatalf("DefaultRequest error: %v", err)
	}
	want := simulation.Request{
		Strategy:   simulation.ChainOfDraft,
		TaskType:   simulation.Arithmetic,
		Model:      simulation.ModelA,
		TokenLimit: simulation.DefaultTokenLimit,
	}
	if req != want {
		t.Fatalf("DefaultRequest = %+v, want %+v", req, want)
	}
}

func TestDefaultRequestTokenLimit(t *testing.T) {
	limit := 45
	req, err := Config{TokenLimit: &limit}.DefaultRequest()
	if err != nil {
		t.Fatalf("DefaultRequest error: %v", err)
	}
	if req.TokenLimit != 45 {
		t.Fatalf("expected token limit 45, got %d", req.TokenLimit)
	}

	zero := 0
	if _, err := (Config{TokenLimit: &zero}).DefaultRequest(); !errors.Is(err, simulation.ErrInvalidRequest) {
		t.Fatalf("explicit token limit 0: expected ErrInvalidRequest, got %v", err)
	}
}

func TestAccessorOverrides(t *testing.T) {
	cfg := Config{
		ExportPath:   "out/results.csv",
		ChartPath:    "out/chart.png",
		LogFile:      "logs/app.log",
		Host:         "0.0.0.0",
		Port:         9000,
		AllowOrigins: []string{"http://example.test"},
	}

	if got := cfg.ExportFilePath(); got != "out/results.csv" {
		t.Fatalf("ExportFilePath = %q", got)
	}
	if got := cfg.ChartFilePath(); got != "out/chart.png" {
		t.Fatalf("ChartFilePath = %q", got)
	}
	if got := cfg.LogFilePath(); got != "logs/app.log" {
		t.Fatalf("LogFilePath = %q", got)
	}
	if got := cfg.ListenAddr(); got != "0.0.0.0:9000" {
		t.Fatalf("ListenAddr = %q", got)
	}
	if got := cfg.CORSOrigins(); len(got) != 1 || got[0] != "http://example.test" {
		t.Fatalf("CORSOrigins = %v", got)
	}
}

func TestShowConfig(t *testing.T) {
	var out bytes.Buffer
	ShowConfig(&out, "", nil, Config{Seed: 3})
	text := out.String()

	for _, want := range []string{
		"No config file loaded",
		"Strategy:        Chain-of-Draft",
		"Token Limit:     20",
		"Seed:            3",
		"Listen Address:  127.0.0.1:8501",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}

	out.Reset()
	badLimit := 4
	ShowConfig(&out, "config/config.json", &Config{TokenLimit: &badLimit}, Config{})
	text = out.String()
	if !strings.Contains(text, "Config file: config/config.json") {
		t.Fatalf("expected config file line, got:\n%s", text)
	}
	if !strings.Contains(text, "Form Defaults:   invalid") {
		t.Fatalf("expected invalid defaults line, got:\n%s", text)
	}
}
