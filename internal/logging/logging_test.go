package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/codsim/internal/simulation"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "nested", "codsim.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogSimulation("cli",
		simulation.Request{Strategy: simulation.ChainOfDraft, TaskType: simulation.Arithmetic, Model: simulation.ModelA, TokenLimit: 20},
		simulation.Result{Accuracy: 90, TokenUsage: 20, Latency: 1})
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[SIMULATE] source=cli strategy=ChainOfDraft") {
		t.Fatalf("expected LogSimulation content, got: %s", content)
	}
}

func TestBuildSimulationMessage(t *testing.T) {
	msg := buildSimulationMessage(" ",
		simulation.Request{Strategy: simulation.Standard, TaskType: simulation.Symbolic, Model: simulation.ModelB, TokenLimit: 100},
		simulation.Result{Accuracy: 81.5, TokenUsage: 12, Latency: 0.75})
	for _, want := range []string{"source=unknown", "taskType=Symbolic", "model=ModelB", "tokenLimit=100", "accuracy=81.5000", "tokenUsage=12", "latency=0.7500"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %s", want, msg)
		}
	}
}

func TestBuildRequestMessageDefaults(t *testing.T) {
	msg := buildRequestMessage(" in ", " ", "", " abc-123 ", map[string]any{"ok": true})
	if !strings.Contains(msg, "[IN]") {
		t.Fatalf("expected uppercased direction, got: %s", msg)
	}
	if !strings.Contains(msg, "method=unknown") {
		t.Fatalf("expected default method, got: %s", msg)
	}
	if !strings.Contains(msg, "path=unknown") {
		t.Fatalf("expected default path, got: %s", msg)
	}
	if !strings.Contains(msg, "request_id=abc-123") {
		t.Fatalf("expected request id, got: %s", msg)
	}
	if !strings.Contains(msg, "payload={\"ok\":true}") {
		t.Fatalf("expected payload json, got: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
}

func TestInitDiscard(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	LogEvent("discard")
	if buf.Len() != 0 {
		t.Fatalf("expected log output discarded, got: %s", buf.String())
	}
}
