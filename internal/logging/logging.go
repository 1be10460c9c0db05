package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mwiater/codsim/internal/simulation"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to logPath. An empty path discards log
// output so interactive views and JSON output stay clean.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	if logPath == "" {
		log.SetOutput(io.Discard)
		return nil
	}

	if dir := filepath.Dir(logPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logFile = file
	log.SetOutput(logFile)
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogSimulation records one completed run.
func LogSimulation(source string, req simulation.Request, res simulation.Result) {
	log.Println(buildSimulationMessage(source, req, res))
}

// LogRequest records one HTTP exchange.
func LogRequest(direction, method, path, requestID string, payload any) {
	log.Println(buildRequestMessage(direction, method, path, requestID, payload))
}

func buildSimulationMessage(source string, req simulation.Request, res simulation.Result) string {
	src := strings.TrimSpace(source)
	if src == "" {
		src = "unknown"
	}
	return fmt.Sprintf("[SIMULATE] source=%s strategy=%s taskType=%s model=%s tokenLimit=%d accuracy=%.4f tokenUsage=%d latency=%.4f",
		src, req.Strategy, req.TaskType, req.Model, req.TokenLimit, res.Accuracy, res.TokenUsage, res.Latency)
}

func buildRequestMessage(direction, method, path, requestID string, payload any) string {
	dir := strings.TrimSpace(direction)
	if dir != "" {
		dir = strings.ToUpper(dir)
	}
	methodValue := strings.ToUpper(strings.TrimSpace(method))
	if methodValue == "" {
		methodValue = "unknown"
	}
	pathValue := strings.TrimSpace(path)
	if pathValue == "" {
		pathValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", dir)}
	parts = append(parts, fmt.Sprintf("method=%s", methodValue))
	parts = append(parts, fmt.Sprintf("path=%s", pathValue))
	if id := strings.TrimSpace(requestID); id != "" {
		parts = append(parts, fmt.Sprintf("request_id=%s", id))
	}
	parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
