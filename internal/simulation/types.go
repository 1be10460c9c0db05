// internal/simulation/types.go
// Package simulation models prompting-strategy simulation requests, their
// validation, and the placeholder simulator that produces metrics for them.
package simulation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest is returned when a request falls outside the accepted
// form domain (unknown enum value or token limit out of range).
var ErrInvalidRequest = errors.New("invalid request")

const (
	// MinTokenLimit is the smallest accepted per-step token limit.
	MinTokenLimit = 5
	// MaxTokenLimit is the largest accepted per-step token limit.
	MaxTokenLimit = 100
	// TokenLimitStep is the increment offered by interactive forms.
	TokenLimitStep = 5
	// DefaultTokenLimit is the form's initial token limit.
	DefaultTokenLimit = 20
)

// Strategy names the reasoning-elicitation method being simulated.
type Strategy string

const (
	ChainOfDraft   Strategy = "ChainOfDraft"
	ChainOfThought Strategy = "ChainOfThought"
	Standard       Strategy = "Standard"
)

// Strategies lists every strategy in form order.
var Strategies = []Strategy{ChainOfDraft, ChainOfThought, Standard}

// Label returns the display label used by forms and summaries.
func (s Strategy) Label() string {
	switch s {
	case ChainOfDraft:
		return "Chain-of-Draft"
	case ChainOfThought:
		return "Chain-of-Thought"
	case Standard:
		return "Standard"
	default:
		return string(s)
	}
}

// Short returns the abbreviated label used by the comparison table.
func (s Strategy) Short() string {
	switch s {
	case ChainOfDraft:
		return "CoD"
	case ChainOfThought:
		return "CoT"
	default:
		return s.Label()
	}
}

func (s Strategy) aliases() []string { return []string{string(s), s.Label(), s.Short()} }

// TaskType names the family of benchmark task being simulated.
type TaskType string

const (
	Arithmetic  TaskType = "Arithmetic"
	Commonsense TaskType = "Commonsense"
	Symbolic    TaskType = "Symbolic"
)

// TaskTypes lists every task type in form order.
var TaskTypes = []TaskType{Arithmetic, Commonsense, Symbolic}

// Label returns the display label used by forms and summaries.
func (t TaskType) Label() string {
	switch t {
	case Arithmetic, Commonsense, Symbolic:
		return string(t) + " Reasoning"
	default:
		return string(t)
	}
}

func (t TaskType) aliases() []string { return []string{string(t), t.Label()} }

// Model names the language model a real evaluation would target.
type Model string

const (
	ModelA Model = "ModelA"
	ModelB Model = "ModelB"
)

// Models lists every model in form order.
var Models = []Model{ModelA, ModelB}

// Label returns the display label used by forms and summaries.
func (m Model) Label() string {
	switch m {
	case ModelA:
		return "GPT-4o"
	case ModelB:
		return "Claude 3.5 Sonnet"
	default:
		return string(m)
	}
}

func (m Model) aliases() []string { return []string{string(m), m.Label()} }

// ParseStrategy resolves an identifier, display label or short label.
func ParseStrategy(raw string) (Strategy, error) {
	return parseEnum("strategy", raw, Strategies, Strategy.aliases)
}

// ParseTaskType resolves an identifier or display label.
func ParseTaskType(raw string) (TaskType, error) {
	return parseEnum("task type", raw, TaskTypes, TaskType.aliases)
}

// ParseModel resolves an identifier or display label.
func ParseModel(raw string) (Model, error) {
	return parseEnum("model", raw, Models, Model.aliases)
}

func parseEnum[T ~string](field, raw string, values []T, aliases func(T) []string) (T, error) {
	needle := strings.TrimSpace(raw)
	for _, v := range values {
		for _, alias := range aliases(v) {
			if strings.EqualFold(alias, needle) {
				return v, nil
			}
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s %q", ErrInvalidRequest, field, raw)
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Request captures one set of form selections. It is a value type and is
// never mutated after construction.
type Request struct {
	Strategy   Strategy `json:"strategy"`
	TaskType   TaskType `json:"taskType"`
	Model      Model    `json:"model"`
	TokenLimit int      `json:"tokenLimit"`
}

// NewRequest parses raw form values into a validated Request.
func NewRequest(strategy, taskType, model string, tokenLimit int) (Request, error) {
	s, err := ParseStrategy(strategy)
	if err != nil {
		return Request{}, err
	}
	t, err := ParseTaskType(taskType)
	if err != nil {
		return Request{}, err
	}
	m, err := ParseModel(model)
	if err != nil {
		return Request{}, err
	}
	req := Request{Strategy: s, TaskType: t, Model: m, TokenLimit: tokenLimit}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate checks enum membership and the token-limit range.
func (r Request) Validate() error {
	if !contains(Strategies, r.Strategy) {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidRequest, r.Strategy)
	}
	if !contains(TaskTypes, r.TaskType) {
		return fmt.Errorf("%w: unknown task type %q", ErrInvalidRequest, r.TaskType)
	}
	if !contains(Models, r.Model) {
		return fmt.Errorf("%w: unknown model %q", ErrInvalidRequest, r.Model)
	}
	if r.TokenLimit < MinTokenLimit || r.TokenLimit > MaxTokenLimit {
		return fmt.Errorf("%w: token limit %d outside [%d,%d]", ErrInvalidRequest, r.TokenLimit, MinTokenLimit, MaxTokenLimit)
	}
	return nil
}

// TokenLimitOptions returns every token limit offered by forms.
func TokenLimitOptions() []int {
	out := make([]int, 0, (MaxTokenLimit-MinTokenLimit)/TokenLimitStep+1)
	for v := MinTokenLimit; v <= MaxTokenLimit; v += TokenLimitStep {
		out = append(out, v)
	}
	return out
}

// Result holds the metrics produced by one simulation.
type Result struct {
	Accuracy   float64 `json:"accuracy"`
	TokenUsage int     `json:"token_usage"`
	Latency    float64 `json:"latency"`
}

// NewResult builds a Result with accuracy clamped to [0,100] and
// non-negative token usage and latency.
func NewResult(accuracy float64, tokenUsage int, latency float64) Result {
	if tokenUsage < 0 {
		tokenUsage = 0
	}
	if latency < 0 {
		latency = 0
	}
	return Result{Accuracy: ClampAccuracy(accuracy), TokenUsage: tokenUsage, Latency: latency}
}

// ClampAccuracy bounds an accuracy percentage to [0,100].
func ClampAccuracy(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
