// internal/simulation/schema.go
package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// RequestSchema is the JSON schema every JSON-encoded request must satisfy
// before enum values are resolved.
func RequestSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strategy": map[string]any{
				"type":        "string",
				"description": "Prompting strategy, e.g. ChainOfDraft or Chain-of-Draft",
			},
			"taskType": map[string]any{
				"type":        "string",
				"description": "Task type, e.g. Arithmetic or Arithmetic Reasoning",
			},
			"model": map[string]any{
				"type":        "string",
				"description": "Model, e.g. ModelA or GPT-4o",
			},
			"tokenLimit": map[string]any{
				"type":    "integer",
				"minimum": MinTokenLimit,
				"maximum": MaxTokenLimit,
			},
		},
		"required":             []string{"strategy", "taskType", "model", "tokenLimit"},
		"additionalProperties": false,
	}
}

// DecodeRequestJSON validates data against RequestSchema and resolves it
// into a Request. Every failure wraps ErrInvalidRequest.
func DecodeRequestJSON(data []byte) (Request, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(RequestSchema()), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return Request{}, fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(details, "; "))
	}

	var raw struct {
		Strategy   string  `json:"strategy"`
		TaskType   string  `json:"taskType"`
		Model      string  `json:"model"`
		TokenLimit float64 `json:"tokenLimit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return NewRequest(raw.Strategy, raw.TaskType, raw.Model, int(math.Round(raw.TokenLimit)))
}
