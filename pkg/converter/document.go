package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nirs4all/studio/pkg/models"
)

// ValidationResult reports the structural check on a pipeline document.
// Content irregularities are tolerated through the unknown-node fallback, so
// array-ness is the only thing validated.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateDocument checks that a decoded pipeline document is an ordered step
// sequence. Failures are reported as messages, never as an error return.
func ValidateDocument(doc any) ValidationResult {
	if _, ok := doc.([]any); ok {
		return ValidationResult{Valid: true, Errors: []string{}}
	}

	return ValidationResult{
		Valid:  false,
		Errors: []string{fmt.Sprintf("pipeline must be an array of steps, got %T", doc)},
	}
}

// StepsFromDocument extracts the step array from a decoded document: either
// the document is the array itself, or an object exposing it under pipeline,
// steps, or nodes.
func StepsFromDocument(doc any) ([]any, error) {
	if steps, ok := doc.([]any); ok {
		return steps, nil
	}

	if obj, ok := doc.(map[string]any); ok {
		for _, key := range []string{"pipeline", "steps", "nodes"} {
			if steps, ok := obj[key].([]any); ok {
				return steps, nil
			}
		}
	}

	return nil, fmt.Errorf("document carries no step array under pipeline, steps, or nodes")
}

// LoadDocument parses raw JSON and extracts its step array. Parse failures
// are the only reported fault in the whole converter.
func LoadDocument(data []byte) ([]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline document: %w", err)
	}

	return StepsFromDocument(doc)
}

// LoadDocumentOrEmpty is the tolerant loader: any failure yields an empty
// step sequence instead of propagating.
func LoadDocumentOrEmpty(data []byte) []any {
	steps, err := LoadDocument(data)
	if err != nil {
		return []any{}
	}

	return steps
}

// ExportDocument renders the canonical export envelope as indented JSON.
// An empty createdAt is stamped with the current UTC time.
func ExportDocument(name, description, createdAt string, steps []any) ([]byte, error) {
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	if steps == nil {
		steps = []any{}
	}

	doc := models.PipelineDocument{
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
		Steps:       steps,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize pipeline document: %w", err)
	}

	return data, nil
}
