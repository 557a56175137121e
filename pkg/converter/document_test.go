package converter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name  string
		doc   any
		valid bool
	}{
		{name: "empty array", doc: []any{}, valid: true},
		{name: "array of steps", doc: []any{"min_max_scaler", map[string]any{"class": "X"}}, valid: true},
		{name: "number", doc: float64(42), valid: false},
		{name: "object", doc: map[string]any{"pipeline": []any{}}, valid: false},
		{name: "nil", doc: nil, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateDocument(tt.doc)

			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.Empty(t, result.Errors)
			} else {
				require.Len(t, result.Errors, 1)
				assert.Contains(t, result.Errors[0], "must be an array")
			}
		})
	}
}

func TestValidateDocument_ErrorsFieldNeverNull(t *testing.T) {
	data, err := json.Marshal(ValidateDocument([]any{}))

	require.NoError(t, err)
	assert.Contains(t, string(data), `"errors":[]`)
}

func TestStepsFromDocument_BareArray(t *testing.T) {
	steps, err := StepsFromDocument([]any{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, steps)
}

func TestStepsFromDocument_WrapperKeys(t *testing.T) {
	for _, key := range []string{"pipeline", "steps", "nodes"} {
		t.Run(key, func(t *testing.T) {
			steps, err := StepsFromDocument(map[string]any{key: []any{"a"}})

			require.NoError(t, err)
			assert.Equal(t, []any{"a"}, steps)
		})
	}
}

func TestStepsFromDocument_PipelineKeyWins(t *testing.T) {
	doc := map[string]any{
		"steps":    []any{"from_steps"},
		"pipeline": []any{"from_pipeline"},
	}

	steps, err := StepsFromDocument(doc)

	require.NoError(t, err)
	assert.Equal(t, []any{"from_pipeline"}, steps)
}

func TestStepsFromDocument_NoStepArray(t *testing.T) {
	_, err := StepsFromDocument(map[string]any{"pipeline": "not an array"})
	assert.Error(t, err)

	_, err = StepsFromDocument("bare string")
	assert.Error(t, err)
}

func TestLoadDocument(t *testing.T) {
	steps, err := LoadDocument([]byte(`{"steps": ["min_max_scaler"]}`))

	require.NoError(t, err)
	assert.Equal(t, []any{"min_max_scaler"}, steps)

	_, err = LoadDocument([]byte(`{invalid`))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadDocumentOrEmpty(t *testing.T) {
	assert.Equal(t, []any{"a"}, LoadDocumentOrEmpty([]byte(`["a"]`)))
	assert.Equal(t, []any{}, LoadDocumentOrEmpty([]byte(`{invalid`)))
	assert.Equal(t, []any{}, LoadDocumentOrEmpty([]byte(`{"other": true}`)))
}

func TestExportDocument(t *testing.T) {
	data, err := ExportDocument("My Pipeline", "a description", "2024-01-15T10:00:00Z", []any{"min_max_scaler"})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "My Pipeline", doc["name"])
	assert.Equal(t, "a description", doc["description"])
	assert.Equal(t, "2024-01-15T10:00:00Z", doc["created_at"])
	assert.Equal(t, []any{"min_max_scaler"}, doc["steps"])

	assert.True(t, strings.Contains(string(data), "\n  \"name\""), "two-space indentation")
}

func TestExportDocument_StampsMissingCreatedAt(t *testing.T) {
	data, err := ExportDocument("p", "", "", nil)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	stamp, ok := doc["created_at"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339, stamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)

	assert.Equal(t, []any{}, doc["steps"], "nil steps exported as empty array")
}
