package library

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// catalogSchema describes the canonical component-library document shape.
// The check is advisory: a document that fails it still builds an index, it
// just degrades to "not found" lookups for the malformed parts.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["categories", "subcategories", "components"],
  "properties": {
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "label"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"}
        }
      }
    },
    "subcategories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "label", "categoryId"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "categoryId": {"type": "string"}
        }
      }
    },
    "components": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "label", "subcategoryId"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "shortName": {"type": "string"},
          "subcategoryId": {"type": "string"},
          "nodeType": {"enum": ["regular", "container", "generation"]},
          "classPath": {"type": "string"},
          "functionPath": {"type": "string"},
          "defaultParams": {"type": "object"},
          "editableParams": {"type": "array"}
        }
      }
    }
  }
}`

// CheckDocument validates a raw component-library document against the
// catalog schema and returns one human-readable warning per violation. A nil
// slice means the document is well formed.
func CheckDocument(data []byte) ([]string, error) {
	schemaLoader := gojsonschema.NewStringLoader(catalogSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate component library: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	warnings := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		warnings = append(warnings, desc.String())
	}

	return warnings, nil
}
