package library

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nirs4all/studio/pkg/models"
)

// Parse decodes a component-library document. The catalog is consumed
// read-only; content irregularities are left to CheckDocument and the
// index's tolerant lookups.
func Parse(data []byte) (*models.ComponentLibrary, error) {
	var catalog models.ComponentLibrary
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse component library: %w", err)
	}

	return &catalog, nil
}

// Load reads and decodes a component-library document from disk.
func Load(path string) (*models.ComponentLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read component library %s: %w", path, err)
	}

	return Parse(data)
}
