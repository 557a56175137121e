// Package file provides file-based pipeline storage inside the current
// workspace's pipelines directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nirs4all/studio/pkg/models"
	"github.com/nirs4all/studio/pkg/persistence"
)

// PathResolver yields the directory pipelines live in. The workspace manager
// implements it, so the store always follows the currently selected
// workspace.
type PathResolver interface {
	PipelinesPath() (string, error)
}

// Store implements persistence.PipelineStore on top of one JSON file per
// pipeline.
type Store struct {
	resolver PathResolver
}

// NewStore creates a file store resolving its directory through resolver.
func NewStore(resolver PathResolver) *Store {
	return &Store{resolver: resolver}
}

// List returns summaries for every pipeline document in the directory,
// sorted by name. Files that fail to parse are skipped rather than failing
// the whole listing.
func (s *Store) List(ctx context.Context) ([]models.PipelineSummary, error) {
	dir, err := s.resolver.PipelinesPath()
	if err != nil {
		return nil, err
	}

	names, err := fs.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list pipeline files: %w", err)
	}

	summaries := make([]models.PipelineSummary, 0, len(names))

	for _, name := range names {
		path := filepath.Join(dir, name)

		doc, err := readDocument(path)
		if err != nil {
			continue
		}

		id := doc.ID
		if id == "" {
			id = strings.TrimSuffix(name, ".json")
		}

		summaries = append(summaries, models.PipelineSummary{
			ID:          id,
			Name:        doc.Name,
			Description: doc.Description,
			FilePath:    path,
			CreatedAt:   doc.CreatedAt,
			StepsCount:  len(doc.Steps),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	return summaries, nil
}

// GetByID loads one pipeline document. The canonical location is <id>.json;
// foreign files are found by scanning for a matching embedded id.
func (s *Store) GetByID(ctx context.Context, id string) (*models.PipelineDocument, error) {
	dir, err := s.resolver.PipelinesPath()
	if err != nil {
		return nil, err
	}

	if err := checkID(id); err != nil {
		return nil, persistence.NewPipelineError("GetByID", id, err)
	}

	doc, err := readDocument(filepath.Join(dir, id+".json"))
	if err == nil {
		if doc.ID == "" {
			doc.ID = id
		}

		return doc, nil
	}

	names, globErr := fs.Glob(os.DirFS(dir), "*.json")
	if globErr != nil {
		return nil, fmt.Errorf("failed to list pipeline files: %w", globErr)
	}

	for _, name := range names {
		doc, err := readDocument(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		if doc.ID == id {
			return doc, nil
		}
	}

	return nil, persistence.NewPipelineError("GetByID", id, persistence.ErrPipelineNotFound)
}

// Save writes the document to <id>.json, stamping created_at on first save.
func (s *Store) Save(ctx context.Context, pipeline *models.PipelineDocument) error {
	dir, err := s.resolver.PipelinesPath()
	if err != nil {
		return err
	}

	if err := checkID(pipeline.ID); err != nil {
		return persistence.NewPipelineError("Save", pipeline.ID, err)
	}

	if pipeline.CreatedAt == "" {
		pipeline.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if pipeline.Steps == nil {
		pipeline.Steps = []any{}
	}

	data, err := json.MarshalIndent(pipeline, "", "  ")
	if err != nil {
		return persistence.NewPipelineError("Save", pipeline.ID, err)
	}

	path := filepath.Join(dir, pipeline.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return persistence.NewPipelineError("Save", pipeline.ID, err)
	}

	return nil
}

// Delete removes the pipeline file.
func (s *Store) Delete(ctx context.Context, id string) error {
	dir, err := s.resolver.PipelinesPath()
	if err != nil {
		return err
	}

	if err := checkID(id); err != nil {
		return persistence.NewPipelineError("Delete", id, err)
	}

	path := filepath.Join(dir, id+".json")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return persistence.NewPipelineError("Delete", id, persistence.ErrPipelineNotFound)
		}

		return persistence.NewPipelineError("Delete", id, err)
	}

	return nil
}

// HealthCheck verifies the pipelines directory is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	dir, err := s.resolver.PipelinesPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("pipelines directory unavailable: %w", err)
	}

	return nil
}

func readDocument(path string) (*models.PipelineDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc models.PipelineDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline file %s: %w", path, err)
	}

	return &doc, nil
}

// checkID keeps ids usable as file names.
func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("pipeline id is empty")
	}

	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("pipeline id %q is not a valid file name", id)
	}

	return nil
}
