package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nirs4all/studio/pkg/converter"
	"github.com/nirs4all/studio/pkg/library"
	"github.com/nirs4all/studio/pkg/log"
	"github.com/nirs4all/studio/pkg/models"
	"github.com/nirs4all/studio/pkg/persistence"
)

// Pipeline ties the pipeline store and the converter together.
type Pipeline struct {
	store     persistence.PipelineStore
	converter *converter.Converter
	logger    *slog.Logger
}

// NewPipeline creates the pipeline service over a store and a component
// library index. A nil index degrades to catalog-less conversion.
func NewPipeline(store persistence.PipelineStore, index *library.Index) *Pipeline {
	return &Pipeline{
		store:     store,
		converter: converter.New(index),
		logger:    log.WithModule("pipeline-service"),
	}
}

// HealthCheck checks the health of the persistence layer.
func (p *Pipeline) HealthCheck(ctx context.Context) (string, bool) {
	if p.store == nil {
		return "Pipeline store not initialized", false
	}

	if err := p.store.HealthCheck(ctx); err != nil {
		return "Pipeline store is unhealthy: " + err.Error(), false
	}

	return "Pipeline store is healthy", true
}

// List returns summaries for every stored pipeline.
func (p *Pipeline) List(ctx context.Context) ([]models.PipelineSummary, error) {
	return p.store.List(ctx)
}

// Get loads one pipeline document by id.
func (p *Pipeline) Get(ctx context.Context, id string) (*models.PipelineDocument, error) {
	return p.store.GetByID(ctx, id)
}

// Save validates and persists a pipeline document, assigning an id on first
// save. The stored document is returned.
func (p *Pipeline) Save(ctx context.Context, doc *models.PipelineDocument) (*models.PipelineDocument, error) {
	if doc.Name == "" {
		return nil, ErrPipelineNameRequired
	}

	if doc.Steps == nil {
		doc.Steps = []any{}
	}

	if result := converter.ValidateDocument(doc.Steps); !result.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPipeline, result.Errors)
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if err := p.store.Save(ctx, doc); err != nil {
		return nil, err
	}

	p.logger.Info("pipeline saved", "id", doc.ID, "name", doc.Name, "steps", len(doc.Steps))

	return doc, nil
}

// Delete removes a stored pipeline.
func (p *Pipeline) Delete(ctx context.Context, id string) error {
	if err := p.store.Delete(ctx, id); err != nil {
		return err
	}

	p.logger.Info("pipeline deleted", "id", id)

	return nil
}

// ToTree converts a step sequence into the editor's tree form.
func (p *Pipeline) ToTree(steps []any) []*models.TreeNode {
	return p.converter.ToTree(steps)
}

// ToSteps serializes tree nodes back into pipeline steps.
func (p *Pipeline) ToSteps(nodes []*models.TreeNode) []any {
	return p.converter.ToSteps(nodes)
}

// Validate runs the structural check on a decoded pipeline document.
func (p *Pipeline) Validate(doc any) converter.ValidationResult {
	return converter.ValidateDocument(doc)
}

// Export renders a stored pipeline as the canonical export document.
func (p *Pipeline) Export(ctx context.Context, id string) ([]byte, error) {
	doc, err := p.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return converter.ExportDocument(doc.Name, doc.Description, doc.CreatedAt, doc.Steps)
}
