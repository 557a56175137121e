// Package persistence provides the storage abstraction for pipeline
// documents.
package persistence

import (
	"context"

	"github.com/nirs4all/studio/pkg/models"
)

// PipelineStore stores and retrieves pipeline documents.
type PipelineStore interface {
	List(ctx context.Context) ([]models.PipelineSummary, error)
	GetByID(ctx context.Context, id string) (*models.PipelineDocument, error)
	Save(ctx context.Context, pipeline *models.PipelineDocument) error
	Delete(ctx context.Context, id string) error
	HealthCheck(ctx context.Context) error
}
