package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirs4all/studio/pkg/models"
	"github.com/nirs4all/studio/pkg/persistence"
)

type memoryStore struct {
	docs      map[string]*models.PipelineDocument
	healthErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: map[string]*models.PipelineDocument{}}
}

func (s *memoryStore) List(ctx context.Context) ([]models.PipelineSummary, error) {
	summaries := make([]models.PipelineSummary, 0, len(s.docs))
	for _, doc := range s.docs {
		summaries = append(summaries, models.PipelineSummary{
			ID:         doc.ID,
			Name:       doc.Name,
			StepsCount: len(doc.Steps),
		})
	}

	return summaries, nil
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*models.PipelineDocument, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, persistence.NewPipelineError("GetByID", id, persistence.ErrPipelineNotFound)
	}

	return doc, nil
}

func (s *memoryStore) Save(ctx context.Context, doc *models.PipelineDocument) error {
	if doc.CreatedAt == "" {
		doc.CreatedAt = "2024-01-15T10:00:00Z"
	}

	s.docs[doc.ID] = doc

	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.docs[id]; !ok {
		return persistence.NewPipelineError("Delete", id, persistence.ErrPipelineNotFound)
	}

	delete(s.docs, id)

	return nil
}

func (s *memoryStore) HealthCheck(ctx context.Context) error {
	return s.healthErr
}

func TestSave_AssignsID(t *testing.T) {
	service := NewPipeline(newMemoryStore(), nil)

	saved, err := service.Save(context.Background(), &models.PipelineDocument{
		Name:  "Calibration",
		Steps: []any{"min_max_scaler"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	loaded, err := service.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calibration", loaded.Name)
}

func TestSave_KeepsExplicitID(t *testing.T) {
	service := NewPipeline(newMemoryStore(), nil)

	saved, err := service.Save(context.Background(), &models.PipelineDocument{
		ID:   "fixed-id",
		Name: "p",
	})

	require.NoError(t, err)
	assert.Equal(t, "fixed-id", saved.ID)
	assert.Equal(t, []any{}, saved.Steps, "nil steps normalized")
}

func TestSave_NameRequired(t *testing.T) {
	service := NewPipeline(newMemoryStore(), nil)

	_, err := service.Save(context.Background(), &models.PipelineDocument{})

	assert.ErrorIs(t, err, ErrPipelineNameRequired)
	assert.True(t, IsValidationError(err))
}

func TestDelete(t *testing.T) {
	store := newMemoryStore()
	service := NewPipeline(store, nil)

	_, err := service.Save(context.Background(), &models.PipelineDocument{ID: "p1", Name: "p"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "p1"))

	err = service.Delete(context.Background(), "p1")
	assert.True(t, IsNotFoundError(err))
}

func TestHealthCheck(t *testing.T) {
	store := newMemoryStore()
	service := NewPipeline(store, nil)

	message, healthy := service.HealthCheck(context.Background())
	assert.True(t, healthy)
	assert.Contains(t, message, "healthy")

	store.healthErr = errors.New("directory unavailable")
	message, healthy = service.HealthCheck(context.Background())
	assert.False(t, healthy)
	assert.Contains(t, message, "directory unavailable")

	_, healthy = NewPipeline(nil, nil).HealthCheck(context.Background())
	assert.False(t, healthy)
}

func TestConvertRoundTrip_CatalogLess(t *testing.T) {
	service := NewPipeline(newMemoryStore(), nil)

	steps := []any{"min_max_scaler", map[string]any{"class": "sklearn.pkg.Thing"}}

	tree := service.ToTree(steps)
	require.Len(t, tree, 2)

	assert.Equal(t, steps, service.ToSteps(tree))
}

func TestValidate(t *testing.T) {
	service := NewPipeline(newMemoryStore(), nil)

	assert.True(t, service.Validate([]any{}).Valid)
	assert.False(t, service.Validate("nope").Valid)
}

func TestExport(t *testing.T) {
	service := NewPipeline(newMemoryStore(), nil)
	ctx := context.Background()

	saved, err := service.Save(ctx, &models.PipelineDocument{
		Name:        "Calibration",
		Description: "spectra prep",
		Steps:       []any{"min_max_scaler"},
	})
	require.NoError(t, err)

	data, err := service.Export(ctx, saved.ID)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Calibration", doc["name"])
	assert.Equal(t, "spectra prep", doc["description"])
	assert.Equal(t, []any{"min_max_scaler"}, doc["steps"])

	_, err = service.Export(ctx, "missing")
	assert.True(t, IsNotFoundError(err))
}
