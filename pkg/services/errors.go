// Package services provides the application operations behind the HTTP API
// and the CLI: pipeline storage, conversion, and export.
package services

import (
	"errors"

	"github.com/nirs4all/studio/pkg/persistence"
)

// Business logic errors indicating client mistakes (4xx responses).
var (
	// ErrPipelineNameRequired is returned when saving a pipeline without a
	// name.
	ErrPipelineNameRequired = errors.New("pipeline name is required")

	// ErrInvalidPipeline is returned when a document's steps are not an
	// ordered sequence.
	ErrInvalidPipeline = errors.New("invalid pipeline document")

	// ErrPipelineNotFound mirrors the persistence sentinel for callers that
	// only import the service layer.
	ErrPipelineNotFound = persistence.ErrPipelineNotFound
)

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrPipelineNameRequired) ||
		errors.Is(err, ErrInvalidPipeline)
}

// IsNotFoundError checks if an error should map to HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrPipelineNotFound)
}
