package persistence

import (
	"errors"
	"fmt"
)

// ErrPipelineNotFound indicates no pipeline exists for the given identifier.
var ErrPipelineNotFound = errors.New("pipeline not found")

// PipelineError wraps pipeline storage errors with operation context.
type PipelineError struct {
	Op         string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	PipelineID string
	Err        error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s operation failed for pipeline %s: %v", e.Op, e.PipelineID, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for pipeline errors.
func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewPipelineError creates a new pipeline error with context.
func NewPipelineError(op, pipelineID string, err error) *PipelineError {
	return &PipelineError{
		Op:         op,
		PipelineID: pipelineID,
		Err:        err,
	}
}

// IsPipelineNotFound checks if an error indicates a pipeline was not found.
func IsPipelineNotFound(err error) bool {
	return errors.Is(err, ErrPipelineNotFound)
}
