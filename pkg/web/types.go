// Package web provides the HTTP handlers and request/response types of the
// studio API.
package web

import "github.com/nirs4all/studio/pkg/models"

// SelectWorkspaceRequest selects the directory to work in.
type SelectWorkspaceRequest struct {
	Path string `json:"path" validate:"required"`
}

// LinkDatasetRequest registers a dataset folder with the workspace.
type LinkDatasetRequest struct {
	Path string `json:"path" validate:"required"`
}

// CreateGroupRequest creates a named dataset group.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// RenameGroupRequest changes a group's display name.
type RenameGroupRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// SavePipelineRequest creates or overwrites a pipeline document. Steps may be
// empty but must be present as an array.
type SavePipelineRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"        validate:"required,min=1"`
	Description string `json:"description"`
	Steps       []any  `json:"steps"`
}

// ConvertToTreeRequest carries a raw step sequence for forward conversion.
type ConvertToTreeRequest struct {
	Steps []any `json:"steps"`
}

// ConvertToTreeResponse is the forward conversion result.
type ConvertToTreeResponse struct {
	Nodes []*models.TreeNode `json:"nodes"`
}

// ConvertToStepsRequest carries tree nodes for reverse conversion.
type ConvertToStepsRequest struct {
	Nodes []*models.TreeNode `json:"nodes"`
}

// ConvertToStepsResponse is the reverse conversion result.
type ConvertToStepsResponse struct {
	Steps []any `json:"steps"`
}
