package converter

import (
	"github.com/mohae/deepcopy"

	"github.com/nirs4all/studio/pkg/models"
)

// CloneValue deep-copies an arbitrary decoded JSON value so the result shares
// no mutable state with the input.
func CloneValue(value any) any {
	return deepcopy.Copy(value)
}

// CloneParams deep-copies a parameter map. A nil input yields an empty map,
// never nil, so callers can write into the result unconditionally.
func CloneParams(params map[string]any) map[string]any {
	clone := make(map[string]any, len(params))
	for key, value := range params {
		clone[key] = deepcopy.Copy(value)
	}

	return clone
}

// MergeParams layers overrides onto defaults, override winning on key
// collision. Both inputs are read through deep copies so the result aliases
// neither.
func MergeParams(defaults, overrides map[string]any) map[string]any {
	merged := CloneParams(defaults)
	for key, value := range overrides {
		merged[key] = deepcopy.Copy(value)
	}

	return merged
}

// MetadataPatch is a partial NodeMetadata override. Pointer fields and nil
// maps mean "leave the base value"; a non-nil empty map or slice is an
// explicit replacement, not a no-op.
type MetadataPatch struct {
	ClassPath      *string
	FunctionPath   *string
	DefaultParams  map[string]any
	EditableParams []models.EditableParam
	CategoryID     *string
	SubcategoryID  *string
	EstimatorType  *string
	Origin         *string
}

// MergeMetadata combines base metadata with a patch into a fresh value.
// Parameter-bearing fields are deep-copied on read and on write, so the
// result shares no mutable state with either input. A nil base starts from
// zero metadata.
func MergeMetadata(base *models.NodeMetadata, patch MetadataPatch) *models.NodeMetadata {
	merged := models.NodeMetadata{}
	if base != nil {
		merged = *base
		merged.DefaultParams = CloneParams(base.DefaultParams)
		merged.EditableParams = cloneEditableParams(base.EditableParams)
	}

	if patch.ClassPath != nil {
		merged.ClassPath = *patch.ClassPath
	}

	if patch.FunctionPath != nil {
		merged.FunctionPath = *patch.FunctionPath
	}

	if patch.DefaultParams != nil {
		merged.DefaultParams = CloneParams(patch.DefaultParams)
	}

	if patch.EditableParams != nil {
		merged.EditableParams = cloneEditableParams(patch.EditableParams)
	}

	if patch.CategoryID != nil {
		merged.CategoryID = *patch.CategoryID
	}

	if patch.SubcategoryID != nil {
		merged.SubcategoryID = *patch.SubcategoryID
	}

	if patch.EstimatorType != nil {
		merged.EstimatorType = *patch.EstimatorType
	}

	if patch.Origin != nil {
		merged.Origin = *patch.Origin
	}

	return &merged
}

func cloneEditableParams(params []models.EditableParam) []models.EditableParam {
	if params == nil {
		return nil
	}

	clone := make([]models.EditableParam, len(params))
	for i, param := range params {
		clone[i] = param
		clone[i].Default = deepcopy.Copy(param.Default)
	}

	return clone
}

func ptr[T any](value T) *T {
	return &value
}
