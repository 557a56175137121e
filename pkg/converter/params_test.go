package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirs4all/studio/pkg/models"
)

func TestCloneParams_NoAliasing(t *testing.T) {
	original := map[string]any{
		"nested": map[string]any{"key": "value"},
		"list":   []any{float64(1), float64(2)},
	}

	clone := CloneParams(original)

	clone["nested"].(map[string]any)["key"] = "changed"
	clone["list"].([]any)[0] = float64(99)

	assert.Equal(t, "value", original["nested"].(map[string]any)["key"])
	assert.Equal(t, float64(1), original["list"].([]any)[0])
}

func TestCloneParams_NilYieldsEmptyMap(t *testing.T) {
	clone := CloneParams(nil)

	require.NotNil(t, clone)
	clone["safe"] = true
}

func TestMergeParams_OverrideWins(t *testing.T) {
	defaults := map[string]any{"a": float64(1), "b": float64(2)}
	overrides := map[string]any{"b": float64(20), "c": float64(3)}

	merged := MergeParams(defaults, overrides)

	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(20), "c": float64(3)}, merged)
	assert.Equal(t, float64(2), defaults["b"], "inputs stay untouched")
}

func TestMergeMetadata_NilBase(t *testing.T) {
	merged := MergeMetadata(nil, MetadataPatch{
		ClassPath: ptr("pkg.Thing"),
		Origin:    ptr(models.OriginImported),
	})

	assert.Equal(t, "pkg.Thing", merged.ClassPath)
	assert.Equal(t, models.OriginImported, merged.Origin)
	assert.Empty(t, merged.FunctionPath)
}

func TestMergeMetadata_UnsetFieldsKeepBase(t *testing.T) {
	base := &models.NodeMetadata{
		ClassPath:     "pkg.Base",
		DefaultParams: map[string]any{"a": float64(1)},
		EstimatorType: "regressor",
	}

	merged := MergeMetadata(base, MetadataPatch{ClassPath: ptr("pkg.Patched")})

	assert.Equal(t, "pkg.Patched", merged.ClassPath)
	assert.Equal(t, "regressor", merged.EstimatorType)
	assert.Equal(t, map[string]any{"a": float64(1)}, merged.DefaultParams)
}

func TestMergeMetadata_ExplicitEmptyMapReplaces(t *testing.T) {
	base := &models.NodeMetadata{
		DefaultParams: map[string]any{"a": float64(1)},
	}

	// A non-nil empty map is a replacement, not a no-op.
	merged := MergeMetadata(base, MetadataPatch{DefaultParams: map[string]any{}})

	assert.Empty(t, merged.DefaultParams)

	// A nil map leaves the base value.
	kept := MergeMetadata(base, MetadataPatch{})
	assert.Equal(t, map[string]any{"a": float64(1)}, kept.DefaultParams)
}

func TestMergeMetadata_SharesNoMutableState(t *testing.T) {
	base := &models.NodeMetadata{
		DefaultParams: map[string]any{"a": float64(1)},
	}
	patch := MetadataPatch{
		EditableParams: []models.EditableParam{{Name: "a", Default: map[string]any{"x": float64(1)}}},
	}

	merged := MergeMetadata(base, patch)

	merged.DefaultParams["a"] = float64(99)
	merged.EditableParams[0].Default.(map[string]any)["x"] = float64(99)

	assert.Equal(t, float64(1), base.DefaultParams["a"])
	assert.Equal(t, float64(1), patch.EditableParams[0].Default.(map[string]any)["x"])
}
