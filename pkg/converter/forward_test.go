package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirs4all/studio/pkg/library"
	"github.com/nirs4all/studio/pkg/models"
	"github.com/nirs4all/studio/pkg/testutil"
)

func newTestConverter(t *testing.T) *Converter {
	t.Helper()

	return New(library.NewIndex(testutil.CreateTestCatalog()))
}

func TestToTree_PreservesLengthAndOrder(t *testing.T) {
	conv := newTestConverter(t)

	nodes := conv.ToTree([]any{"min_max_scaler", "savitzky_golay", "chart_2d"})

	require.Len(t, nodes, 3)
	assert.Equal(t, "min_max_scaler", nodes[0].ComponentID)
	assert.Equal(t, "savitzky_golay", nodes[1].ComponentID)
	assert.Equal(t, "chart_2d", nodes[2].ComponentID)
}

func TestToTree_FreshIDsPerConversion(t *testing.T) {
	conv := newTestConverter(t)

	first := conv.ToTree([]any{"min_max_scaler"})
	second := conv.ToTree([]any{"min_max_scaler"})

	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestStringStep_ByID(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{"min_max_scaler"})[0]

	assert.Equal(t, "Min-Max Scaler", node.Label)
	assert.Equal(t, "MinMaxScaler", node.ShortName)
	assert.Equal(t, "preprocessing", node.Category)
	assert.Equal(t, models.NodeTypeRegular, node.NodeType)
	assert.Equal(t, map[string]any{"clip": false}, node.Params)
	require.NotNil(t, node.Meta)
	assert.Equal(t, models.OriginImported, node.Meta.Origin)
	assert.Empty(t, node.Meta.ClassPath, "catalog-resolved nodes carry no path override")
}

func TestStringStep_ParamsNeverAliasDefaults(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{"savitzky_golay"})[0]

	node.Params["window_length"] = float64(21)

	fresh := conv.ToTree([]any{"savitzky_golay"})[0]
	assert.Equal(t, float64(11), fresh.Params["window_length"])
	assert.Equal(t, float64(11), node.Meta.DefaultParams["window_length"])
}

func TestStringStep_ByClassPathRecordsOverride(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{"sklearn.preprocessing.MinMaxScaler"})[0]

	assert.Equal(t, "min_max_scaler", node.ComponentID)
	require.NotNil(t, node.Meta)
	assert.Equal(t, "sklearn.preprocessing.MinMaxScaler", node.Meta.ClassPath)
}

func TestStringStep_LegacyAlias(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{"MinMaxScaler"})[0]

	assert.Equal(t, "min_max_scaler", node.ComponentID)
	require.NotNil(t, node.Meta)
	assert.Equal(t, "MinMaxScaler", node.Meta.ClassPath)
}

func TestStringStep_AliasAndPathResolveSameComponent(t *testing.T) {
	conv := newTestConverter(t)

	byAlias := conv.ToTree([]any{"MinMaxScaler"})[0]
	byPath := conv.ToTree([]any{"sklearn.preprocessing.MinMaxScaler"})[0]

	assert.Equal(t, byPath.ComponentID, byAlias.ComponentID)
}

func TestStringStep_VisualizationWithCatalog(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{"chart_2d"})[0]

	assert.Equal(t, "chart_2d", node.ComponentID)
	assert.Equal(t, "2D Chart", node.Label)
	assert.NotNil(t, node.Meta)
}

func TestStringStep_VisualizationWithoutCatalog(t *testing.T) {
	conv := New(library.NewIndex(nil))

	node := conv.ToTree([]any{"y_chart"})[0]

	assert.Equal(t, "y_chart", node.ComponentID)
	assert.Equal(t, "y_chart", node.ShortName)
	assert.Empty(t, node.Params)
	assert.Nil(t, node.Meta)
}

func TestStringStep_UnknownKeepsLiteral(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{"mystery_operator"})[0]

	assert.Equal(t, "mystery_operator", node.ComponentID)
	assert.Equal(t, "mystery_operator", node.ShortName)
	assert.Empty(t, node.Params)
}

func TestNullStep(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{nil})[0]

	assert.Equal(t, "null_step", node.ComponentID)
	assert.Equal(t, "null_step", node.ShortName)
}

func TestOrGenerator(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"_or_": []any{"min_max_scaler", "standard_scaler"},
		"size": float64(2),
	}})[0]

	assert.Equal(t, models.NodeTypeGeneration, node.NodeType)
	assert.Equal(t, "_or_", node.ComponentID)
	require.Len(t, node.Children, 2)
	assert.Equal(t, "min_max_scaler", node.Children[0].ComponentID)
	assert.Equal(t, "standard_scaler", node.Children[1].ComponentID)
	assert.Equal(t, float64(2), node.Params["size"])

	count, ok := node.Params["count"]
	assert.True(t, ok, "count key present even when absent from the step")
	assert.Nil(t, count)
}

func TestOrGenerator_EmptyChoices(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{"_or_": []any{}}})[0]

	assert.Empty(t, node.Children)
}

func TestRangeGenerator_VerbatimBounds(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"_range_": []any{float64(1), float64(12), float64(2)},
		"param":   "n_components",
	}})[0]

	assert.Equal(t, []any{float64(1), float64(12), float64(2)}, node.Params["range"])
	assert.Equal(t, "n_components", node.Params["param"])
	assert.Empty(t, node.Children)
}

func TestRangeGenerator_LabeledBoundsAndDefaults(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"_range_": map[string]any{"from": float64(5), "to": float64(50)},
	}})[0]

	assert.Equal(t, []any{float64(5), float64(50), float64(1)}, node.Params["range"])
	assert.Equal(t, "value", node.Params["param"])
}

func TestRangeGenerator_MalformedBoundsRebuilt(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"_range_": []any{float64(1)},
	}})[0]

	assert.Equal(t, []any{float64(0), float64(10), float64(1)}, node.Params["range"])
}

func TestRangeGenerator_NestedModelBecomesChild(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"_range_": []any{float64(1), float64(12), float64(2)},
		"param":   "n_components",
		"model":   map[string]any{"class": "sklearn.cross_decomposition.PLSRegression"},
	}})[0]

	require.Len(t, node.Children, 1)
	child := node.Children[0]
	assert.Equal(t, "pls_regression", child.ComponentID)
	assert.Equal(t, "Unnamed Model", child.Label)
}

func TestWorkflowStep_ArrayChildren(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"feature_augmentation": []any{"min_max_scaler", "standard_scaler"},
	}})[0]

	assert.Equal(t, models.NodeTypeContainer, node.NodeType)
	assert.Equal(t, "feature_augmentation", node.ComponentID)
	require.Len(t, node.Children, 2)
}

func TestWorkflowStep_SingleChildNotAnArray(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"y_processing": "min_max_scaler",
	}})[0]

	require.Len(t, node.Children, 1)
	assert.Equal(t, "min_max_scaler", node.Children[0].ComponentID)
}

func TestWorkflowStep_SampleAugmentationMapsToHistoricalID(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"sample_augmentation": []any{"min_max_scaler"},
	}})[0]

	assert.Equal(t, "augmentation_sample", node.ComponentID)
}

func TestModelStep_ResolvedByClassPath(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"name": "My PLS",
		"model": map[string]any{
			"class":  "sklearn.cross_decomposition.PLSRegression",
			"params": map[string]any{"n_components": float64(5)},
		},
		"train_params":   map[string]any{"epochs": float64(10)},
		"estimator_type": "regressor",
	}})[0]

	assert.Equal(t, "pls_regression", node.ComponentID)
	assert.Equal(t, "My PLS", node.Label)
	assert.Equal(t, "My PLS", node.Params["model_name"])
	assert.Equal(t, float64(5), node.Params["n_components"], "model params override catalog defaults")
	assert.Equal(t, map[string]any{"epochs": float64(10)}, node.Params["train_params"])
	assert.Equal(t, map[string]any{}, node.Params["finetune_params"])
	assert.Equal(t, "regressor", node.Params["estimator_type"])
	require.NotNil(t, node.Meta)
	assert.Equal(t, "regressor", node.Meta.EstimatorType)
	assert.Equal(t, "sklearn.cross_decomposition.PLSRegression", node.Meta.ClassPath)
}

func TestModelStep_BareClassPathString(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"model": "sklearn.cross_decomposition.PLSRegression",
	}})[0]

	assert.Equal(t, "pls_regression", node.ComponentID)
	assert.Equal(t, "Unnamed Model", node.Label)
}

func TestModelStep_EstimatorTypeFromModelParams(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"model": map[string]any{
			"class":  "sklearn.cross_decomposition.PLSRegression",
			"params": map[string]any{"estimator_type": "classifier"},
		},
	}})[0]

	assert.Equal(t, "classifier", node.Params["estimator_type"])
	assert.Equal(t, "classifier", node.Meta.EstimatorType)
}

func TestModelStep_UnresolvedFallsBackToRawPath(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"name":  "Custom",
		"model": map[string]any{"class": "myproject.models.CustomNet"},
	}})[0]

	assert.Equal(t, "myproject.models.CustomNet", node.ComponentID)
	assert.Equal(t, "Custom", node.Label)
	require.NotNil(t, node.Meta)
	assert.Equal(t, "myproject.models.CustomNet", node.Meta.ClassPath)
}

func TestFunctionStep_Resolved(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"function": "nirs4all.operators.transformations.resample",
		"params":   map[string]any{"num": float64(50)},
	}})[0]

	assert.Equal(t, "resample", node.ComponentID)
	assert.Equal(t, float64(50), node.Params["num"])
	require.NotNil(t, node.Meta)
	assert.Equal(t, "nirs4all.operators.transformations.resample", node.Meta.FunctionPath)
}

func TestFunctionStep_UnresolvedTrailingSegment(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"function": "scipy.signal.medfilt",
	}})[0]

	assert.Equal(t, "medfilt", node.ComponentID)
	assert.Equal(t, "scipy.signal.medfilt", node.Meta.FunctionPath)
}

func TestClassStep_Resolved(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"class":  "sklearn.preprocessing.StandardScaler",
		"params": map[string]any{"with_std": false},
	}})[0]

	assert.Equal(t, "standard_scaler", node.ComponentID)
	assert.Equal(t, false, node.Params["with_std"])
	assert.Equal(t, true, node.Params["with_mean"], "defaults fill in untouched keys")
}

func TestClassStep_UnresolvedKeepsRawClass(t *testing.T) {
	conv := newTestConverter(t)

	node := conv.ToTree([]any{map[string]any{
		"class": "myproject.CustomOp",
	}})[0]

	assert.Equal(t, "myproject.CustomOp", node.ComponentID)
	assert.Equal(t, "myproject.CustomOp", node.Meta.ClassPath)
}

func TestOpaqueStep_WrapsWholePayload(t *testing.T) {
	conv := newTestConverter(t)

	payload := map[string]any{"custom": map[string]any{"nested": []any{float64(1)}}}
	node := conv.ToTree([]any{payload})[0]

	assert.Equal(t, UnknownComponentID, node.ComponentID)
	assert.Equal(t, payload, node.Params[models.RawParamKey])
}
