// Package testutil provides test data builders shared across packages.
package testutil

import "github.com/nirs4all/studio/pkg/models"

// CreateTestComponent creates a component definition with default values that
// can be overridden.
func CreateTestComponent(id string, overrides ...func(*models.ComponentDefinition)) models.ComponentDefinition {
	component := models.ComponentDefinition{
		ID:             id,
		Label:          id,
		ShortName:      id,
		SubcategoryID:  "scalers",
		NodeType:       models.NodeTypeRegular,
		DefaultParams:  map[string]any{},
		EditableParams: []models.EditableParam{},
	}

	for _, override := range overrides {
		override(&component)
	}

	return component
}

// WithClassPath sets the component's class path.
func WithClassPath(path string) func(*models.ComponentDefinition) {
	return func(c *models.ComponentDefinition) {
		c.ClassPath = path
	}
}

// WithFunctionPath sets the component's function path.
func WithFunctionPath(path string) func(*models.ComponentDefinition) {
	return func(c *models.ComponentDefinition) {
		c.FunctionPath = path
	}
}

// WithDefaultParams sets the component's default constructor params.
func WithDefaultParams(params map[string]any) func(*models.ComponentDefinition) {
	return func(c *models.ComponentDefinition) {
		c.DefaultParams = params
	}
}

// WithNodeType sets the component's node type.
func WithNodeType(nodeType models.NodeType) func(*models.ComponentDefinition) {
	return func(c *models.ComponentDefinition) {
		c.NodeType = nodeType
	}
}

// WithSubcategory places the component in a subcategory.
func WithSubcategory(id string) func(*models.ComponentDefinition) {
	return func(c *models.ComponentDefinition) {
		c.SubcategoryID = id
	}
}

// WithShortName sets the component's short display name.
func WithShortName(name string) func(*models.ComponentDefinition) {
	return func(c *models.ComponentDefinition) {
		c.ShortName = name
	}
}

// WithLabel sets the component's palette label.
func WithLabel(label string) func(*models.ComponentDefinition) {
	return func(c *models.ComponentDefinition) {
		c.Label = label
	}
}

// CreateTestCatalog builds a small component library covering the shapes the
// converter handles: scalers with class paths, a model, a function component,
// the workflow containers, the generators, and a chart.
func CreateTestCatalog() *models.ComponentLibrary {
	return &models.ComponentLibrary{
		Categories: []models.CategoryDefinition{
			{ID: "preprocessing", Label: "Preprocessing"},
			{ID: "models_sklearn", Label: "Scikit-learn Models"},
			{ID: "utilities", Label: "Utilities"},
			{ID: "charts", Label: "Charts"},
		},
		Subcategories: []models.SubcategoryDefinition{
			{ID: "scalers", Label: "Scalers", CategoryID: "preprocessing"},
			{ID: "signal", Label: "Signal Processing", CategoryID: "preprocessing"},
			{ID: "regression", Label: "Regression", CategoryID: "models_sklearn"},
			{ID: "flow", Label: "Flow Control", CategoryID: "utilities"},
			{ID: "visualization", Label: "Visualization", CategoryID: "charts"},
		},
		Components: []models.ComponentDefinition{
			CreateTestComponent("min_max_scaler",
				WithLabel("Min-Max Scaler"),
				WithShortName("MinMaxScaler"),
				WithClassPath("sklearn.preprocessing.MinMaxScaler"),
				WithDefaultParams(map[string]any{"clip": false}),
			),
			CreateTestComponent("standard_scaler",
				WithLabel("Standard Scaler"),
				WithShortName("StandardScaler"),
				WithClassPath("sklearn.preprocessing.StandardScaler"),
				WithDefaultParams(map[string]any{"with_mean": true, "with_std": true}),
			),
			CreateTestComponent("savitzky_golay",
				WithLabel("Savitzky-Golay"),
				WithShortName("SavGol"),
				WithSubcategory("signal"),
				WithClassPath("nirs4all.operators.transformations.SavitzkyGolay"),
				WithDefaultParams(map[string]any{"window_length": float64(11), "polyorder": float64(3)}),
			),
			CreateTestComponent("pls_regression",
				WithLabel("PLS Regression"),
				WithShortName("PLS"),
				WithSubcategory("regression"),
				WithClassPath("sklearn.cross_decomposition.PLSRegression"),
				WithDefaultParams(map[string]any{"n_components": float64(2)}),
			),
			CreateTestComponent("resample",
				WithLabel("Resample"),
				WithSubcategory("signal"),
				WithFunctionPath("nirs4all.operators.transformations.resample"),
				WithDefaultParams(map[string]any{"num": float64(100)}),
			),
			CreateTestComponent("feature_augmentation",
				WithLabel("Feature Augmentation"),
				WithSubcategory("flow"),
				WithNodeType(models.NodeTypeContainer),
			),
			CreateTestComponent("augmentation_sample",
				WithLabel("Sample Augmentation"),
				WithSubcategory("flow"),
				WithNodeType(models.NodeTypeContainer),
			),
			CreateTestComponent("y_processing",
				WithLabel("Y Processing"),
				WithSubcategory("flow"),
				WithNodeType(models.NodeTypeContainer),
			),
			CreateTestComponent("_or_",
				WithLabel("Or Choices"),
				WithSubcategory("flow"),
				WithNodeType(models.NodeTypeGeneration),
			),
			CreateTestComponent("_range_",
				WithLabel("Parameter Range"),
				WithSubcategory("flow"),
				WithNodeType(models.NodeTypeGeneration),
			),
			CreateTestComponent("chart_2d",
				WithLabel("2D Chart"),
				WithSubcategory("visualization"),
			),
		},
	}
}
