package converter

import (
	"strings"

	"github.com/nirs4all/studio/pkg/models"
)

// ToSteps serializes an ordered node sequence back into pipeline steps, same
// length and order. Each node serializes independently; only generator and
// workflow children recurse.
func (c *Converter) ToSteps(nodes []*models.TreeNode) []any {
	steps := make([]any, 0, len(nodes))
	for _, node := range nodes {
		steps = append(steps, c.serializeNode(node))
	}

	return steps
}

func (c *Converter) serializeNode(node *models.TreeNode) any {
	// An opaque payload bypasses every other rule.
	if raw, ok := node.Params[models.RawParamKey]; ok {
		return CloneValue(raw)
	}

	if node.IsGeneration() {
		switch models.GeneratorKind(node.ComponentID) {
		case models.GeneratorOr:
			return c.serializeOr(node)
		case models.GeneratorRange:
			return c.serializeRange(node)
		}
	}

	if key, ok := models.WorkflowKeyForComponent(node.ComponentID); ok && node.IsContainer() {
		return c.serializeWorkflow(key, node)
	}

	if isModelNode(node) {
		return c.serializeModel(node)
	}

	if models.IsVisualizationID(node.ComponentID) {
		return serializeVisualization(node)
	}

	if node.Meta != nil && node.Meta.ClassPath != "" {
		return serializePath("class", node.Meta.ClassPath, node)
	}

	if node.Meta != nil && node.Meta.FunctionPath != "" {
		return serializePath("function", node.Meta.FunctionPath, node)
	}

	if len(node.Params) > 0 {
		return map[string]any{
			"id":     node.ComponentID,
			"params": CloneParams(node.Params),
		}
	}

	return node.ComponentID
}

func (c *Converter) serializeOr(node *models.TreeNode) map[string]any {
	step := map[string]any{
		string(models.GeneratorOr): c.ToSteps(node.Children),
	}

	if size := node.Params["size"]; size != nil {
		step["size"] = CloneValue(size)
	}

	if count := node.Params["count"]; count != nil {
		step["count"] = CloneValue(count)
	}

	return step
}

// serializeRange re-emits the sweep bounds and merges the first child's
// serialized fields onto the step. Only one nested model is supported;
// additional children are dropped.
func (c *Converter) serializeRange(node *models.TreeNode) map[string]any {
	bounds := node.Params["range"]
	if bounds == nil {
		bounds = []any{float64(0), float64(10), float64(1)}
	}

	step := map[string]any{
		string(models.GeneratorRange): CloneValue(bounds),
	}

	if param := asStringValue(node.Params["param"]); param != "" {
		step["param"] = param
	}

	if len(node.Children) > 0 {
		if fields, ok := c.serializeNode(node.Children[0]).(map[string]any); ok {
			for key, value := range fields {
				step[key] = value
			}
		}
	}

	return step
}

// serializeWorkflow collapses a single child to a bare value and emits an
// array otherwise. The asymmetry with forward conversion is intentional.
func (c *Converter) serializeWorkflow(key string, node *models.TreeNode) map[string]any {
	children := c.ToSteps(node.Children)
	if len(children) == 1 {
		return map[string]any{key: children[0]}
	}

	return map[string]any{key: children}
}

// isModelNode classifies estimator nodes by their palette category, the
// estimator-type tag, or a model_name parameter left by forward conversion.
func isModelNode(node *models.TreeNode) bool {
	category := node.Category
	if category == "" && node.Meta != nil {
		category = node.Meta.CategoryID
	}

	if strings.HasPrefix(category, "models") {
		return true
	}

	if node.Meta != nil && node.Meta.EstimatorType != "" {
		return true
	}

	_, ok := node.Params["model_name"]

	return ok
}

// serializeModel splits the reserved estimator keys out of the merged params
// and emits the canonical model step shape, omitting empty optional fields.
func (c *Converter) serializeModel(node *models.TreeNode) map[string]any {
	merged := MergeParams(metaDefaults(node), node.Params)

	name := asStringValue(merged["model_name"])
	if name == "" {
		name = node.Label
	}

	if name == "" {
		name = "Unnamed Model"
	}

	trainParams := asParamsValue(merged["train_params"])
	finetuneParams := asParamsValue(merged["finetune_params"])

	estimatorType := asStringValue(merged["estimator_type"])
	if estimatorType == "" && node.Meta != nil {
		estimatorType = node.Meta.EstimatorType
	}

	delete(merged, "model_name")
	delete(merged, "train_params")
	delete(merged, "finetune_params")
	delete(merged, "estimator_type")

	model := c.modelValue(node)
	if len(merged) > 0 {
		model["params"] = merged
	}

	step := map[string]any{
		"name":  name,
		"model": model,
	}

	if len(trainParams) > 0 {
		step["train_params"] = trainParams
	}

	if len(finetuneParams) > 0 {
		step["finetune_params"] = finetuneParams
	}

	if estimatorType != "" {
		step["estimator_type"] = estimatorType
	}

	return step
}

// modelValue picks the class-or-function shape: an explicit class path wins,
// then an explicit function path, then the alias table's short class name,
// and finally the component id treated as a class path.
func (c *Converter) modelValue(node *models.TreeNode) map[string]any {
	if node.Meta != nil {
		if node.Meta.ClassPath != "" {
			return map[string]any{"class": node.Meta.ClassPath}
		}

		if node.Meta.FunctionPath != "" {
			return map[string]any{"function": node.Meta.FunctionPath}
		}
	}

	if alias, ok := c.index.AliasClass(node.ComponentID); ok {
		return map[string]any{"class": alias}
	}

	return map[string]any{"class": node.ComponentID}
}

func serializeVisualization(node *models.TreeNode) any {
	if len(node.Params) > 0 {
		return map[string]any{
			"id":     node.ComponentID,
			"params": CloneParams(node.Params),
		}
	}

	return node.ComponentID
}

func serializePath(field, path string, node *models.TreeNode) map[string]any {
	step := map[string]any{field: path}

	params := MergeParams(metaDefaults(node), node.Params)
	if len(params) > 0 {
		step["params"] = params
	}

	return step
}

func metaDefaults(node *models.TreeNode) map[string]any {
	if node.Meta == nil {
		return nil
	}

	return node.Meta.DefaultParams
}
