// Package converter implements the bidirectional mapping between the flat
// declarative pipeline format consumed by the execution engine and the
// editor's tree representation. Forward conversion classifies each step and
// builds a typed node; reverse conversion re-derives the minimal external
// shape per node. Unrecognized content degrades to opaque nodes instead of
// failing, so foreign documents always load and re-export without loss.
package converter

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nirs4all/studio/pkg/library"
	"github.com/nirs4all/studio/pkg/models"
)

// UnknownComponentID marks nodes built from content no dispatch rule
// recognized.
const UnknownComponentID = "unknown"

// NullStepComponentID marks nodes built from null pipeline entries.
const NullStepComponentID = "null_step"

// Converter translates between pipeline steps and tree nodes against one
// component library index. The index is read-only, so a Converter is safe for
// concurrent use; node ids are freshly generated on every call.
type Converter struct {
	index *library.Index
}

// New builds a converter over the given index. A nil index behaves like an
// empty catalog: every lookup degrades to "not found".
func New(index *library.Index) *Converter {
	if index == nil {
		index = library.NewIndex(nil)
	}

	return &Converter{index: index}
}

// ToTree converts an ordered step sequence into tree nodes, same length and
// order. It never fails: every step maps to some node.
func (c *Converter) ToTree(steps []any) []*models.TreeNode {
	nodes := make([]*models.TreeNode, 0, len(steps))
	for _, raw := range steps {
		nodes = append(nodes, c.convertStep(models.DecodeStep(raw)))
	}

	return nodes
}

func (c *Converter) convertStep(step models.Step) *models.TreeNode {
	switch step.Kind {
	case models.StepKindEmpty:
		return unknownNode(NullStepComponentID, NullStepComponentID, nil)
	case models.StepKindString:
		return c.stringNode(step.Name)
	case models.StepKindGenerator:
		return c.generatorNode(step.Generator)
	case models.StepKindWorkflow:
		return c.workflowNode(step.Workflow)
	case models.StepKindModel:
		return c.modelNode(step.Model)
	case models.StepKindFunction:
		return c.functionNode(step.Function)
	case models.StepKindClass:
		return c.classNode(step.Class)
	default:
		return opaqueNode(step.Raw)
	}
}

// stringNode resolves a bare identifier: visualization ids first, then the
// catalog by id, by class path, and through the legacy alias table; anything
// else becomes an unknown node keeping the literal string.
func (c *Converter) stringNode(name string) *models.TreeNode {
	if models.IsVisualizationID(name) {
		if entry, ok := c.index.ByID(name); ok {
			return c.catalogNode(entry, nil, MetadataPatch{})
		}

		return &models.TreeNode{
			ID:          uuid.NewString(),
			Label:       name,
			ComponentID: name,
			ShortName:   name,
			Params:      map[string]any{},
			NodeType:    models.NodeTypeRegular,
			Children:    []*models.TreeNode{},
		}
	}

	if entry, ok := c.index.ByID(name); ok {
		return c.catalogNode(entry, nil, MetadataPatch{})
	}

	if entry, ok := c.index.ByClassPath(name); ok {
		return c.catalogNode(entry, nil, MetadataPatch{ClassPath: ptr(name)})
	}

	if id, ok := c.index.AliasTarget(name); ok {
		if entry, ok := c.index.ByID(id); ok {
			return c.catalogNode(entry, nil, MetadataPatch{ClassPath: ptr(name)})
		}
	}

	return unknownNode(name, name, nil)
}

// generatorNode builds a generation node for _or_ and _range_ steps.
// Generator children preserve input order exactly.
func (c *Converter) generatorNode(spec *models.GeneratorSpec) *models.TreeNode {
	node := &models.TreeNode{
		ID:          uuid.NewString(),
		Label:       string(spec.Kind),
		ComponentID: string(spec.Kind),
		ShortName:   string(spec.Kind),
		NodeType:    models.NodeTypeGeneration,
		Children:    []*models.TreeNode{},
	}

	if entry, ok := c.index.ByID(string(spec.Kind)); ok {
		node.Label = entry.Component.Label
		if entry.Component.ShortName != "" {
			node.ShortName = entry.Component.ShortName
		}

		node.Category = categoryID(entry)
		node.Meta = c.snapshotMetadata(entry, MetadataPatch{})
	}

	switch spec.Kind {
	case models.GeneratorOr:
		node.Params = map[string]any{
			"size":  CloneValue(spec.Size),
			"count": CloneValue(spec.Count),
		}
		for _, choice := range spec.Choices {
			node.Children = append(node.Children, c.convertStep(models.DecodeStep(choice)))
		}
	case models.GeneratorRange:
		param := spec.Param
		if param == "" {
			param = "value"
		}

		node.Params = map[string]any{
			"range": normalizeRange(spec.Range),
			"param": param,
		}
		if spec.Model != nil {
			// The field name fixes the child's role: a bare {class: ...}
			// value converts as a model step, not a class step, so the
			// model key survives re-serialization.
			child := models.DecodeStep(spec.Model)
			if child.Kind != models.StepKindModel {
				child = models.Step{Kind: models.StepKindModel, Model: &models.ModelSpec{Model: spec.Model}}
			}

			node.Children = append(node.Children, c.convertStep(child))
		}
	}

	return node
}

// normalizeRange keeps a 3-element bounds sequence verbatim and rebuilds
// anything else from the labeled {from, to, step} form with defaults 0/10/1.
func normalizeRange(bounds any) any {
	if seq, ok := bounds.([]any); ok && len(seq) == 3 {
		return CloneValue(seq)
	}

	from, to, step := any(float64(0)), any(float64(10)), any(float64(1))
	if labeled, ok := bounds.(map[string]any); ok {
		if v, ok := labeled["from"]; ok {
			from = CloneValue(v)
		}

		if v, ok := labeled["to"]; ok {
			to = CloneValue(v)
		}

		if v, ok := labeled["step"]; ok {
			step = CloneValue(v)
		}
	}

	return []any{from, to, step}
}

// workflowNode builds a container node. The value under the workflow key may
// be a single child or an array; both convert element-wise, with no
// forward-side collapsing.
func (c *Converter) workflowNode(spec *models.WorkflowSpec) *models.TreeNode {
	componentID, _ := models.WorkflowComponentID(spec.Key)

	node := &models.TreeNode{
		ID:          uuid.NewString(),
		Label:       spec.Key,
		ComponentID: componentID,
		ShortName:   spec.Key,
		Params:      map[string]any{},
		NodeType:    models.NodeTypeContainer,
		Children:    []*models.TreeNode{},
	}

	if entry, ok := c.index.ByID(componentID); ok {
		node.Label = entry.Component.Label
		if entry.Component.ShortName != "" {
			node.ShortName = entry.Component.ShortName
		}

		node.Category = categoryID(entry)
		node.Params = CloneParams(entry.Component.DefaultParams)
		node.Meta = c.snapshotMetadata(entry, MetadataPatch{})
	}

	switch value := spec.Value.(type) {
	case []any:
		for _, child := range value {
			node.Children = append(node.Children, c.convertStep(models.DecodeStep(child)))
		}
	default:
		node.Children = append(node.Children, c.convertStep(models.DecodeStep(value)))
	}

	return node
}

// modelNode builds an estimator node. The nested model value is either a
// bare class-path string or an object carrying class/function plus params.
func (c *Converter) modelNode(spec *models.ModelSpec) *models.TreeNode {
	classPath, functionPath, modelParams := splitModelValue(spec.Model)

	params := CloneParams(modelParams)
	params["model_name"] = modelLabel(spec.Name)
	params["train_params"] = CloneParams(spec.TrainParams)
	params["finetune_params"] = CloneParams(spec.FinetuneParams)

	estimatorType := spec.EstimatorType
	if estimatorType == "" {
		estimatorType = asStringValue(modelParams["estimator_type"])
	}

	if estimatorType != "" {
		params["estimator_type"] = estimatorType
	}

	patch := MetadataPatch{EstimatorType: ptr(estimatorType)}
	if classPath != "" {
		patch.ClassPath = ptr(classPath)
	}

	if functionPath != "" {
		patch.FunctionPath = ptr(functionPath)
	}

	if entry, ok := c.lookupModel(classPath, functionPath); ok {
		node := c.catalogNode(entry, MergeParams(entry.Component.DefaultParams, params), patch)
		node.Label = modelLabel(spec.Name)

		return node
	}

	componentID := functionPath
	if componentID == "" {
		if aliased, ok := c.index.AliasTarget(classPath); ok {
			componentID = aliased
		} else {
			componentID = classPath
		}
	}

	node := unknownNode(componentID, componentID, params)
	node.Label = modelLabel(spec.Name)
	node.Meta = MergeMetadata(nil, patch)
	node.Meta.Origin = models.OriginImported

	return node
}

func (c *Converter) lookupModel(classPath, functionPath string) (library.Entry, bool) {
	if classPath != "" {
		if entry, ok := c.index.ByClassPath(classPath); ok {
			return entry, true
		}
	}

	if functionPath != "" {
		if entry, ok := c.index.ByFunctionPath(functionPath); ok {
			return entry, true
		}
	}

	if classPath != "" {
		if id, ok := c.index.AliasTarget(classPath); ok {
			if entry, ok := c.index.ByID(id); ok {
				return entry, true
			}
		}
	}

	return library.Entry{}, false
}

// splitModelValue decomposes the nested model field into its class path,
// function path, and constructor params.
func splitModelValue(model any) (classPath, functionPath string, params map[string]any) {
	switch value := model.(type) {
	case string:
		return value, "", nil
	case map[string]any:
		return asStringValue(value["class"]), asStringValue(value["function"]), asParamsValue(value["params"])
	default:
		return "", "", nil
	}
}

func modelLabel(name string) string {
	if name == "" {
		return "Unnamed Model"
	}

	return name
}

// functionNode resolves a function step by its dotted path; an unresolved
// path falls back to the trailing segment as the component id.
func (c *Converter) functionNode(spec *models.FunctionSpec) *models.TreeNode {
	patch := MetadataPatch{FunctionPath: ptr(spec.Function)}
	if entry, ok := c.index.ByFunctionPath(spec.Function); ok {
		return c.catalogNode(entry, MergeParams(entry.Component.DefaultParams, spec.Params), patch)
	}

	trailing := spec.Function
	if i := strings.LastIndex(spec.Function, "."); i >= 0 {
		trailing = spec.Function[i+1:]
	}

	node := unknownNode(trailing, trailing, CloneParams(spec.Params))
	node.Label = trailing
	node.Meta = MergeMetadata(nil, patch)
	node.Meta.Origin = models.OriginImported

	return node
}

// classNode resolves a class step by its dotted path or alias; an unresolved
// class keeps the raw string as the component id.
func (c *Converter) classNode(spec *models.ClassSpec) *models.TreeNode {
	patch := MetadataPatch{ClassPath: ptr(spec.Class)}
	if entry, ok := c.index.ByClassPath(spec.Class); ok {
		return c.catalogNode(entry, MergeParams(entry.Component.DefaultParams, spec.Params), patch)
	}

	componentID := spec.Class
	if id, ok := c.index.AliasTarget(spec.Class); ok {
		componentID = id
		if entry, ok := c.index.ByID(id); ok {
			return c.catalogNode(entry, MergeParams(entry.Component.DefaultParams, spec.Params), patch)
		}
	}

	node := unknownNode(componentID, componentID, CloneParams(spec.Params))
	node.Label = componentID
	node.Meta = MergeMetadata(nil, patch)
	node.Meta.Origin = models.OriginImported

	return node
}

// catalogNode materializes a node from an index entry. When params is nil the
// node starts from a deep copy of the component's defaults; otherwise params
// is adopted as-is (callers pass freshly merged maps).
func (c *Converter) catalogNode(entry library.Entry, params map[string]any, patch MetadataPatch) *models.TreeNode {
	component := entry.Component
	if params == nil {
		params = CloneParams(component.DefaultParams)
	}

	nodeType := component.NodeType
	if nodeType == "" {
		nodeType = models.NodeTypeRegular
	}

	shortName := component.ShortName
	if shortName == "" {
		shortName = component.ID
	}

	return &models.TreeNode{
		ID:          uuid.NewString(),
		Label:       component.Label,
		ComponentID: component.ID,
		Category:    categoryID(entry),
		ShortName:   shortName,
		Params:      params,
		NodeType:    nodeType,
		Children:    []*models.TreeNode{},
		Meta:        c.snapshotMetadata(entry, patch),
	}
}

// snapshotMetadata captures the component context a node inherits at
// conversion time, then applies the caller's overrides.
func (c *Converter) snapshotMetadata(entry library.Entry, patch MetadataPatch) *models.NodeMetadata {
	base := &models.NodeMetadata{
		DefaultParams:  entry.Component.DefaultParams,
		EditableParams: entry.Component.EditableParams,
		SubcategoryID:  entry.Component.SubcategoryID,
		CategoryID:     categoryID(entry),
		Origin:         models.OriginImported,
	}

	return MergeMetadata(base, patch)
}

func categoryID(entry library.Entry) string {
	if entry.Category == nil {
		return ""
	}

	return entry.Category.ID
}

// unknownNode wraps content no dispatch rule recognized. A nil params map
// stays empty so reverse conversion re-emits the bare component id.
func unknownNode(componentID, shortName string, params map[string]any) *models.TreeNode {
	if params == nil {
		params = map[string]any{}
	}

	return &models.TreeNode{
		ID:          uuid.NewString(),
		Label:       shortName,
		ComponentID: componentID,
		ShortName:   shortName,
		Params:      params,
		NodeType:    models.NodeTypeRegular,
		Children:    []*models.TreeNode{},
	}
}

// opaqueNode preserves an unrecognized object verbatim under the raw param
// key, guaranteeing lossless re-export.
func opaqueNode(raw any) *models.TreeNode {
	return unknownNode(UnknownComponentID, UnknownComponentID, map[string]any{
		models.RawParamKey: raw,
	})
}

func asStringValue(value any) string {
	str, _ := value.(string)

	return str
}

func asParamsValue(value any) map[string]any {
	params, _ := value.(map[string]any)

	return params
}
