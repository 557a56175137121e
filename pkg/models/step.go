package models

// Step is the decoded form of one entry in the backend's declarative pipeline
// array. The external format tags steps by shape rather than by an explicit
// field, so DecodeStep probes the shape exactly once and the converters switch
// exhaustively on Kind instead of repeating sequential shape checks.
type Step struct {
	Kind StepKind

	Name      string // StepKindString
	Generator *GeneratorSpec
	Workflow  *WorkflowSpec
	Model     *ModelSpec
	Function  *FunctionSpec
	Class     *ClassSpec
	Raw       any // StepKindOpaque: the whole unrecognized payload
}

// StepKind discriminates the closed set of step shapes.
type StepKind string

const (
	StepKindEmpty     StepKind = "empty" // null step
	StepKindString    StepKind = "string"
	StepKindGenerator StepKind = "generator"
	StepKindWorkflow  StepKind = "workflow"
	StepKindModel     StepKind = "model"
	StepKindFunction  StepKind = "function"
	StepKindClass     StepKind = "class"
	StepKindOpaque    StepKind = "opaque"
)

// GeneratorKind distinguishes the two generator forms.
type GeneratorKind string

const (
	GeneratorOr    GeneratorKind = "_or_"
	GeneratorRange GeneratorKind = "_range_"
)

// GeneratorSpec is a combinatorial choice (_or_) or a parameter sweep
// (_range_). Size, Count and Range hold the document values verbatim; they
// are nil when the key was absent.
type GeneratorSpec struct {
	Kind    GeneratorKind
	Choices []any  // _or_: alternatives, converted element-wise (may be empty)
	Size    any    // _or_
	Count   any    // _or_
	Range   any    // _range_: bounds, 3-element array or labeled object
	Param   string // _range_: swept parameter name, "" when absent
	Model   any    // _range_: optional nested model step
}

// WorkflowSpec is a grouping construct: one fixed key mapping to a single
// child step or an array of children.
type WorkflowSpec struct {
	Key   string
	Value any
}

// ModelSpec is an estimator step. Model holds the nested model value
// verbatim: either a bare class-path string or an object carrying
// class/function and params.
type ModelSpec struct {
	Name           string
	Model          any
	TrainParams    map[string]any
	FinetuneParams map[string]any
	EstimatorType  string
}

// FunctionSpec instantiates a factory function by dotted path.
type FunctionSpec struct {
	Function string
	Params   map[string]any
}

// ClassSpec instantiates a class by dotted path.
type ClassSpec struct {
	Class  string
	Params map[string]any
}

// WorkflowKeys is the fixed set of container keys recognized in pipeline
// documents, in dispatch order.
var WorkflowKeys = []string{
	"feature_augmentation",
	"sample_augmentation",
	"sequential",
	"pipeline",
	"y_processing",
}

// workflowComponents maps a document workflow key to its catalog component
// id. Only sample_augmentation differs; the catalog registered it under the
// historical id augmentation_sample.
var workflowComponents = map[string]string{
	"feature_augmentation": "feature_augmentation",
	"sample_augmentation":  "augmentation_sample",
	"sequential":           "sequential",
	"pipeline":             "pipeline",
	"y_processing":         "y_processing",
}

// IsWorkflowKey reports whether key is one of the recognized container keys.
func IsWorkflowKey(key string) bool {
	_, ok := workflowComponents[key]

	return ok
}

// WorkflowComponentID resolves a workflow key to its catalog component id.
func WorkflowComponentID(key string) (string, bool) {
	id, ok := workflowComponents[key]

	return id, ok
}

// WorkflowKeyForComponent is the reverse mapping: the document key to emit
// for a container node's catalog component id.
func WorkflowKeyForComponent(componentID string) (string, bool) {
	for key, id := range workflowComponents {
		if id == componentID {
			return key, true
		}
	}

	return "", false
}

// visualizationIDs is the fixed set of chart identifiers that may appear as
// bare strings in a pipeline even when the catalog is absent.
var visualizationIDs = map[string]struct{}{
	"chart_2d":         {},
	"chart_3d":         {},
	"y_chart":          {},
	"fold_chart":       {},
	"confusion_matrix": {},
}

// IsVisualizationID reports whether id names a known visualization step.
func IsVisualizationID(id string) bool {
	_, ok := visualizationIDs[id]

	return ok
}

// DecodeStep classifies one raw pipeline entry into its Step variant. The
// dispatch priority matches the external format: generator keys win over
// every other key, then workflow keys, then model, function, and class; any
// other shape is opaque so it can be re-exported without loss.
func DecodeStep(raw any) Step {
	if raw == nil {
		return Step{Kind: StepKindEmpty}
	}

	switch value := raw.(type) {
	case string:
		return Step{Kind: StepKindString, Name: value}
	case map[string]any:
		return decodeObjectStep(value)
	default:
		return Step{Kind: StepKindOpaque, Raw: raw}
	}
}

func decodeObjectStep(obj map[string]any) Step {
	if choices, ok := obj[string(GeneratorOr)]; ok {
		return Step{Kind: StepKindGenerator, Generator: &GeneratorSpec{
			Kind:    GeneratorOr,
			Choices: asSlice(choices),
			Size:    obj["size"],
			Count:   obj["count"],
		}}
	}

	if bounds, ok := obj[string(GeneratorRange)]; ok {
		return Step{Kind: StepKindGenerator, Generator: &GeneratorSpec{
			Kind:  GeneratorRange,
			Range: bounds,
			Param: asString(obj["param"]),
			Model: obj["model"],
		}}
	}

	if key, ok := singleWorkflowKey(obj); ok {
		return Step{Kind: StepKindWorkflow, Workflow: &WorkflowSpec{
			Key:   key,
			Value: obj[key],
		}}
	}

	if model, ok := obj["model"]; ok {
		return Step{Kind: StepKindModel, Model: &ModelSpec{
			Name:           asString(obj["name"]),
			Model:          model,
			TrainParams:    asParams(obj["train_params"]),
			FinetuneParams: asParams(obj["finetune_params"]),
			EstimatorType:  asString(obj["estimator_type"]),
		}}
	}

	if function := asString(obj["function"]); function != "" {
		return Step{Kind: StepKindFunction, Function: &FunctionSpec{
			Function: function,
			Params:   asParams(obj["params"]),
		}}
	}

	if class := asString(obj["class"]); class != "" {
		return Step{Kind: StepKindClass, Class: &ClassSpec{
			Class:  class,
			Params: asParams(obj["params"]),
		}}
	}

	return Step{Kind: StepKindOpaque, Raw: obj}
}

// singleWorkflowKey returns the workflow key present in obj when exactly one
// of the fixed set occurs; two or more recognized keys make the shape
// ambiguous and dispatch falls through to the remaining checks.
func singleWorkflowKey(obj map[string]any) (string, bool) {
	found := ""
	count := 0

	for _, key := range WorkflowKeys {
		if _, ok := obj[key]; ok {
			found = key
			count++
		}
	}

	return found, count == 1
}

func asString(value any) string {
	str, _ := value.(string)

	return str
}

func asSlice(value any) []any {
	slice, _ := value.([]any)

	return slice
}

func asParams(value any) map[string]any {
	params, _ := value.(map[string]any)

	return params
}
