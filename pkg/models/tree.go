// Package models defines the core domain models shared by the pipeline
// converter, the component library index, and the persistence layer.
package models

// NodeType classifies how a tree node behaves in the editor.
type NodeType string

const (
	NodeTypeRegular    NodeType = "regular"    // Leaf operators (transformers, models, charts)
	NodeTypeContainer  NodeType = "container"  // Workflow nodes holding ordered children
	NodeTypeGeneration NodeType = "generation" // Generator nodes (_or_, _range_)
)

// OriginImported marks metadata captured while importing a pipeline document,
// as opposed to metadata attached when a node is dragged in from the palette.
const OriginImported = "imported"

// RawParamKey holds the opaque payload of an unrecognized step. A node
// carrying this key re-exports its payload verbatim, bypassing every other
// serialization rule.
const RawParamKey = "_raw"

// TreeNode is one node in the editor's hierarchical pipeline representation.
// IDs are process-unique and regenerated on every conversion; they are not
// stable across round trips.
type TreeNode struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	ComponentID string         `json:"componentId"`
	Category    string         `json:"category"`
	ShortName   string         `json:"shortName"`
	Params      map[string]any `json:"params"`
	NodeType    NodeType       `json:"nodeType"`
	Children    []*TreeNode    `json:"children"`
	Meta        *NodeMetadata  `json:"meta,omitempty"`
}

// NodeMetadata carries the component context a node inherited at conversion
// time. ClassPath and FunctionPath are only set when the source document
// spelled them out (an override); catalog-resolved nodes leave them empty so
// serialization can re-derive the minimal external shape.
type NodeMetadata struct {
	ClassPath      string          `json:"classPath,omitempty"`
	FunctionPath   string          `json:"functionPath,omitempty"`
	DefaultParams  map[string]any  `json:"defaultParams"`
	EditableParams []EditableParam `json:"editableParams"`
	CategoryID     string          `json:"categoryId,omitempty"`
	SubcategoryID  string          `json:"subcategoryId,omitempty"`
	EstimatorType  string          `json:"estimatorType,omitempty"`
	Origin         string          `json:"origin"`
}

// EditableParam describes one user-editable parameter of a component.
type EditableParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default"`
}

// IsGeneration reports whether the node expands into multiple pipeline
// variants when the backend runs it.
func (n *TreeNode) IsGeneration() bool {
	return n.NodeType == NodeTypeGeneration
}

// IsContainer reports whether the node groups child steps under one named
// workflow operation.
func (n *TreeNode) IsContainer() bool {
	return n.NodeType == NodeTypeContainer
}
