package models

// ComponentLibrary is the externally supplied catalog of known pipeline
// building blocks, consumed read-only. The document is produced by the
// catalog generator and served to the editor as component-library.json.
type ComponentLibrary struct {
	Categories    []CategoryDefinition    `json:"categories"`
	Subcategories []SubcategoryDefinition `json:"subcategories"`
	Components    []ComponentDefinition   `json:"components"`
}

// CategoryDefinition is a top-level palette grouping (preprocessing,
// models_sklearn, utilities, ...).
type CategoryDefinition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	FeatherIcon string `json:"featherIcon,omitempty"`
	Color       string `json:"color,omitempty"`
	BgColor     string `json:"bgColor,omitempty"`
	ClassName   string `json:"className,omitempty"`
}

// SubcategoryDefinition groups components inside a category. The category
// link is weak: a dangling categoryId is tolerated, not an error.
type SubcategoryDefinition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	CategoryID  string `json:"categoryId"`
	Description string `json:"description,omitempty"`
}

// ComponentDefinition describes one known building block: its placement in
// the palette, its default constructor parameters, and the class or function
// path the execution engine instantiates.
type ComponentDefinition struct {
	ID              string          `json:"id"`
	Label           string          `json:"label"`
	ShortName       string          `json:"shortName"`
	SubcategoryID   string          `json:"subcategoryId"`
	Description     string          `json:"description,omitempty"`
	NodeType        NodeType        `json:"nodeType"`
	AllowedChildren []string        `json:"allowedChildren"`
	DefaultParams   map[string]any  `json:"defaultParams"`
	EditableParams  []EditableParam `json:"editableParams"`
	GenerationMode  string          `json:"generationMode,omitempty"`
	ClassPath       string          `json:"classPath,omitempty"`
	FunctionPath    string          `json:"functionPath,omitempty"`
}
