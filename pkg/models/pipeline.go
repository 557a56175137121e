package models

// PipelineDocument is a stored pipeline: the declarative step array plus the
// descriptive envelope the editor saves alongside it. CreatedAt keeps the
// original ISO-8601 string form so foreign documents survive a round trip.
type PipelineDocument struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	Steps       []any  `json:"steps"`
}

// PipelineSummary is the listing view of a stored pipeline.
type PipelineSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FilePath    string `json:"file_path"`
	CreatedAt   string `json:"created_at"`
	StepsCount  int    `json:"steps_count"`
}
