package models

// PathmentStatus represents the status of a Pathment in a diff comparison.
type PathmentStatus string

const (
	// StatusNew marks a Pathment present only in the newer input.
	StatusNew PathmentStatus = "new"
	// StatusRemoved marks a Pathment present only in the older input.
	StatusRemoved PathmentStatus = "removed"
	// StatusExisting marks a Pathment present in both inputs.
	StatusExisting PathmentStatus = "existing"
)

// DiffedPathment is a record together with its diff status.
type DiffedPathment struct {
	Record PathmentRecord `json:"record" yaml:"record"`
	Status PathmentStatus `json:"status" yaml:"status"`
}

// Line diff operations.
const (
	LineEqual  = "equal"
	LineInsert = "insert"
	LineDelete = "delete"
)

// LineDiff is one line of a textual comparison of two inputs.
type LineDiff struct {
	Operation string `json:"operation" yaml:"operation"`
	Text      string `json:"text" yaml:"text"`
}

// PathmentDiffResult holds the outcome of comparing two sets of Pathments.
type PathmentDiffResult struct {
	OldSource string           `json:"old_source" yaml:"old_source"`
	NewSource string           `json:"new_source" yaml:"new_source"`
	Results   []DiffedPathment `json:"results" yaml:"results"`
	Lines     []LineDiff       `json:"lines,omitempty" yaml:"lines,omitempty"`
	New       int              `json:"new" yaml:"new"`
	Removed   int              `json:"removed" yaml:"removed"`
	Existing  int              `json:"existing" yaml:"existing"`
}

// Changed reports whether anything was added or removed.
func (r PathmentDiffResult) Changed() bool {
	return r.New > 0 || r.Removed > 0
}
