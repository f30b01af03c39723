package models

import "time"

// Scan session statuses stored in history.
const (
	SessionStarted   = "STARTED"
	SessionCompleted = "COMPLETED"
	SessionFailed    = "FAILED"
)

// DocumentResult is the extraction outcome for one input document.
type DocumentResult struct {
	Source  string           `json:"source" yaml:"source"`
	Kind    string           `json:"kind" yaml:"kind"`
	Records []PathmentRecord `json:"records" yaml:"records"`
	Error   string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// ScanSummary aggregates a scan over many documents.
type ScanSummary struct {
	SessionID    string           `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	StartedAt    time.Time        `json:"started_at" yaml:"started_at"`
	Duration     time.Duration    `json:"duration" yaml:"duration"`
	Documents    []DocumentResult `json:"documents" yaml:"documents"`
	TotalInputs  int              `json:"total_inputs" yaml:"total_inputs"`
	FailedInputs int              `json:"failed_inputs" yaml:"failed_inputs"`
	TypeCounts   map[string]int   `json:"type_counts" yaml:"type_counts"`
}

// Records returns the records of all documents in document order.
func (s *ScanSummary) Records() []PathmentRecord {
	var out []PathmentRecord
	for _, d := range s.Documents {
		out = append(out, d.Records...)
	}
	return out
}

// ScanSession is one row of the scan history.
type ScanSession struct {
	ID           int64     `json:"id" yaml:"id"`
	SessionID    string    `json:"session_id" yaml:"session_id"`
	StartTime    time.Time `json:"start_time" yaml:"start_time"`
	EndTime      time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	Status       string    `json:"status" yaml:"status"`
	TargetSource string    `json:"target_source" yaml:"target_source"`
	NumInputs    int       `json:"num_inputs" yaml:"num_inputs"`
	NumPathments int       `json:"num_pathments" yaml:"num_pathments"`
	NewPathments int       `json:"new_pathments" yaml:"new_pathments"`
	LogSummary   string    `json:"log_summary,omitempty" yaml:"log_summary,omitempty"`
}
