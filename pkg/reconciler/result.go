package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/pedigreecheck/pkg/matcher"
	"github.com/agentstation/pedigreecheck/pkg/report"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Report holds the deduplicated outcomes.
	Report *report.Report

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation run.
type ResultMetadata struct {
	// RunID identifies the run in diagnostic logs
	RunID string `json:"run_id" yaml:"run_id"`

	// StartTime when reconciliation started
	StartTime time.Time `json:"start_time" yaml:"start_time"`

	// EndTime when reconciliation completed
	EndTime time.Time `json:"end_time" yaml:"end_time"`

	// Duration of the reconciliation
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Workers that checked records concurrently
	Workers int `json:"workers" yaml:"workers"`

	// NearMatch reports whether the near-match person tier was enabled
	NearMatch bool `json:"near_match" yaml:"near_match"`

	// Statistics about the reconciliation
	Stats ResultStatistics `json:"stats" yaml:"stats"`
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	ReferenceRows int   `json:"reference_rows" yaml:"reference_rows"`
	SubmittedRows int   `json:"submitted_rows" yaml:"submitted_rows"`
	Emitted       int   `json:"emitted" yaml:"emitted"`
	Messages      int   `json:"messages" yaml:"messages"`
	Warnings      int   `json:"warnings" yaml:"warnings"`
	TotalTimeMs   int64 `json:"total_time_ms" yaml:"total_time_ms"`
}

// NewResult creates a new result with an empty report.
func NewResult(runID string) *Result {
	return &Result{
		Report: report.New(),
		Metadata: ResultMetadata{
			RunID:     runID,
			StartTime: time.Now(),
		},
	}
}

// HasWarnings returns true if any distinct message is a warning.
func (r *Result) HasWarnings() bool {
	return r.Metadata.Stats.Warnings > 0
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	if s.SubmittedRows == 0 {
		return "Reconciliation completed. No submitted records."
	}
	return fmt.Sprintf("Reconciliation completed. %d submitted records checked against %d reference rows: %d messages, %d warnings.",
		s.SubmittedRows, s.ReferenceRows, s.Messages, s.Warnings)
}

// Finalize calculates duration and report statistics and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
	r.Metadata.Stats.Messages = r.Report.Len()
	r.Metadata.Stats.Warnings = r.Report.CountBySeverity()[matcher.SeverityWarning]
}
