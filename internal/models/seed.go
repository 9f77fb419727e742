package models

import (
	"time"
)

// SeedReport summarizes loading one resource from a fixture file
type SeedReport struct {
	Resource   string            `json:"resource"`
	Total      int               `json:"total"`
	Inserted   int               `json:"inserted"`
	Failed     int               `json:"failed"`
	DurationMs int64             `json:"duration_ms"`
	RowsPerSec float64           `json:"rows_per_sec,omitempty"`
	Errors     []ValidationError `json:"errors,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
}

// ValidationError represents a single rejected fixture field
type ValidationError struct {
	Line    int         `json:"line"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// MaxReportErrors caps the errors kept on a single report
const MaxReportErrors = 1000

// Reject counts one failed record and keeps its errors, up to MaxReportErrors
func (r *SeedReport) Reject(errs ...ValidationError) {
	r.Failed++
	room := min(MaxReportErrors-len(r.Errors), len(errs))
	if room > 0 {
		r.Errors = append(r.Errors, errs[:room]...)
	}
}
