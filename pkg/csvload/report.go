package csvload

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the final state of one file.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusPartialFailure Status = "partial-failure"
	StatusFailure        Status = "failure"
)

// LoadResult is what the batch loader reports for one file.
type LoadResult struct {
	RowsAttempted    int
	RowsCommitted    int
	BatchesCommitted int
	FailedBatch      int // 1-based; 0 when no batch failed
	Err              error
}

// FileOutcome is the per-file entry of a Report.
type FileOutcome struct {
	File             SourceFile
	Table            string
	Status           Status
	Columns          []ColumnDescriptor
	RowsAttempted    int
	RowsCommitted    int
	BatchesCommitted int
	FailedBatch      int
	Err              error
	Duration         time.Duration
}

// StatusFor derives the outcome status from a failure and the committed row count.
// A failure after at least one committed row is a partial failure.
func StatusFor(err error, rowsCommitted int) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case rowsCommitted > 0:
		return StatusPartialFailure
	default:
		return StatusFailure
	}
}

// Report aggregates the outcomes of one run, in located-file order.
type Report struct {
	RunID     uuid.UUID
	Driver    string
	StartedAt time.Time
	Duration  time.Duration
	Outcomes  []FileOutcome
}

// NewReport creates an empty report with a fresh run identifier.
func NewReport(driver string) *Report {
	return &Report{
		RunID:     uuid.New(),
		Driver:    driver,
		StartedAt: time.Now(),
	}
}

// Success returns true when every file finished with StatusSuccess.
func (r *Report) Success() bool {
	for _, o := range r.Outcomes {
		if o.Status != StatusSuccess {
			return false
		}
	}
	return true
}

// TotalRowsCommitted sums committed rows across all files.
func (r *Report) TotalRowsCommitted() int {
	total := 0
	for _, o := range r.Outcomes {
		total += o.RowsCommitted
	}
	return total
}

// Failed returns the outcomes that did not succeed.
func (r *Report) Failed() []FileOutcome {
	var failed []FileOutcome
	for _, o := range r.Outcomes {
		if o.Status != StatusSuccess {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err summarizes the run as an error wrapping ErrIngestionFailed, or nil.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files did not load completely: %w",
		len(failed), len(r.Outcomes), ErrIngestionFailed)
}
