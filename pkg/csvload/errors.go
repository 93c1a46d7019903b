package csvload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	report, err := coordinator.Run(ctx, config)
//	if errors.Is(err, csvload.ErrInvalidSource) {
//	    // Nothing to ingest at the given path
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidSource indicates the source path is missing or holds no ingestible files.
	ErrInvalidSource = errors.New("invalid source")

	// ErrDecode indicates a source file could not be decoded into a table.
	ErrDecode = errors.New("decode failed")

	// ErrProvisioning indicates the destination table could not be created.
	ErrProvisioning = errors.New("provisioning failed")

	// ErrBatchInsert indicates a batch was rejected by the destination.
	ErrBatchInsert = errors.New("batch insert failed")

	// ErrIngestionFailed indicates at least one file did not load completely.
	ErrIngestionFailed = errors.New("ingestion failed")

	// ErrUnsupportedDriver indicates the requested destination driver is unknown.
	ErrUnsupportedDriver = errors.New("unsupported driver")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")
)

// InvalidSourceError reports a source path that cannot be ingested.
type InvalidSourceError struct {
	Path   string
	Reason string
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid source %q: %s", e.Path, e.Reason)
}

func (e *InvalidSourceError) Unwrap() error { return ErrInvalidSource }

// DecodeError reports a malformed source file. Line is 1-based; 0 means unknown.
type DecodeError struct {
	File string
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decode %s (line %d): %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.File, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// ProvisioningError reports a failure to create the destination table.
type ProvisioningError struct {
	Table     string
	Statement string
	Err       error
}

func (e *ProvisioningError) Error() string {
	if e.Statement == "" {
		return fmt.Sprintf("provision table %q: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("provision table %q: %v\nStatement: %s", e.Table, e.Err, Preview(e.Statement))
}

func (e *ProvisioningError) Unwrap() []error { return []error{ErrProvisioning, e.Err} }

// BatchInsertError reports the batch that failed. Batch is 1-based and
// RowsBefore counts rows durably committed by earlier batches.
type BatchInsertError struct {
	Table      string
	Batch      int
	RowsBefore int
	Err        error
}

func (e *BatchInsertError) Error() string {
	return fmt.Sprintf("insert into %q failed at batch %d (%d rows committed before): %v",
		e.Table, e.Batch, e.RowsBefore, e.Err)
}

func (e *BatchInsertError) Unwrap() []error { return []error{ErrBatchInsert, e.Err} }

// Preview truncates s to MaxErrorPreviewLength for inclusion in messages.
func Preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= MaxErrorPreviewLength {
		return s
	}
	return s[:MaxErrorPreviewLength] + "..."
}

// usageErrorPatterns match the messages cobra produces for CLI misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedDriver):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrInvalidSource):
		return ExitInvalidSource
	case errors.Is(err, ErrIngestionFailed),
		errors.Is(err, ErrDecode),
		errors.Is(err, ErrProvisioning),
		errors.Is(err, ErrBatchInsert):
		return ExitIngestionFailed
	}

	errStr := err.Error()
	for _, p := range usageErrorPatterns {
		if strings.Contains(errStr, p) {
			return ExitUsageError
		}
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
