package csvload

import (
	"errors"
	"fmt"
	"time"
)

// LogicalType is the inferred semantic category of a column, independent of
// the destination backend's concrete type names.
type LogicalType int

const (
	TypeText LogicalType = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeDatetime
)

// String returns the lowercase name used in reports and DDL previews.
func (t LogicalType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeDatetime:
		return "datetime"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// IsValid returns true if the LogicalType is one of the defined values.
func (t LogicalType) IsValid() bool {
	return t >= TypeText && t <= TypeDatetime
}

// SourceFile is one ingestible file discovered by the locator.
// Enumerated once at the start of a run and never modified afterwards.
type SourceFile struct {
	Path  string // Path as resolved by the locator
	Name  string // Base file name: "orders.csv"
	Table string // Sanitized file stem: "orders"
	Index int    // Position among siblings (lexicographic by Name)
}

// ColumnDescriptor describes one target column.
// Positional order across descriptors, DDL and insert tuples is load-bearing.
type ColumnDescriptor struct {
	Name     string
	Type     LogicalType
	Nullable bool
}

// LoadedTable is a decoded source file held in memory.
// Rows are aligned to Header by position; a nil value is a null.
type LoadedTable struct {
	Header []string
	Rows   [][]any
}

// NumColumns returns the number of columns in the header.
func (t *LoadedTable) NumColumns() int {
	return len(t.Header)
}

// RunConfig contains all parameters for one ingestion run.
type RunConfig struct {
	// SourcePath is a single delimited file or a directory containing them
	SourcePath string

	// Driver names the destination backend: postgres, sqlserver, sqlite, duckdb
	Driver string

	// ConnectionString is the backend-specific DSN
	ConnectionString string

	// BatchSize is the number of rows per insert batch (0 = DefaultBatchSize)
	BatchSize int

	// Delimiter separates fields (0 = ',')
	Delimiter rune

	// Extensions lists the file suffixes picked up from a directory (nil = .csv)
	Extensions []string

	// Limit caps the rows loaded per file (0 = unlimited)
	Limit int

	// Workers is the number of files ingested concurrently (0 or 1 = sequential)
	Workers int

	// Timeout bounds the whole run (0 = no timeout)
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if err := c.ValidateSource(); err != nil {
		errs = append(errs, err)
	}

	if c.Driver == "" {
		errs = append(errs, fmt.Errorf("Driver is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch size cannot be negative: %w", ErrInvalidConfig))
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers cannot be negative: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ValidateSource checks the fields that control how sources are located and
// decoded. It is the part of Validate that needs no destination.
func (c *RunConfig) ValidateSource() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit cannot be negative: %w", ErrInvalidConfig))
	}

	switch c.Delimiter {
	case '"', '\r', '\n':
		errs = append(errs, fmt.Errorf("delimiter %q is not allowed: %w", c.Delimiter, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// EffectiveBatchSize returns BatchSize, or DefaultBatchSize when unset.
func (c *RunConfig) EffectiveBatchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}
