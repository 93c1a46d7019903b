package csvload

import "context"

// Sink is a single connection to a destination database.
// A Sink is owned by one ingestion task at a time; it is never shared between
// concurrent writers.
type Sink interface {
	// Dialect returns the SQL dialect used to build statements for this sink.
	Dialect() Dialect

	// ExecuteDDL runs one schema statement outside any batch transaction.
	ExecuteDDL(ctx context.Context, stmt string) error

	// ExecuteBatch executes stmt once per row inside a single transaction.
	// Either every row is committed or none is.
	ExecuteBatch(ctx context.Context, stmt string, rows [][]any) error

	// Close releases the underlying connection.
	Close() error
}

// SinkFactory opens a fresh Sink. The coordinator opens one per worker.
type SinkFactory interface {
	Open(ctx context.Context) (Sink, error)
}

// Dialect renders backend-specific SQL.
type Dialect interface {
	// Name returns the driver name, e.g. "postgres".
	Name() string

	// QuoteIdentifier quotes name so it is safe as a table or column identifier.
	QuoteIdentifier(name string) string

	// ColumnType maps a logical type onto the backend's column type.
	ColumnType(t LogicalType) string

	// CreateTableIfNotExists builds an idempotent CREATE TABLE statement.
	CreateTableIfNotExists(table string, columns []ColumnDescriptor) string

	// InsertStatement builds a parameterized single-row INSERT statement.
	InsertStatement(table string, columns []ColumnDescriptor) string
}

// Decoder turns one source file into an in-memory table.
type Decoder interface {
	Decode(ctx context.Context, file SourceFile) (*LoadedTable, error)
}
