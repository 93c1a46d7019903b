package csvload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Every file ingested successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to the destination
	ExitInvalidSource   = 12 // Source path has nothing to ingest
	ExitIngestionFailed = 13 // At least one file did not load completely
)

const (
	// DefaultBatchSize is the number of rows submitted per insert batch.
	DefaultBatchSize = 5000

	// DefaultExtension is the suffix picked up when scanning a directory.
	DefaultExtension = ".csv"

	// DefaultDelimiter separates fields in a source file.
	DefaultDelimiter = ','

	// DatetimeLayout is the canonical textual form for datetime values.
	// No zone suffix: zone information is discarded before rendering.
	DatetimeLayout = "2006-01-02 15:04:05"

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxErrorPreviewLength caps statement text quoted in error messages.
	MaxErrorPreviewLength = 200
)

// Supported destination drivers.
const (
	DriverPostgres  = "postgres"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite"
	DriverDuckDB    = "duckdb"
)
