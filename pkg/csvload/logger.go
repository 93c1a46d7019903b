package csvload

// Logger receives the run's diagnostic output. The ingestion service logs
// per-file results at Info, failures at Error, and stage-level detail
// (decoded row counts, provisioning statements, batch commits) at Verbose.
//
// Implementations must be safe for concurrent use: with Workers > 1 several
// files log at once.
type Logger interface {
	// Verbose logs stage-level detail. Dropped unless verbose mode is on.
	Verbose(format string, args ...interface{})

	// Info logs normal progress such as a finished file.
	Info(format string, args ...interface{})

	// Error logs failures.
	Error(format string, args ...interface{})
}
