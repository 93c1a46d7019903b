// Package logging provides concrete implementations of the csvload.Logger
// interface, plus an Observer that reports run progress through a Logger.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//   - LogObserver: Turns progress events into log lines
//
// All implementations are safe for concurrent use by multiple goroutines.
package logging
