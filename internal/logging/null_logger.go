package logging

import "github.com/vvka-141/csvload/pkg/csvload"

// NullLogger discards all log messages.
// Used by library callers and tests that do not want output.
type NullLogger struct{}

var _ csvload.Logger = (*NullLogger)(nil)

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}
