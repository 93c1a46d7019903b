package testing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// TestLogger routes log output through t.Logf and keeps every line for
// assertions.
type TestLogger struct {
	t     testing.TB
	mu    sync.Mutex
	lines []string
}

var _ csvload.Logger = (*TestLogger)(nil)

func NewTestLogger(t testing.TB) *TestLogger {
	return &TestLogger{t: t}
}

func (l *TestLogger) Verbose(format string, args ...interface{}) { l.log("VERBOSE", format, args) }
func (l *TestLogger) Info(format string, args ...interface{})    { l.log("INFO", format, args) }
func (l *TestLogger) Error(format string, args ...interface{})   { l.log("ERROR", format, args) }

func (l *TestLogger) log(level, format string, args []interface{}) {
	line := fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...))
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
	l.t.Logf("%s", line)
}

// Lines returns a copy of everything logged so far.
func (l *TestLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}
