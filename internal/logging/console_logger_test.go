package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(l *ConsoleLogger)
		want    string
	}{
		{"verbose enabled", true, func(l *ConsoleLogger) { l.Verbose("decoded %s", "orders.csv") }, "[VERBOSE] decoded orders.csv\n"},
		{"verbose disabled", false, func(l *ConsoleLogger) { l.Verbose("decoded %s", "orders.csv") }, ""},
		{"info", false, func(l *ConsoleLogger) { l.Info("%s -> %s: %d rows", "a.csv", "a", 2) }, "a.csv -> a: 2 rows\n"},
		{"error", false, func(l *ConsoleLogger) { l.Error("batch %d failed", 3) }, "[ERROR] batch 3 failed\n"},
		{"no args keeps percent signs", false, func(l *ConsoleLogger) { l.Info("100% done") }, "100% done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewConsoleLoggerTo(&buf, tt.verbose))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 30)
	for i, line := range lines {
		ok := strings.HasPrefix(line, "message ") ||
			strings.HasPrefix(line, "[VERBOSE] verbose ") ||
			strings.HasPrefix(line, "[ERROR] error ")
		assert.True(t, ok, "line %d appears corrupted: %q", i, line)
	}
}

func TestNewConsoleLoggerTo_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewConsoleLoggerTo(nil, false) })
}

func TestNullLogger_ConcurrentSafety(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()
}

func BenchmarkConsoleLogger_Verbose(b *testing.B) {
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		b.Fatal(err)
	}
	defer devNull.Close()
	logger := NewConsoleLoggerTo(devNull, true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("batch %d committed", i)
	}
}

func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger := NewConsoleLogger(false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("batch %d committed", i)
	}
}

func ExampleConsoleLogger() {
	logger := NewConsoleLoggerTo(os.Stdout, true)
	logger.Info("orders.csv -> orders: %d rows loaded", 2)
	logger.Verbose("batch %d committed", 1)
	logger.Error("b.csv: decode failed")
	// Output:
	// orders.csv -> orders: 2 rows loaded
	// [VERBOSE] batch 1 committed
	// [ERROR] b.csv: decode failed
}

func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("This message is discarded")
	fmt.Println("Done")
	// Output:
	// Done
}
