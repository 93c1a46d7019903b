package logging

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// LogObserver reports progress events through a Logger: per-batch detail at
// Verbose, per-file results at Info, failures at Error.
type LogObserver struct {
	logger csvload.Logger
}

var _ csvload.Observer = (*LogObserver)(nil)

// NewLogObserver creates a LogObserver. Panics if logger is nil.
func NewLogObserver(logger csvload.Logger) *LogObserver {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) FileStarted(file csvload.SourceFile, rows int) {
	o.logger.Verbose("%s: decoded %d rows for table %q", file.Name, rows, file.Table)
}

func (o *LogObserver) TableProvisioned(file csvload.SourceFile, columns []csvload.ColumnDescriptor) {
	o.logger.Verbose("%s: table %q ready (%s)", file.Name, file.Table, describeColumns(columns))
}

func (o *LogObserver) BatchCommitted(file csvload.SourceFile, batch, rowsCommitted, rowsTotal int) {
	o.logger.Verbose("%s: batch %d committed (%d/%d rows)", file.Name, batch, rowsCommitted, rowsTotal)
}

func (o *LogObserver) FileFinished(outcome csvload.FileOutcome) {
	if outcome.Err != nil {
		o.logger.Error("%s -> %s: %s, %d/%d rows committed: %v",
			outcome.File.Name, outcome.Table, outcome.Status,
			outcome.RowsCommitted, outcome.RowsAttempted, outcome.Err)
		return
	}
	o.logger.Info("%s -> %s: %d rows loaded in %s",
		outcome.File.Name, outcome.Table, outcome.RowsCommitted, outcome.Duration.Round(time.Millisecond))
}

func describeColumns(columns []csvload.ColumnDescriptor) string {
	return strings.Join(lo.Map(columns, func(c csvload.ColumnDescriptor, _ int) string {
		if c.Nullable {
			return c.Name + " " + c.Type.String() + "?"
		}
		return c.Name + " " + c.Type.String()
	}), ", ")
}
