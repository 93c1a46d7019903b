package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"

	"github.com/vvka-141/csvload/internal/tui"
	"github.com/vvka-141/csvload/pkg/csvload"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	outputTable = "table"
	outputJSON  = "json"
)

func validateOutputFormat(format string) error {
	switch format {
	case outputTable, outputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s): %w",
			format, outputTable, outputJSON, csvload.ErrInvalidConfig)
	}
}

// writeReport renders report to w in the given format.
func writeReport(w io.Writer, report *csvload.Report, format string, color bool) error {
	switch format {
	case outputJSON:
		return writeReportJSON(w, report)
	case outputTable:
		writeReportTable(w, report, color)
		return nil
	default:
		return validateOutputFormat(format)
	}
}

func writeReportTable(w io.Writer, report *csvload.Report, color bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Table", "Status", "Rows", "Batches", "Failed batch", "Duration"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, o := range report.Outcomes {
		failedBatch := ""
		if o.FailedBatch > 0 {
			failedBatch = strconv.Itoa(o.FailedBatch)
		}
		table.Append([]string{
			o.File.Name,
			o.Table,
			tui.RenderStatus(o.Status, color),
			fmt.Sprintf("%d/%d", o.RowsCommitted, o.RowsAttempted),
			strconv.Itoa(o.BatchesCommitted),
			failedBatch,
			o.Duration.Round(time.Millisecond).String(),
		})
	}
	table.Render()

	fmt.Fprintf(w, "\n%d rows committed across %d files in %s (run %s)\n",
		report.TotalRowsCommitted(), len(report.Outcomes),
		report.Duration.Round(time.Millisecond), report.RunID)

	for _, o := range report.Failed() {
		line := fmt.Sprintf("%s %s: %v", tui.SymbolCross, o.File.Name, o.Err)
		if color {
			line = tui.ErrorStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

type reportJSON struct {
	RunID         string     `json:"run_id"`
	Driver        string     `json:"driver"`
	StartedAt     time.Time  `json:"started_at"`
	DurationMs    int64      `json:"duration_ms"`
	Success       bool       `json:"success"`
	RowsCommitted int        `json:"rows_committed"`
	Files         []fileJSON `json:"files"`
}

type fileJSON struct {
	File             string       `json:"file"`
	Table            string       `json:"table"`
	Status           string       `json:"status"`
	Columns          []columnJSON `json:"columns,omitempty"`
	RowsAttempted    int          `json:"rows_attempted"`
	RowsCommitted    int          `json:"rows_committed"`
	BatchesCommitted int          `json:"batches_committed"`
	FailedBatch      int          `json:"failed_batch,omitempty"`
	Error            string       `json:"error,omitempty"`
	DurationMs       int64        `json:"duration_ms"`
}

type columnJSON struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

func toReportJSON(report *csvload.Report) reportJSON {
	out := reportJSON{
		RunID:         report.RunID.String(),
		Driver:        report.Driver,
		StartedAt:     report.StartedAt,
		DurationMs:    report.Duration.Milliseconds(),
		Success:       report.Success(),
		RowsCommitted: report.TotalRowsCommitted(),
		Files:         make([]fileJSON, 0, len(report.Outcomes)),
	}
	for _, o := range report.Outcomes {
		f := fileJSON{
			File:             o.File.Path,
			Table:            o.Table,
			Status:           string(o.Status),
			RowsAttempted:    o.RowsAttempted,
			RowsCommitted:    o.RowsCommitted,
			BatchesCommitted: o.BatchesCommitted,
			FailedBatch:      o.FailedBatch,
			DurationMs:       o.Duration.Milliseconds(),
		}
		for _, c := range o.Columns {
			f.Columns = append(f.Columns, columnJSON{Name: c.Name, Type: c.Type.String(), Nullable: c.Nullable})
		}
		if o.Err != nil {
			f.Error = o.Err.Error()
		}
		out.Files = append(out.Files, f)
	}
	return out
}

func writeReportJSON(w io.Writer, report *csvload.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toReportJSON(report))
}
