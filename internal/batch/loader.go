// Package batch streams decoded rows into a destination table in fixed-size,
// individually committed batches.
package batch

import (
	"context"
	"fmt"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// Option configures a Load call.
type Option func(*options)

type options struct {
	onBatch func(batch, rowsCommitted int)
}

// WithOnBatch registers a callback invoked after every committed batch with
// the 1-based batch number and the running committed row count.
func WithOnBatch(fn func(batch, rowsCommitted int)) Option {
	return func(o *options) { o.onBatch = fn }
}

// Load inserts rows into table in source order, batchSize rows per
// transaction (DefaultBatchSize when batchSize <= 0).
//
// Values are normalized per column type while each batch is assembled, so at
// most one batch of normalized rows exists at a time. The first failing batch
// stops the load; batches committed before it stay committed.
//
// ctx is checked between batches only. A batch that has started runs to
// completion.
func Load(ctx context.Context, sink csvload.Sink, table string, columns []csvload.ColumnDescriptor, rows [][]any, batchSize int, opts ...Option) csvload.LoadResult {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if batchSize <= 0 {
		batchSize = csvload.DefaultBatchSize
	}

	result := csvload.LoadResult{RowsAttempted: len(rows)}
	if len(rows) == 0 {
		return result
	}

	stmt := sink.Dialect().InsertStatement(table, columns)

	// Row buffers are allocated once and reused by every batch.
	bufSize := min(batchSize, len(rows))
	buf := make([][]any, bufSize)
	for i := range buf {
		buf[i] = make([]any, len(columns))
	}

	for start, batch := 0, 1; start < len(rows); start, batch = start+batchSize, batch+1 {
		if err := ctx.Err(); err != nil {
			result.Err = fmt.Errorf("stopped before batch %d: %w", batch, err)
			return result
		}

		end := min(start+batchSize, len(rows))
		chunk := buf[:end-start]
		for i, src := range rows[start:end] {
			NormalizeRow(chunk[i], src, columns)
		}

		if err := sink.ExecuteBatch(context.WithoutCancel(ctx), stmt, chunk); err != nil {
			result.FailedBatch = batch
			result.Err = &csvload.BatchInsertError{
				Table:      table,
				Batch:      batch,
				RowsBefore: result.RowsCommitted,
				Err:        err,
			}
			return result
		}

		result.RowsCommitted += len(chunk)
		result.BatchesCommitted++
		if o.onBatch != nil {
			o.onBatch(batch, result.RowsCommitted)
		}
	}

	return result
}
