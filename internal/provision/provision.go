// Package provision creates destination tables when they do not yet exist.
package provision

import (
	"context"
	"errors"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// Ensure makes sure table exists on sink with the given columns.
//
// It issues exactly one create-if-absent statement, so calling it again for
// the same table is a no-op on the destination. An existing table is trusted
// as-is: its shape is never compared with columns.
//
// The statement runs to completion even if ctx is cancelled while it is in
// flight; cancellation is only observed before it starts.
func Ensure(ctx context.Context, sink csvload.Sink, table string, columns []csvload.ColumnDescriptor) error {
	if len(columns) == 0 {
		return &csvload.ProvisioningError{Table: table, Err: errors.New("no columns to create")}
	}
	if err := ctx.Err(); err != nil {
		return &csvload.ProvisioningError{Table: table, Err: err}
	}

	stmt := Statement(sink.Dialect(), table, columns)
	if err := sink.ExecuteDDL(context.WithoutCancel(ctx), stmt); err != nil {
		return &csvload.ProvisioningError{Table: table, Statement: stmt, Err: err}
	}
	return nil
}

// Statement returns the create-if-absent DDL Ensure would execute.
func Statement(dialect csvload.Dialect, table string, columns []csvload.ColumnDescriptor) string {
	return dialect.CreateTableIfNotExists(table, columns)
}
