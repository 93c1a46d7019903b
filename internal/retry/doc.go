// Package retry retries destination operations that fail for transient reasons.
//
// Sinks wrap their connect and ping steps in an Executor:
//
//	executor := retry.NewDefaultExecutor().WithOnRetry(func(attempt int, err error, delay time.Duration) {
//	    logger.Verbose("retry %d in %v: %v", attempt+1, delay, err)
//	})
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
//
// DatabaseErrorClassifier understands PostgreSQL SQLSTATE classes, SQL Server
// error numbers, SQLite busy/locked codes and network-level failures.
// Batch inserts are not retried: a failed batch is reported, not replayed.
package retry
