package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vvka-141/csvload/internal/retry"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// SQLSink writes through database/sql. It serves the SQL Server, SQLite and
// DuckDB drivers, which differ only in their dialect.
type SQLSink struct {
	db      *sql.DB
	dialect csvload.Dialect
}

var _ csvload.Sink = (*SQLSink)(nil)

// NewSQLSink wraps an open handle. The sink owns db from here on.
func NewSQLSink(db *sql.DB, d csvload.Dialect) *SQLSink {
	if db == nil {
		panic("db cannot be nil")
	}
	if d == nil {
		panic("dialect cannot be nil")
	}
	return &SQLSink{db: db, dialect: d}
}

// sqlDriverName maps a csvload driver onto its registered database/sql name.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case csvload.DriverSQLServer:
		return "sqlserver", nil
	case csvload.DriverSQLite:
		return "sqlite3", nil
	case csvload.DriverDuckDB:
		return "duckdb", nil
	default:
		return "", fmt.Errorf("%q has no database/sql driver: %w", driver, csvload.ErrUnsupportedDriver)
	}
}

// OpenSQL opens and pings a database/sql handle, retrying transient failures.
func OpenSQL(ctx context.Context, driver, dsn string, executor *retry.Executor) (*sql.DB, error) {
	name, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", driver, csvload.ErrInvalidConfig, err)
	}
	if isInMemory(driver, dsn) {
		// every new connection to an in-memory database is a fresh database
		db.SetMaxOpenConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	}

	err = executor.Execute(ctx, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w: %w", driver, csvload.ErrConnectionFailed, err)
	}
	return db, nil
}

func isInMemory(driver, dsn string) bool {
	switch driver {
	case csvload.DriverSQLite:
		return dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
	case csvload.DriverDuckDB:
		return dsn == "" || strings.HasPrefix(dsn, ":memory:")
	}
	return false
}

func (s *SQLSink) Dialect() csvload.Dialect { return s.dialect }

func (s *SQLSink) ExecuteDDL(ctx context.Context, stmt string) error {
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

// ExecuteBatch inserts rows in one transaction through a single prepared
// statement. Any failing row rolls back the whole batch.
func (s *SQLSink) ExecuteBatch(ctx context.Context, stmt string, rows [][]any) (err error) {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer prepared.Close()

	for i, row := range rows {
		if _, err = prepared.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("row %d of batch: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLSink) Close() error {
	return s.db.Close()
}
