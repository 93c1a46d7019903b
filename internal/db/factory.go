package db

import (
	"context"
	"time"

	"github.com/vvka-141/csvload/internal/dialect"
	"github.com/vvka-141/csvload/internal/retry"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// SinkFactory opens a fresh destination connection per Open call, so
// concurrent workers never share one.
type SinkFactory struct {
	driver   string
	dsn      string
	dialect  csvload.Dialect
	logger   csvload.Logger
	pg       *PostgresConnector
	executor *retry.Executor
}

var _ csvload.SinkFactory = (*SinkFactory)(nil)

// NewSinkFactory validates driver and dsn without connecting.
func NewSinkFactory(driver, dsn string, logger csvload.Logger) (*SinkFactory, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	d, err := dialect.ForDriver(driver)
	if err != nil {
		return nil, err
	}

	f := &SinkFactory{
		driver:  d.Name(),
		dsn:     dsn,
		dialect: d,
		logger:  logger,
	}

	if f.driver == csvload.DriverPostgres {
		f.pg, err = NewPostgresConnector(dsn, logger)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	f.executor = retry.NewDefaultExecutor().WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("%s connect attempt %d failed, retrying in %s: %v", f.driver, attempt+1, delay, err)
	})
	return f, nil
}

// Driver returns the canonical driver name.
func (f *SinkFactory) Driver() string { return f.driver }

// Open connects to the destination.
func (f *SinkFactory) Open(ctx context.Context) (csvload.Sink, error) {
	if f.pg != nil {
		pool, err := f.pg.Connect(ctx)
		if err != nil {
			return nil, err
		}
		return NewPostgresSink(pool), nil
	}

	handle, err := OpenSQL(ctx, f.driver, f.dsn, f.executor)
	if err != nil {
		return nil, err
	}
	f.logger.Verbose("connected to %s", f.driver)
	return NewSQLSink(handle, f.dialect), nil
}
