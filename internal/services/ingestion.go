package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/csvload/internal/batch"
	"github.com/vvka-141/csvload/internal/files/decoder"
	"github.com/vvka-141/csvload/internal/files/filesystem"
	"github.com/vvka-141/csvload/internal/files/locator"
	"github.com/vvka-141/csvload/internal/provision"
	"github.com/vvka-141/csvload/internal/schema"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// IngestionService drives a run: locate, then per file decode, infer,
// provision and load.
//
// Files are independent. A failure in one never stops the others and there
// is no transaction spanning files. Safe for concurrent Run calls; every run
// opens its own sinks.
type IngestionService struct {
	fsProvider filesystem.FileSystemProvider
	sinks      csvload.SinkFactory
	logger     csvload.Logger
	observer   csvload.Observer
}

// Option configures an IngestionService.
type Option func(*IngestionService)

// WithObserver sets the progress observer. The default ignores all events.
func WithObserver(o csvload.Observer) Option {
	return func(s *IngestionService) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewIngestionService creates an IngestionService.
// Panics on nil dependencies: those are wiring mistakes, not runtime conditions.
func NewIngestionService(
	fsProvider filesystem.FileSystemProvider,
	sinks csvload.SinkFactory,
	logger csvload.Logger,
	opts ...Option,
) *IngestionService {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if sinks == nil {
		panic("sinks cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	s := &IngestionService{
		fsProvider: fsProvider,
		sinks:      sinks,
		logger:     logger,
		observer:   csvload.NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ingests every file config.SourcePath resolves to.
//
// The returned error is reserved for run-fatal conditions: invalid
// configuration, an unusable source path, or a destination that cannot be
// reached. Per-file failures are recorded in the report; use Report.Err to
// turn them into an exit status.
func (s *IngestionService) Run(ctx context.Context, config csvload.RunConfig) (*csvload.Report, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	files, err := s.locate(config)
	if err != nil {
		return nil, err
	}

	report := csvload.NewReport(config.Driver)
	s.logger.Verbose("run %s: %d file(s) under %s", report.RunID, len(files), config.SourcePath)
	for _, group := range locator.SharedTables(files) {
		s.logger.Info("warning: %s all load into table %q", strings.Join(fileNames(group), ", "), group[0].Table)
	}

	workers := min(max(config.Workers, 1), len(files))
	pool, err := s.openSinks(ctx, workers)
	if err != nil {
		return nil, err
	}
	defer s.closeSinks(pool, workers)

	dec := decoder.New(s.fsProvider,
		decoder.WithDelimiter(config.Delimiter),
		decoder.WithLimit(config.Limit),
	)

	report.Outcomes = make([]csvload.FileOutcome, len(files))

	// With a limit of 1, g.Go blocks until the previous file finishes, which
	// keeps the sequential case in source order.
	var g errgroup.Group
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			sink := <-pool
			defer func() { pool <- sink }()

			outcome := s.ingestFile(ctx, sink, dec, file, config)
			report.Outcomes[i] = outcome
			s.observer.FileFinished(outcome)
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = time.Since(report.StartedAt)
	return report, nil
}

func (s *IngestionService) locate(config csvload.RunConfig) ([]csvload.SourceFile, error) {
	var opts []locator.Option
	if len(config.Extensions) > 0 {
		opts = append(opts, locator.WithExtensions(config.Extensions...))
	}
	return locator.New(s.fsProvider, opts...).Locate(config.SourcePath)
}

// openSinks opens one sink per worker. Any failure closes what was opened
// and aborts the run.
func (s *IngestionService) openSinks(ctx context.Context, n int) (chan csvload.Sink, error) {
	pool := make(chan csvload.Sink, n)
	for i := 0; i < n; i++ {
		sink, err := s.sinks.Open(ctx)
		if err != nil {
			s.closeSinks(pool, i)
			return nil, err
		}
		pool <- sink
	}
	s.logger.Verbose("opened %d destination connection(s)", n)
	return pool, nil
}

func (s *IngestionService) closeSinks(pool chan csvload.Sink, n int) {
	var errs []error
	for i := 0; i < n; i++ {
		if err := (<-pool).Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Error("closing destination: %v", err)
	}
}

// ingestFile runs decode, infer, provision and load for one file. It never
// returns an error; everything that goes wrong ends up in the outcome.
func (s *IngestionService) ingestFile(
	ctx context.Context,
	sink csvload.Sink,
	dec csvload.Decoder,
	file csvload.SourceFile,
	config csvload.RunConfig,
) csvload.FileOutcome {
	start := time.Now()
	outcome := csvload.FileOutcome{File: file, Table: file.Table}
	finish := func(err error) csvload.FileOutcome {
		outcome.Err = err
		outcome.Status = csvload.StatusFor(err, outcome.RowsCommitted)
		outcome.Duration = time.Since(start)
		return outcome
	}

	if err := ctx.Err(); err != nil {
		return finish(fmt.Errorf("not started: %w", err))
	}

	s.logger.Verbose("Decoding %s", file.Path)
	table, err := dec.Decode(ctx, file)
	if err != nil {
		return finish(err)
	}
	outcome.RowsAttempted = len(table.Rows)
	s.observer.FileStarted(file, len(table.Rows))

	columns := schema.Infer(table)
	outcome.Columns = columns

	if err := provision.Ensure(ctx, sink, file.Table, columns); err != nil {
		return finish(err)
	}
	s.observer.TableProvisioned(file, columns)

	result := batch.Load(ctx, sink, file.Table, columns, table.Rows, config.BatchSize,
		batch.WithOnBatch(func(n, rowsCommitted int) {
			s.observer.BatchCommitted(file, n, rowsCommitted, len(table.Rows))
		}),
	)
	outcome.RowsCommitted = result.RowsCommitted
	outcome.BatchesCommitted = result.BatchesCommitted
	outcome.FailedBatch = result.FailedBatch
	return finish(result.Err)
}

func fileNames(files []csvload.SourceFile) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}
