package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/csvload/internal/dialect"
	"github.com/vvka-141/csvload/internal/files/decoder"
	"github.com/vvka-141/csvload/internal/files/filesystem"
	"github.com/vvka-141/csvload/internal/files/locator"
	"github.com/vvka-141/csvload/internal/provision"
	"github.com/vvka-141/csvload/internal/schema"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// TablePlan is the dry-run view of one file: what would be created and how
// many rows would be loaded.
type TablePlan struct {
	File      csvload.SourceFile
	Columns   []csvload.ColumnDescriptor
	Rows      int
	Statement string
	// SharedWith names the other files that load into the same table.
	SharedWith []string
	Err        error
}

// Inspect decodes and infers every file config.SourcePath resolves to and
// renders the create statement for config.Driver, without connecting.
// Only SourcePath, Driver, Delimiter, Extensions and Limit are used.
func Inspect(ctx context.Context, fsProvider filesystem.FileSystemProvider, config csvload.RunConfig) ([]TablePlan, error) {
	if err := config.ValidateSource(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	d, err := dialect.ForDriver(config.Driver)
	if err != nil {
		return nil, err
	}

	var opts []locator.Option
	if len(config.Extensions) > 0 {
		opts = append(opts, locator.WithExtensions(config.Extensions...))
	}
	files, err := locator.New(fsProvider, opts...).Locate(config.SourcePath)
	if err != nil {
		return nil, err
	}

	shared := make(map[int][]string)
	for _, group := range locator.SharedTables(files) {
		for _, f := range group {
			for _, other := range group {
				if other.Index != f.Index {
					shared[f.Index] = append(shared[f.Index], other.Name)
				}
			}
		}
	}

	dec := decoder.New(fsProvider, decoder.WithDelimiter(config.Delimiter), decoder.WithLimit(config.Limit))

	plans := make([]TablePlan, 0, len(files))
	for _, file := range files {
		plan := TablePlan{File: file, SharedWith: shared[file.Index]}
		table, err := dec.Decode(ctx, file)
		if err != nil {
			plan.Err = err
			plans = append(plans, plan)
			continue
		}
		plan.Rows = len(table.Rows)
		plan.Columns = schema.Infer(table)
		plan.Statement = provision.Statement(d, file.Table, plan.Columns)
		plans = append(plans, plan)
	}
	return plans, nil
}
