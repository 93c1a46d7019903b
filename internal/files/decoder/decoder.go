// Package decoder reads a delimited source file into an in-memory table.
package decoder

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vvka-141/csvload/internal/files/filesystem"
	"github.com/vvka-141/csvload/pkg/csvload"
)

const utf8BOM = "\ufeff"

// CSVDecoder implements csvload.Decoder for comma-separated (or any
// single-rune delimited) files with a header row.
type CSVDecoder struct {
	fsProvider filesystem.FileSystemProvider
	delimiter  rune
	limit      int
}

var _ csvload.Decoder = (*CSVDecoder)(nil)

// Option configures a CSVDecoder.
type Option func(*CSVDecoder)

// WithDelimiter sets the field delimiter. Zero keeps the default comma.
func WithDelimiter(r rune) Option {
	return func(d *CSVDecoder) {
		if r != 0 {
			d.delimiter = r
		}
	}
}

// WithLimit caps the number of data rows read per file. Zero means unlimited.
func WithLimit(n int) Option {
	return func(d *CSVDecoder) { d.limit = n }
}

// New creates a decoder reading through fsProvider.
// Panics if fsProvider is nil.
func New(fsProvider filesystem.FileSystemProvider, opts ...Option) *CSVDecoder {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	d := &CSVDecoder{
		fsProvider: fsProvider,
		delimiter:  csvload.DefaultDelimiter,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads file into a LoadedTable. Field values are kept as strings;
// NA tokens and blank fields become nil. Every record must have as many
// fields as the header, and the content must be valid UTF-8.
func (d *CSVDecoder) Decode(ctx context.Context, file csvload.SourceFile) (*csvload.LoadedTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := d.fsProvider.OpenFile(file.Path)
	if err != nil {
		return nil, &csvload.DecodeError{File: file.Name, Err: err}
	}
	defer rc.Close()

	return d.decode(file.Name, rc)
}

func (d *CSVDecoder) decode(name string, r io.Reader) (*csvload.LoadedTable, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = d.delimiter
	reader.FieldsPerRecord = 0 // fixed by the header
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &csvload.DecodeError{File: name, Err: errors.New("file is empty, expected a header row")}
	}
	if err != nil {
		return nil, wrapReadError(name, err)
	}
	if err := checkUTF8(header); err != nil {
		return nil, &csvload.DecodeError{File: name, Line: 1, Err: err}
	}

	table := &csvload.LoadedTable{Header: NormalizeHeader(header)}

	for d.limit <= 0 || len(table.Rows) < d.limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapReadError(name, err)
		}
		if err := checkUTF8(record); err != nil {
			line, _ := reader.FieldPos(0)
			return nil, &csvload.DecodeError{File: name, Line: line, Err: err}
		}

		row := make([]any, len(record))
		for i, field := range record {
			if !csvload.IsNull(field) {
				row[i] = field
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func wrapReadError(name string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &csvload.DecodeError{File: name, Line: parseErr.Line, Err: parseErr.Err}
	}
	return &csvload.DecodeError{File: name, Err: err}
}

func checkUTF8(fields []string) error {
	for i, f := range fields {
		if !utf8.ValidString(f) {
			return fmt.Errorf("field %d is not valid UTF-8", i+1)
		}
	}
	return nil
}

// NormalizeHeader strips a leading byte order mark and surrounding
// whitespace, names blank headers column_N (1-based position) and suffixes
// repeated names with _2, _3, ... in order of appearance.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}

		if seen[strings.ToLower(h)] > 0 {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", h, n)
				if seen[strings.ToLower(candidate)] == 0 {
					h = candidate
					break
				}
			}
		}
		seen[strings.ToLower(h)]++
		out[i] = h
	}
	return out
}
