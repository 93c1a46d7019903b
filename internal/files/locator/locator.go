// Package locator resolves a source path into the ordered list of files to ingest.
package locator

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/vvka-141/csvload/internal/files/filesystem"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// Locator discovers source files. It never writes to the filesystem.
// Locator is safe for concurrent use as long as the provider is.
type Locator struct {
	fsProvider filesystem.FileSystemProvider
	extensions []string
}

// Option configures a Locator.
type Option func(*Locator)

// WithExtensions sets the file suffixes picked up from a directory.
// Matching is case-insensitive; a missing leading dot is added.
func WithExtensions(exts ...string) Option {
	return func(l *Locator) {
		if len(exts) == 0 {
			return
		}
		l.extensions = make([]string, 0, len(exts))
		for _, e := range exts {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			l.extensions = append(l.extensions, e)
		}
	}
}

// New creates a Locator over fsProvider.
// Panics if fsProvider is nil.
func New(fsProvider filesystem.FileSystemProvider, opts ...Option) *Locator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	l := &Locator{
		fsProvider: fsProvider,
		extensions: []string{csvload.DefaultExtension},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the files to ingest for path.
//
// A regular file yields a single entry regardless of its extension. A
// directory yields its direct children with a matching extension, sorted by
// name; subdirectories are not visited. Anything else is an *InvalidSourceError.
func (l *Locator) Locate(path string) ([]csvload.SourceFile, error) {
	info, err := l.fsProvider.Stat(path)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, fs.ErrNotExist) {
			reason = "path does not exist"
		}
		return nil, &csvload.InvalidSourceError{Path: path, Reason: reason}
	}

	if info.Mode().IsRegular() {
		return []csvload.SourceFile{newSourceFile(path, info.Name(), 0)}, nil
	}
	if !info.IsDir() {
		return nil, &csvload.InvalidSourceError{Path: path, Reason: "not a regular file or directory"}
	}

	entries, err := l.fsProvider.ReadDir(path)
	if err != nil {
		return nil, &csvload.InvalidSourceError{Path: path, Reason: err.Error()}
	}

	var names []string
	for _, e := range entries {
		if e.Mode().IsRegular() && l.matches(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, &csvload.InvalidSourceError{
			Path:   path,
			Reason: "no files with extension " + strings.Join(l.extensions, ", "),
		}
	}
	sort.Strings(names)

	files := make([]csvload.SourceFile, len(names))
	for i, name := range names {
		files[i] = newSourceFile(l.fsProvider.Join(path, name), name, i)
	}
	return files, nil
}

func (l *Locator) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range l.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func newSourceFile(path, name string, index int) csvload.SourceFile {
	return csvload.SourceFile{
		Path:  path,
		Name:  name,
		Table: TableName(name),
		Index: index,
	}
}

// TableName derives the destination table name from a file name: the stem,
// with every rune other than a letter, digit or underscore replaced by '_',
// runs of '_' collapsed, and a '_' prefix when it would start with a digit.
func TableName(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	var b strings.Builder
	lastUnderscore := false
	for _, r := range stem {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}

	name := b.String()
	if strings.Trim(name, "_") == "" {
		return "table"
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	return name
}

// SharedTables returns the groups of files that map to the same table, in
// source order. Names are compared case-insensitively since most backends
// fold unquoted identifiers. Rows of every file in a group land in one table.
func SharedTables(files []csvload.SourceFile) [][]csvload.SourceFile {
	byTable := make(map[string]int)
	var groups [][]csvload.SourceFile
	for _, f := range files {
		key := strings.ToLower(f.Table)
		i, ok := byTable[key]
		if !ok {
			byTable[key] = len(groups)
			groups = append(groups, []csvload.SourceFile{f})
			continue
		}
		groups[i] = append(groups[i], f)
	}

	shared := groups[:0]
	for _, g := range groups {
		if len(g) > 1 {
			shared = append(shared, g)
		}
	}
	return shared
}
