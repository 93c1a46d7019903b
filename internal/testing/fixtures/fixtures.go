// Package fixtures builds in-memory source directories for ingestion tests.
package fixtures

import (
	"strings"

	"github.com/vvka-141/csvload/internal/files/filesystem"
)

// Root is the directory every fixture is rooted at.
const Root = "/data"

// OrdersCSV has one integer, one nullable integer, one float and one date column.
const OrdersCSV = "id,qty,price,order_date\n" +
	"1,3,9.5,2024-01-05\n" +
	"2,,4.25,2024-01-06\n"

// SourceBuilder provides a fluent API for building a source directory.
//
// Example usage:
//
//	fs := fixtures.NewSourceBuilder().
//	    AddCSV("a.csv", "x\n1\n").
//	    AddRows("big.csv", []string{"id"}, 10000, func(i int) []string { ... }).
//	    Build()
type SourceBuilder struct {
	files map[string]string
	order []string
}

// NewSourceBuilder creates an empty builder.
func NewSourceBuilder() *SourceBuilder {
	return &SourceBuilder{files: make(map[string]string)}
}

// AddCSV adds a file with literal content.
func (b *SourceBuilder) AddCSV(name, content string) *SourceBuilder {
	if _, ok := b.files[name]; !ok {
		b.order = append(b.order, name)
	}
	b.files[name] = content
	return b
}

// AddRows adds a generated comma-separated file with header and n rows.
func (b *SourceBuilder) AddRows(name string, header []string, n int, row func(i int) []string) *SourceBuilder {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, ","))
	sb.WriteByte('\n')
	for i := 0; i < n; i++ {
		sb.WriteString(strings.Join(row(i), ","))
		sb.WriteByte('\n')
	}
	return b.AddCSV(name, sb.String())
}

// Build returns an in-memory filesystem holding the accumulated files under Root.
func (b *SourceBuilder) Build() *filesystem.MemoryFileSystem {
	fs := filesystem.NewMemoryFileSystem(Root)
	for _, name := range b.order {
		fs.AddFile(name, b.files[name])
	}
	return fs
}

// ============================================================================
// Pre-built Fixtures
// ============================================================================

// Orders is a directory holding only orders.csv.
func Orders() *filesystem.MemoryFileSystem {
	return NewSourceBuilder().AddCSV("orders.csv", OrdersCSV).Build()
}

// ValidAndMalformed holds a valid a.csv and a b.csv with a ragged row.
func ValidAndMalformed() *filesystem.MemoryFileSystem {
	return NewSourceBuilder().
		AddCSV("a.csv", "name,score\nann,1\nbob,2\n").
		AddCSV("b.csv", "name,score\ncid,3\ndee\n").
		Build()
}

// Mixed holds several files with every logical type plus a non-CSV file.
func Mixed() *filesystem.MemoryFileSystem {
	return NewSourceBuilder().
		AddCSV("people.csv", "name,age,active,joined\nann,31,true,2023-04-01\nbob,NA,False,2022-12-24 08:15:00\n").
		AddCSV("prices.csv", "sku,price\nA-1,1.5\nB-2,2\n").
		AddCSV("empty_cols.csv", "a,b\n1,\n2,NULL\n").
		AddCSV("README.md", "# not a csv\n").
		Build()
}
