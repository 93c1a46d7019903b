// Package schema infers a relational column layout from a decoded table.
package schema

import (
	"github.com/vvka-141/csvload/pkg/csvload"
)

// classifiers are tried in order; the first that accepts every non-null value
// of a column wins. Text is the fallback.
var classifiers = []struct {
	typ     csvload.LogicalType
	accepts func(v any) bool
}{
	{csvload.TypeInteger, func(v any) bool { _, ok := AsInteger(v); return ok }},
	{csvload.TypeFloat, func(v any) bool { _, ok := AsFloat(v); return ok }},
	{csvload.TypeBoolean, func(v any) bool { _, ok := AsBoolean(v); return ok }},
	{csvload.TypeDatetime, func(v any) bool { _, ok := AsDatetime(v); return ok }},
}

// Infer returns one descriptor per header column, in header order.
// Every column is classified independently over all of its values, so the
// result depends only on the column's content.
func Infer(table *csvload.LoadedTable) []csvload.ColumnDescriptor {
	columns := make([]csvload.ColumnDescriptor, len(table.Header))
	for i, name := range table.Header {
		typ, nullable := inferColumn(table.Rows, i)
		columns[i] = csvload.ColumnDescriptor{Name: name, Type: typ, Nullable: nullable}
	}
	return columns
}

func inferColumn(rows [][]any, col int) (csvload.LogicalType, bool) {
	candidates := make([]bool, len(classifiers))
	for i := range candidates {
		candidates[i] = true
	}

	nullable, seen := false, false
	for _, row := range rows {
		var v any
		if col < len(row) {
			v = row[col]
		}
		if csvload.IsNull(v) {
			nullable = true
			continue
		}
		seen = true
		for i, c := range classifiers {
			if candidates[i] && !c.accepts(v) {
				candidates[i] = false
			}
		}
	}

	if !seen {
		return csvload.TypeText, true
	}
	for i, c := range classifiers {
		if candidates[i] {
			return c.typ, nullable
		}
	}
	return csvload.TypeText, nullable
}
