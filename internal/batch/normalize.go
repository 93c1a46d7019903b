package batch

import (
	"fmt"
	"time"

	"github.com/vvka-141/csvload/internal/schema"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// NormalizeRow fills dst with the normalized values of src, aligned to columns.
// Missing trailing values become nil.
func NormalizeRow(dst, src []any, columns []csvload.ColumnDescriptor) {
	for i, col := range columns {
		var v any
		if i < len(src) {
			v = src[i]
		}
		dst[i] = Normalize(v, col.Type)
	}
}

// Normalize converts a decoded value into the form bound as a statement
// parameter for a column of type t:
//
//   - null-like values become nil
//   - integer, float and boolean become int64, float64 and bool
//   - datetime becomes "YYYY-MM-DD HH:MM:SS" in its own wall clock, zone dropped
//   - text becomes a string
//
// A value that does not fit t is passed through unchanged and left for the
// destination to reject.
func Normalize(v any, t csvload.LogicalType) any {
	if csvload.IsNull(v) {
		return nil
	}

	switch t {
	case csvload.TypeInteger:
		if n, ok := schema.AsInteger(v); ok {
			return n
		}
	case csvload.TypeFloat:
		if f, ok := schema.AsFloat(v); ok {
			return f
		}
	case csvload.TypeBoolean:
		if b, ok := schema.AsBoolean(v); ok {
			return b
		}
	case csvload.TypeDatetime:
		if ts, ok := schema.AsDatetime(v); ok {
			return FormatDatetime(ts)
		}
	default:
		if s, ok := v.(string); ok {
			return s
		}
		if ts, ok := v.(time.Time); ok {
			return FormatDatetime(ts)
		}
		return fmt.Sprint(v)
	}
	return v
}

// FormatDatetime renders t's wall clock without zone information.
func FormatDatetime(t time.Time) string {
	return t.Format(csvload.DatetimeLayout)
}
