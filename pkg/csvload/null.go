package csvload

import (
	"math"
	"strings"
)

// naTokens are the field values read as null, matching the defaults of common
// dataframe CSV readers.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {},
	"-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// IsNull reports whether v is null-like: nil, an empty or whitespace-only
// string, an NA token, or a NaN float.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return true
		}
		_, ok := naTokens[s]
		return ok
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	default:
		return false
	}
}
