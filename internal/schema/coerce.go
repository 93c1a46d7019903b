package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// AsInteger reports whether v is an integer literal and returns its value.
// Strings must be an optional sign followed by decimal digits that fit in int64.
func AsInteger(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case string:
		s := strings.TrimSpace(x)
		if !isDecimalLiteral(s) {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func isDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// AsFloat reports whether v is a finite floating-point literal and returns
// its value. Integer literals are floats too. Infinities and hexadecimal
// forms are rejected: not every destination can store them.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case string:
		s := strings.TrimSpace(x)
		if strings.ContainsAny(s, "xX") {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	}
	if n, ok := AsInteger(v); ok {
		return float64(n), true
	}
	return 0, false
}

// AsBoolean reports whether v is a boolean literal: a bool, or one of
// true/True/TRUE/false/False/FALSE.
func AsBoolean(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.TrimSpace(x) {
		case "true", "True", "TRUE":
			return true, true
		case "false", "False", "FALSE":
			return false, true
		}
	}
	return false, false
}

func finite(f float64) (float64, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// reYear matches a standalone four-digit year. Literals without one
// ("12:30", "3/4", "Jan 2") would otherwise parse into year 0.
var reYear = regexp.MustCompile(`(^|[^0-9])[0-9]{4}([^0-9]|$)`)

var (
	minDatetime = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDatetime = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)
)

// AsDatetime reports whether v is a date or timestamp and returns it.
// Strings must carry a four-digit year and are otherwise parsed best-effort;
// the zone of the result is whatever the literal carried. Results outside
// years 1 to 9999 are rejected.
func AsDatetime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, inDatetimeRange(x)
	case string:
		s := strings.TrimSpace(x)
		if !reYear.MatchString(s) {
			return time.Time{}, false
		}
		t, err := dateparse.ParseAny(s)
		if err != nil || !inDatetimeRange(t) {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// inDatetimeRange compares wall clocks so a zone offset cannot push a
// boundary value out of range.
func inDatetimeRange(t time.Time) bool {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return !wall.Before(minDatetime) && !wall.After(maxDatetime)
}
