package schema

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsInteger(t *testing.T) {
	tests := []struct {
		in     any
		want   int64
		wantOK bool
	}{
		{"42", 42, true},
		{" -7 ", -7, true},
		{"+3", 3, true},
		{"007", 7, true},
		{int(5), 5, true},
		{uint64(math.MaxUint64), 0, false},
		{"1.0", 0, false},
		{"1e3", 0, false},
		{"0x1F", 0, false},
		{"1_000", 0, false},
		{"-", 0, false},
		{"", 0, false},
		{2.0, 0, false},
		{true, 0, false},
	}

	for _, tt := range tests {
		got, ok := AsInteger(tt.in)
		assert.Equal(t, tt.wantOK, ok, "AsInteger(%#v)", tt.in)
		assert.Equal(t, tt.want, got, "AsInteger(%#v)", tt.in)
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{"9.5", 9.5, true},
		{"-0.25", -0.25, true},
		{"1e3", 1000, true},
		{"12", 12, true},
		{int64(3), 3, true},
		{float32(0.5), 0.5, true},
		{"abc", 0, false},
		{false, 0, false},
		{"Inf", 0, false},
		{"-infinity", 0, false},
		{"NaN", 0, false},
		{"1e400", 0, false},
		{"0x1p-2", 0, false},
		{math.Inf(1), 0, false},
	}

	for _, tt := range tests {
		got, ok := AsFloat(tt.in)
		assert.Equal(t, tt.wantOK, ok, "AsFloat(%#v)", tt.in)
		assert.Equal(t, tt.want, got, "AsFloat(%#v)", tt.in)
	}
}

func TestAsBoolean(t *testing.T) {
	for _, s := range []string{"true", "True", "TRUE"} {
		v, ok := AsBoolean(s)
		assert.True(t, ok, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"false", "False", "FALSE"} {
		v, ok := AsBoolean(s)
		assert.True(t, ok, s)
		assert.False(t, v, s)
	}
	for _, in := range []any{"tRuE", "yes", "1", 1, nil} {
		_, ok := AsBoolean(in)
		assert.False(t, ok, "AsBoolean(%#v)", in)
	}
}

func TestAsDatetime(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"2024-01-06", "2024-01-06 00:00:00"},
		{"2024-01-06T10:30:00+02:00", "2024-01-06 10:30:00"},
		{" 2024-01-06 08:15:00 ", "2024-01-06 08:15:00"},
		{"Jan 2, 2024", "2024-01-02 00:00:00"},
		{"0001-01-01", "0001-01-01 00:00:00"},
		{time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "2024-03-01 12:00:00"},
	}

	for _, tt := range tests {
		got, ok := AsDatetime(tt.in)
		if assert.True(t, ok, "AsDatetime(%#v)", tt.in) {
			assert.Equal(t, tt.want, got.Format("2006-01-02 15:04:05"), "AsDatetime(%#v)", tt.in)
		}
	}
}

func TestAsDatetime_Rejects(t *testing.T) {
	rejected := []any{
		"12:30",
		"09:15:00",
		"3/4",
		"12/31",
		"Jan 2",
		"1.2.3",
		"10.4.12",
		"0000-12-30",
		"not a date",
		"",
		12,
		time.Date(0, 12, 30, 0, 0, 0, 0, time.UTC),
	}

	for _, in := range rejected {
		_, ok := AsDatetime(in)
		assert.False(t, ok, "AsDatetime(%#v)", in)
	}
}
