package csvload_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/csvload/pkg/csvload"
)

func TestIsNull(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"whitespace", "  \t ", true},
		{"NA", "NA", true},
		{"N/A", "N/A", true},
		{"NULL", "NULL", true},
		{"null", "null", true},
		{"None", "None", true},
		{"nan", "nan", true},
		{"#N/A", "#N/A", true},
		{"padded NA", " NA ", true},
		{"NaN float", math.NaN(), true},
		{"NaN float32", float32(math.NaN()), true},
		{"zero", "0", false},
		{"lowercase na", "na", false},
		{"text", "hello", false},
		{"int", int64(0), false},
		{"float", 1.5, false},
		{"false", false, false},
		{"time", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, csvload.IsNull(tt.v))
		})
	}
}
