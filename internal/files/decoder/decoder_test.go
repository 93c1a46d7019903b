package decoder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csvload/internal/files/filesystem"
	"github.com/vvka-141/csvload/pkg/csvload"
)

func decodeContent(t *testing.T, content string, opts ...Option) (*csvload.LoadedTable, error) {
	t.Helper()
	fs := filesystem.NewMemoryFileSystem("/data")
	fs.AddFile("input.csv", content)
	d := New(fs, opts...)
	return d.Decode(context.Background(), csvload.SourceFile{Path: "/data/input.csv", Name: "input.csv", Table: "input"})
}

func TestDecode_Orders(t *testing.T) {
	table, err := decodeContent(t, "id,qty,price,order_date\n1,3,9.5,2024-01-05\n2,,4.25,2024-01-06\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "qty", "price", "order_date"}, table.Header)
	assert.Equal(t, [][]any{
		{"1", "3", "9.5", "2024-01-05"},
		{"2", nil, "4.25", "2024-01-06"},
	}, table.Rows)
	assert.Equal(t, 4, table.NumColumns())
}

func TestDecode_NATokensBecomeNil(t *testing.T) {
	table, err := decodeContent(t, "a,b,c,d,e\nNA,N/A,null,  ,value\n")
	require.NoError(t, err)
	assert.Equal(t, []any{nil, nil, nil, nil, "value"}, table.Rows[0])
}

func TestDecode_QuotedFields(t *testing.T) {
	table, err := decodeContent(t, "name,note\n\"Smith, J\",\"said \"\"hi\"\"\"\n\"multi\nline\",x\n")
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"Smith, J", `said "hi"`},
		{"multi\nline", "x"},
	}, table.Rows)
}

func TestDecode_Delimiter(t *testing.T) {
	table, err := decodeContent(t, "a;b\n1;2\n", WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Equal(t, []any{"1", "2"}, table.Rows[0])
}

func TestDecode_Limit(t *testing.T) {
	table, err := decodeContent(t, "x\n1\n2\n3\n4\n", WithLimit(2))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)

	table, err = decodeContent(t, "x\n1\n2\n3\n4\n", WithLimit(0))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 4)
}

func TestDecode_HeaderOnly(t *testing.T) {
	table, err := decodeContent(t, "a,b\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestDecode_ByteOrderMark(t *testing.T) {
	table, err := decodeContent(t, "\ufeff\"id\",name\n1,a\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, table.Header)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"empty file", "", 0},
		{"ragged row", "a,b\n1,2\n3\n", 3},
		{"bare quote", "a,b\n1,x\"y\n", 2},
		{"invalid utf8", "a,b\n1,\xff\xfe\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := decodeContent(t, tt.content)
			require.Error(t, err)
			assert.Nil(t, table)

			var de *csvload.DecodeError
			require.True(t, errors.As(err, &de), "expected *DecodeError, got %T", err)
			assert.Equal(t, "input.csv", de.File)
			assert.Equal(t, tt.wantLine, de.Line)
			assert.ErrorIs(t, err, csvload.ErrDecode)
		})
	}
}

func TestDecode_MissingFile(t *testing.T) {
	d := New(filesystem.NewMemoryFileSystem("/data"))
	_, err := d.Decode(context.Background(), csvload.SourceFile{Path: "/data/gone.csv", Name: "gone.csv"})
	assert.ErrorIs(t, err, csvload.ErrDecode)
}

func TestDecode_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := filesystem.NewMemoryFileSystem("/data")
	fs.AddFile("a.csv", "x\n1\n")
	_, err := New(fs).Decode(ctx, csvload.SourceFile{Path: "/data/a.csv", Name: "a.csv"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"plain", []string{"a", "b"}, []string{"a", "b"}},
		{"trimmed", []string{" a ", "b\t"}, []string{"a", "b"}},
		{"bom", []string{"\ufeffid", "x"}, []string{"id", "x"}},
		{"blank", []string{"a", "", "  "}, []string{"a", "column_2", "column_3"}},
		{"duplicates", []string{"id", "id", "id"}, []string{"id", "id_2", "id_3"}},
		{"case-insensitive duplicates", []string{"Id", "id"}, []string{"Id", "id_2"}},
		{"suffix collision", []string{"a", "a_2", "a"}, []string{"a", "a_2", "a_3"}},
		{"spaces kept", []string{"order date"}, []string{"order date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeader(tt.in))
		})
	}
}
