package batch

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "github.com/vvka-141/csvload/internal/testing"
	"github.com/vvka-141/csvload/pkg/csvload"
)

var idColumn = []csvload.ColumnDescriptor{{Name: "id", Type: csvload.TypeInteger}}

func idRows(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{strconv.Itoa(i + 1)}
	}
	return rows
}

func TestLoad_Orders(t *testing.T) {
	sink := testhelpers.NewRecordingSink()
	columns := []csvload.ColumnDescriptor{
		{Name: "id", Type: csvload.TypeInteger},
		{Name: "qty", Type: csvload.TypeInteger, Nullable: true},
		{Name: "price", Type: csvload.TypeFloat},
		{Name: "order_date", Type: csvload.TypeDatetime},
	}
	rows := [][]any{
		{"1", "3", "9.5", "2024-01-05"},
		{"2", nil, "4.25", "2024-01-06"},
	}

	result := Load(context.Background(), sink, "orders", columns, rows, 1)

	require.NoError(t, result.Err)
	assert.Equal(t, csvload.LoadResult{RowsAttempted: 2, RowsCommitted: 2, BatchesCommitted: 2}, result)
	require.Len(t, sink.Batches, 2)
	assert.Equal(t, [][]any{{int64(1), int64(3), 9.5, "2024-01-05 00:00:00"}}, sink.Batches[0])
	assert.Equal(t, [][]any{{int64(2), nil, 4.25, "2024-01-06 00:00:00"}}, sink.Batches[1])
}

func TestLoad_BatchPartitioning(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		batchSize int
		wantSizes []int
	}{
		{"exact multiple", 6, 3, []int{3, 3}},
		{"remainder", 7, 3, []int{3, 3, 1}},
		{"single batch", 2, 10, []int{2}},
		{"batch of one", 3, 1, []int{1, 1, 1}},
		{"default size", 5, 0, []int{5}},
		{"negative size", 5, -1, []int{5}},
		{"no rows", 0, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := testhelpers.NewRecordingSink()

			result := Load(context.Background(), sink, "t", idColumn, idRows(tt.rows), tt.batchSize)

			require.NoError(t, result.Err)
			var sizes []int
			for _, b := range sink.Batches {
				sizes = append(sizes, len(b))
			}
			assert.Equal(t, tt.wantSizes, sizes)
			assert.Equal(t, tt.rows, result.RowsCommitted)
			assert.Equal(t, len(tt.wantSizes), result.BatchesCommitted)
		})
	}
}

func TestLoad_PreservesOrder(t *testing.T) {
	sink := testhelpers.NewRecordingSink()

	result := Load(context.Background(), sink, "t", idColumn, idRows(25), 4)
	require.NoError(t, result.Err)

	require.Len(t, sink.Committed, 25)
	for i, row := range sink.Committed {
		assert.Equal(t, int64(i+1), row[0], "row %d out of order", i)
	}
}

func TestLoad_PartialFailure(t *testing.T) {
	tests := []struct {
		name          string
		rows          int
		batchSize     int
		failBatch     int
		wantCommitted int
	}{
		{"first batch fails", 10, 3, 1, 0},
		{"middle batch fails", 10, 3, 3, 6},
		{"last batch fails", 10, 3, 4, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := testhelpers.NewRecordingSink()
			sink.FailBatch = tt.failBatch

			result := Load(context.Background(), sink, "t", idColumn, idRows(tt.rows), tt.batchSize)

			assert.Equal(t, tt.rows, result.RowsAttempted)
			assert.Equal(t, tt.wantCommitted, result.RowsCommitted)
			assert.Equal(t, tt.failBatch-1, result.BatchesCommitted)
			assert.Equal(t, tt.failBatch, result.FailedBatch)
			assert.Len(t, sink.Committed, tt.wantCommitted)
			assert.Equal(t, tt.failBatch, sink.BatchCalls(), "no batch may run after a failure")

			var bie *csvload.BatchInsertError
			require.True(t, errors.As(result.Err, &bie))
			assert.Equal(t, tt.failBatch, bie.Batch)
			assert.Equal(t, tt.wantCommitted, bie.RowsBefore)
			assert.ErrorIs(t, result.Err, testhelpers.ErrInjected)
		})
	}
}

func TestLoad_CancelledBetweenBatches(t *testing.T) {
	sink := testhelpers.NewRecordingSink()
	ctx, cancel := context.WithCancel(context.Background())

	result := Load(ctx, sink, "t", idColumn, idRows(10), 3, WithOnBatch(func(batch, committed int) {
		if batch == 2 {
			cancel()
		}
	}))

	assert.ErrorIs(t, result.Err, context.Canceled)
	assert.Equal(t, 6, result.RowsCommitted)
	assert.Equal(t, 2, result.BatchesCommitted)
	assert.Zero(t, result.FailedBatch)
	assert.Equal(t, 2, sink.BatchCalls())
}

func TestLoad_OnBatchProgress(t *testing.T) {
	sink := testhelpers.NewRecordingSink()

	var progress [][2]int
	result := Load(context.Background(), sink, "t", idColumn, idRows(5), 2, WithOnBatch(func(batch, committed int) {
		progress = append(progress, [2]int{batch, committed})
	}))

	require.NoError(t, result.Err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 4}, {3, 5}}, progress)
}

func TestLoad_UsesDialectInsert(t *testing.T) {
	sink := &statementSink{RecordingSink: testhelpers.NewRecordingSink()}

	Load(context.Background(), sink, "my table", idColumn, idRows(1), 10)

	assert.Equal(t, []string{`INSERT INTO "my table" ("id") VALUES ($1)`}, sink.statements)
}

type statementSink struct {
	*testhelpers.RecordingSink
	statements []string
}

func (s *statementSink) ExecuteBatch(ctx context.Context, stmt string, rows [][]any) error {
	s.statements = append(s.statements, stmt)
	return s.RecordingSink.ExecuteBatch(ctx, stmt, rows)
}
