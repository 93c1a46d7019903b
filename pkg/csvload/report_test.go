package csvload_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csvload/pkg/csvload"
)

func TestStatusFor(t *testing.T) {
	boom := errors.New("boom")

	assert.Equal(t, csvload.StatusSuccess, csvload.StatusFor(nil, 0))
	assert.Equal(t, csvload.StatusSuccess, csvload.StatusFor(nil, 10))
	assert.Equal(t, csvload.StatusFailure, csvload.StatusFor(boom, 0))
	assert.Equal(t, csvload.StatusPartialFailure, csvload.StatusFor(boom, 1))
}

func TestReport_Aggregates(t *testing.T) {
	r := csvload.NewReport(csvload.DriverSQLite)
	require.NotEqual(t, uuid.Nil, r.RunID)
	assert.True(t, r.Success(), "empty report should succeed")
	assert.NoError(t, r.Err())

	r.Outcomes = append(r.Outcomes,
		csvload.FileOutcome{Table: "a", Status: csvload.StatusSuccess, RowsCommitted: 3},
		csvload.FileOutcome{Table: "b", Status: csvload.StatusPartialFailure, RowsCommitted: 2},
		csvload.FileOutcome{Table: "c", Status: csvload.StatusFailure},
	)

	assert.False(t, r.Success())
	assert.Equal(t, 5, r.TotalRowsCommitted())
	assert.Len(t, r.Failed(), 2)

	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, csvload.ErrIngestionFailed)
	assert.Contains(t, err.Error(), "2 of 3 files")
}

func TestNewReport_UniqueRunIDs(t *testing.T) {
	a := csvload.NewReport(csvload.DriverPostgres)
	b := csvload.NewReport(csvload.DriverPostgres)
	assert.NotEqual(t, a.RunID, b.RunID)
}
