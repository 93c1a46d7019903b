package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csvload/internal/testing/fixtures"
	"github.com/vvka-141/csvload/pkg/csvload"
)

func TestInspect(t *testing.T) {
	plans, err := Inspect(context.Background(), fixtures.ValidAndMalformed(), csvload.RunConfig{
		SourcePath: fixtures.Root,
		Driver:     csvload.DriverSQLServer,
	})
	require.NoError(t, err)
	require.Len(t, plans, 2)

	a := plans[0]
	require.NoError(t, a.Err)
	assert.Equal(t, 2, a.Rows)
	assert.Equal(t, []csvload.ColumnDescriptor{
		{Name: "name", Type: csvload.TypeText},
		{Name: "score", Type: csvload.TypeInteger},
	}, a.Columns)
	assert.Equal(t, "IF OBJECT_ID(N'[a]', N'U') IS NULL CREATE TABLE [a] (\n    [name] NVARCHAR(MAX),\n    [score] BIGINT\n)", a.Statement)

	b := plans[1]
	assert.ErrorIs(t, b.Err, csvload.ErrDecode)
	assert.Empty(t, b.Statement)
}

func TestInspect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		config  csvload.RunConfig
		wantErr error
	}{
		{"no source", csvload.RunConfig{Driver: "sqlite"}, csvload.ErrInvalidConfig},
		{"negative limit", csvload.RunConfig{SourcePath: fixtures.Root, Driver: "sqlite", Limit: -1}, csvload.ErrInvalidConfig},
		{"bad delimiter", csvload.RunConfig{SourcePath: fixtures.Root, Driver: "sqlite", Delimiter: '"'}, csvload.ErrInvalidConfig},
		{"unknown driver", csvload.RunConfig{SourcePath: fixtures.Root, Driver: "oracle"}, csvload.ErrUnsupportedDriver},
		{"missing path", csvload.RunConfig{SourcePath: "/missing", Driver: "sqlite"}, csvload.ErrInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(context.Background(), fixtures.Orders(), tt.config)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInspect_SharedTable(t *testing.T) {
	fs := fixtures.NewSourceBuilder().
		AddCSV("a b.csv", "x\n1\n").
		AddCSV("a-b.csv", "x\n2\n").
		AddCSV("c.csv", "x\n3\n").
		Build()

	plans, err := Inspect(context.Background(), fs, csvload.RunConfig{SourcePath: fixtures.Root, Driver: csvload.DriverSQLite})
	require.NoError(t, err)
	require.Len(t, plans, 3)

	assert.Equal(t, []string{"a-b.csv"}, plans[0].SharedWith)
	assert.Equal(t, []string{"a b.csv"}, plans[1].SharedWith)
	assert.Empty(t, plans[2].SharedWith)
}
