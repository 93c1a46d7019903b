package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csvload/pkg/csvload"
)

var ordersColumns = []csvload.ColumnDescriptor{
	{Name: "id", Type: csvload.TypeInteger},
	{Name: "qty", Type: csvload.TypeInteger, Nullable: true},
	{Name: "price", Type: csvload.TypeFloat},
	{Name: "order_date", Type: csvload.TypeDatetime},
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		dialect csvload.Dialect
		in      string
		want    string
	}{
		{"postgres plain", Postgres(), "orders", `"orders"`},
		{"postgres space", Postgres(), "order date", `"order date"`},
		{"postgres reserved", Postgres(), "select", `"select"`},
		{"postgres embedded quote", Postgres(), `a"b`, `"a""b"`},
		{"postgres unicode", Postgres(), "größe", `"größe"`},
		{"sqlserver plain", SQLServer(), "orders", "[orders]"},
		{"sqlserver embedded bracket", SQLServer(), "a]b", "[a]]b]"},
		{"sqlserver open bracket kept", SQLServer(), "a[b", "[a[b]"},
		{"sqlite embedded quote", SQLite(), `x"`, `"x"""`},
		{"duckdb space", DuckDB(), "unit price", `"unit price"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.QuoteIdentifier(tt.in))
		})
	}
}

func TestColumnType(t *testing.T) {
	tests := []struct {
		dialect csvload.Dialect
		want    map[csvload.LogicalType]string
	}{
		{Postgres(), map[csvload.LogicalType]string{
			csvload.TypeInteger: "BIGINT", csvload.TypeFloat: "DOUBLE PRECISION",
			csvload.TypeDatetime: "TIMESTAMP", csvload.TypeBoolean: "BOOLEAN", csvload.TypeText: "TEXT",
		}},
		{SQLServer(), map[csvload.LogicalType]string{
			csvload.TypeInteger: "BIGINT", csvload.TypeFloat: "FLOAT",
			csvload.TypeDatetime: "DATETIME2", csvload.TypeBoolean: "BIT", csvload.TypeText: "NVARCHAR(MAX)",
		}},
		{SQLite(), map[csvload.LogicalType]string{
			csvload.TypeInteger: "INTEGER", csvload.TypeFloat: "REAL",
			csvload.TypeDatetime: "TEXT", csvload.TypeBoolean: "INTEGER", csvload.TypeText: "TEXT",
		}},
		{DuckDB(), map[csvload.LogicalType]string{
			csvload.TypeInteger: "BIGINT", csvload.TypeFloat: "DOUBLE",
			csvload.TypeDatetime: "TIMESTAMP", csvload.TypeBoolean: "BOOLEAN", csvload.TypeText: "VARCHAR",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			for lt, want := range tt.want {
				assert.Equal(t, want, tt.dialect.ColumnType(lt), "type %s", lt)
			}
			assert.Equal(t, tt.want[csvload.TypeText], tt.dialect.ColumnType(csvload.LogicalType(99)))
		})
	}
}

func TestCreateTableIfNotExists_Postgres(t *testing.T) {
	got := Postgres().CreateTableIfNotExists("orders", ordersColumns)

	want := "CREATE TABLE IF NOT EXISTS \"orders\" (\n" +
		"    \"id\" BIGINT,\n" +
		"    \"qty\" BIGINT,\n" +
		"    \"price\" DOUBLE PRECISION,\n" +
		"    \"order_date\" TIMESTAMP\n" +
		")"
	assert.Equal(t, want, got)
}

func TestCreateTableIfNotExists_SQLServer(t *testing.T) {
	got := SQLServer().CreateTableIfNotExists("o'rders", ordersColumns[:1])

	assert.Equal(t, "IF OBJECT_ID(N'[o''rders]', N'U') IS NULL CREATE TABLE [o'rders] (\n    [id] BIGINT\n)", got)
}

func TestInsertStatement(t *testing.T) {
	tests := []struct {
		dialect csvload.Dialect
		want    string
	}{
		{Postgres(), `INSERT INTO "orders" ("id", "qty", "price", "order_date") VALUES ($1, $2, $3, $4)`},
		{SQLServer(), `INSERT INTO [orders] ([id], [qty], [price], [order_date]) VALUES (@p1, @p2, @p3, @p4)`},
		{SQLite(), `INSERT INTO "orders" ("id", "qty", "price", "order_date") VALUES (?, ?, ?, ?)`},
		{DuckDB(), `INSERT INTO "orders" ("id", "qty", "price", "order_date") VALUES (?, ?, ?, ?)`},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.InsertStatement("orders", ordersColumns))
		})
	}
}

func TestForDriver(t *testing.T) {
	for _, name := range []string{"postgres", "postgresql", "PGX", "sqlserver", "mssql", "sqlite", "sqlite3", "duckdb"} {
		d, err := ForDriver(name)
		require.NoError(t, err, name)
		assert.Contains(t, Drivers(), d.Name())
	}

	_, err := ForDriver("oracle")
	require.Error(t, err)
	assert.ErrorIs(t, err, csvload.ErrUnsupportedDriver)
}
