// Package dialect renders backend-specific SQL for table provisioning and inserts.
package dialect

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// sqlDialect is table-driven: each backend differs only in quoting, type names,
// the create-if-absent wrapper and the placeholder style.
type sqlDialect struct {
	name        string
	quoteOpen   string
	quoteClose  string
	types       map[csvload.LogicalType]string
	placeholder func(n int) string
	createGuard func(quotedTable, rawTable, body string) string
}

var _ csvload.Dialect = (*sqlDialect)(nil)

func (d *sqlDialect) Name() string { return d.name }

// QuoteIdentifier wraps name in the dialect's quotes, doubling any embedded closing quote.
func (d *sqlDialect) QuoteIdentifier(name string) string {
	return d.quoteOpen + strings.ReplaceAll(name, d.quoteClose, d.quoteClose+d.quoteClose) + d.quoteClose
}

func (d *sqlDialect) ColumnType(t csvload.LogicalType) string {
	if typ, ok := d.types[t]; ok {
		return typ
	}
	return d.types[csvload.TypeText]
}

func (d *sqlDialect) CreateTableIfNotExists(table string, columns []csvload.ColumnDescriptor) string {
	// Columns are always created nullable; Nullable is informational only.
	defs := lo.Map(columns, func(c csvload.ColumnDescriptor, _ int) string {
		return d.QuoteIdentifier(c.Name) + " " + d.ColumnType(c.Type)
	})
	body := "(\n    " + strings.Join(defs, ",\n    ") + "\n)"
	return d.createGuard(d.QuoteIdentifier(table), table, body)
}

func (d *sqlDialect) InsertStatement(table string, columns []csvload.ColumnDescriptor) string {
	names := lo.Map(columns, func(c csvload.ColumnDescriptor, _ int) string {
		return d.QuoteIdentifier(c.Name)
	})
	params := lo.Times(len(columns), func(i int) string {
		return d.placeholder(i + 1)
	})
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdentifier(table), strings.Join(names, ", "), strings.Join(params, ", "))
}

func ifNotExists(quotedTable, _ string, body string) string {
	return "CREATE TABLE IF NOT EXISTS " + quotedTable + " " + body
}

func questionMark(int) string { return "?" }

// Postgres targets PostgreSQL through pgx.
func Postgres() csvload.Dialect {
	return &sqlDialect{
		name:       csvload.DriverPostgres,
		quoteOpen:  `"`,
		quoteClose: `"`,
		types: map[csvload.LogicalType]string{
			csvload.TypeInteger:  "BIGINT",
			csvload.TypeFloat:    "DOUBLE PRECISION",
			csvload.TypeDatetime: "TIMESTAMP",
			csvload.TypeBoolean:  "BOOLEAN",
			csvload.TypeText:     "TEXT",
		},
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		createGuard: ifNotExists,
	}
}

// SQLServer targets Microsoft SQL Server. SQL Server has no CREATE TABLE IF NOT
// EXISTS, so the statement is guarded with OBJECT_ID.
func SQLServer() csvload.Dialect {
	return &sqlDialect{
		name:       csvload.DriverSQLServer,
		quoteOpen:  "[",
		quoteClose: "]",
		types: map[csvload.LogicalType]string{
			csvload.TypeInteger:  "BIGINT",
			csvload.TypeFloat:    "FLOAT",
			csvload.TypeDatetime: "DATETIME2",
			csvload.TypeBoolean:  "BIT",
			csvload.TypeText:     "NVARCHAR(MAX)",
		},
		placeholder: func(n int) string { return fmt.Sprintf("@p%d", n) },
		createGuard: func(quotedTable, rawTable, body string) string {
			literal := strings.ReplaceAll(quotedTable, "'", "''")
			return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s %s", literal, quotedTable, body)
		},
	}
}

// SQLite targets SQLite through go-sqlite3. Booleans are stored as 0/1 integers
// and datetimes as text.
func SQLite() csvload.Dialect {
	return &sqlDialect{
		name:       csvload.DriverSQLite,
		quoteOpen:  `"`,
		quoteClose: `"`,
		types: map[csvload.LogicalType]string{
			csvload.TypeInteger:  "INTEGER",
			csvload.TypeFloat:    "REAL",
			csvload.TypeDatetime: "TEXT",
			csvload.TypeBoolean:  "INTEGER",
			csvload.TypeText:     "TEXT",
		},
		placeholder: questionMark,
		createGuard: ifNotExists,
	}
}

// DuckDB targets an embedded DuckDB database.
func DuckDB() csvload.Dialect {
	return &sqlDialect{
		name:       csvload.DriverDuckDB,
		quoteOpen:  `"`,
		quoteClose: `"`,
		types: map[csvload.LogicalType]string{
			csvload.TypeInteger:  "BIGINT",
			csvload.TypeFloat:    "DOUBLE",
			csvload.TypeDatetime: "TIMESTAMP",
			csvload.TypeBoolean:  "BOOLEAN",
			csvload.TypeText:     "VARCHAR",
		},
		placeholder: questionMark,
		createGuard: ifNotExists,
	}
}

// ForDriver returns the dialect registered for driver.
func ForDriver(driver string) (csvload.Dialect, error) {
	switch strings.ToLower(driver) {
	case csvload.DriverPostgres, "postgresql", "pgx":
		return Postgres(), nil
	case csvload.DriverSQLServer, "mssql":
		return SQLServer(), nil
	case csvload.DriverSQLite, "sqlite3":
		return SQLite(), nil
	case csvload.DriverDuckDB:
		return DuckDB(), nil
	default:
		return nil, fmt.Errorf("%q (supported: %s): %w",
			driver, strings.Join(Drivers(), ", "), csvload.ErrUnsupportedDriver)
	}
}

// Drivers lists the canonical driver names.
func Drivers() []string {
	return []string{csvload.DriverPostgres, csvload.DriverSQLServer, csvload.DriverSQLite, csvload.DriverDuckDB}
}
