package testing

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/csvload/internal/testinfra"
)

var (
	serverOnce sync.Once
	serverDSN  string
	serverErr  error
)

func sharedServer() (string, error) {
	serverOnce.Do(func() {
		pg, err := testinfra.StartPostgres(context.Background())
		if err != nil {
			serverErr = err
			return
		}
		serverDSN = pg.DSN
	})
	return serverDSN, serverErr
}

// GetTestConnectionString returns the PostgreSQL server used by integration tests.
// Priority: CSVLOAD_TEST_PG env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("CSVLOAD_TEST_PG"); dsn != "" {
		return dsn
	}

	dsn, err := sharedServer()
	if err != nil {
		t.Skipf("CSVLOAD_TEST_PG not set and Docker unavailable: %v", err)
	}
	return dsn
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase returns the DSN of an empty database created for this test
// on the shared server, dropped again on cleanup. Tables created by one test
// are never visible to another.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	serverDSN := GetTestConnectionString(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, serverDSN)
	if err != nil {
		t.Fatalf("connect to test server: %v", err)
	}
	defer conn.Close(ctx)

	name := "csvload_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		t.Fatalf("create test database: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		conn, err := pgx.Connect(ctx, serverDSN)
		if err != nil {
			t.Logf("drop test database %s: %v", name, err)
			return
		}
		defer conn.Close(ctx)
		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{name}.Sanitize()+" WITH (FORCE)"); err != nil {
			t.Logf("drop test database %s: %v", name, err)
		}
	})

	return withDatabase(serverDSN, name)
}

// withDatabase points dsn at database, for URI and keyword/value forms.
func withDatabase(dsn, database string) string {
	if u, err := url.Parse(dsn); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		u.Path = "/" + database
		return u.String()
	}
	return fmt.Sprintf("%s dbname=%s", dsn, database)
}
