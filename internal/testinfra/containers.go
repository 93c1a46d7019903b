// Package testinfra starts throwaway destination databases for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultPostgresImage = "postgres:17-alpine"
	DefaultDatabase      = "csvload"
	postgresUser         = "postgres"
	postgresPassword     = "postgres"
)

// Postgres is a running PostgreSQL container reachable at DSN.
type Postgres struct {
	container *postgres.PostgresContainer
	DSN       string
}

type postgresOptions struct {
	image    string
	database string
}

// PostgresOption configures StartPostgres.
type PostgresOption func(*postgresOptions)

// WithImage overrides DefaultPostgresImage.
func WithImage(image string) PostgresOption {
	return func(o *postgresOptions) { o.image = image }
}

// WithDatabase overrides DefaultDatabase.
func WithDatabase(name string) PostgresOption {
	return func(o *postgresOptions) { o.database = name }
}

// StartPostgres starts a PostgreSQL server without TLS and waits until it
// accepts connections.
func StartPostgres(ctx context.Context, opts ...PostgresOption) (*Postgres, error) {
	o := postgresOptions{image: DefaultPostgresImage, database: DefaultDatabase}
	for _, opt := range opts {
		opt(&o)
	}

	ctr, err := postgres.Run(ctx,
		o.image,
		postgres.WithUsername(postgresUser),
		postgres.WithPassword(postgresPassword),
		postgres.WithDatabase(o.database),
		testcontainers.WithWaitStrategy(
			// The server restarts once after initdb; the second line is the real one.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres %s: %w", o.image, err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}

	return &Postgres{container: ctr, DSN: dsn}, nil
}

// Terminate stops and removes the container.
func (p *Postgres) Terminate(ctx context.Context) error {
	return p.container.Terminate(ctx)
}
