package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/csvload/internal/dialect"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// PostgresSink writes to PostgreSQL through a pgx pool. Each batch is one
// transaction carrying one pgx.Batch, so a batch costs a single round trip.
type PostgresSink struct {
	pool    *pgxpool.Pool
	dialect csvload.Dialect
}

var _ csvload.Sink = (*PostgresSink)(nil)

// NewPostgresSink wraps an open pool. The sink owns the pool from here on.
func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	if pool == nil {
		panic("pool cannot be nil")
	}
	return &PostgresSink{pool: pool, dialect: dialect.Postgres()}
}

func (s *PostgresSink) Dialect() csvload.Dialect { return s.dialect }

func (s *PostgresSink) ExecuteDDL(ctx context.Context, stmt string) error {
	_, err := s.pool.Exec(ctx, stmt)
	return err
}

// ExecuteBatch inserts rows in one transaction. Either all rows commit or
// none do.
func (s *PostgresSink) ExecuteBatch(ctx context.Context, stmt string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(stmt, row...)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("execute %d rows: %w", len(rows), err)
		}
		return nil
	})
}

func (s *PostgresSink) Close() error {
	s.pool.Close()
	return nil
}
