package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/csvload/internal/retry"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// Pool sizing for one Postgres sink. A sink writes one batch at a time, so
// a second connection only serves DDL issued while a pool slot is busy.
const (
	DefaultMaxConns        = 2
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config, logger csvload.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("postgres %s: %s", strings.ToLower(notice.Severity), notice.Message)
	}
}

// PostgresConnector opens pgx pools with automatic retry on transient failures.
type PostgresConnector struct {
	connStr       string
	config        *ConnectionConfig
	logger        csvload.Logger
	retryExecutor *retry.Executor
}

// NewPostgresConnector creates a connector for dsn. URI and ADO.NET strings
// are normalized; keyword/value strings are handed to pgx as is.
func NewPostgresConnector(dsn string, logger csvload.Logger) (*PostgresConnector, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}
	config, connStr, err := NormalizePostgresDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w: %w", csvload.ErrInvalidConfig, err)
	}

	executor := retry.NewDefaultExecutor().WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("connect attempt %d failed, retrying in %s: %v", attempt+1, delay, err)
	})

	return &PostgresConnector{
		connStr:       connStr,
		config:        config,
		logger:        logger,
		retryExecutor: executor,
	}, nil
}

// Connect establishes a pool and verifies it with a ping.
func (c *PostgresConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	probe, err := c.poolConfig()
	if err != nil {
		return nil, err
	}
	host, port, database := c.target(probe)

	var pool *pgxpool.Pool
	err = c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		poolConfig, err := c.poolConfig()
		if err != nil {
			return err
		}
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return wrapConnectionError(err, host, port, database)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return wrapConnectionError(err, host, port, database)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Verbose("connected to postgres %s:%d/%s", host, port, database)
	return pool, nil
}

func (c *PostgresConnector) poolConfig() (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(c.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w: %w", csvload.ErrInvalidConfig, err)
	}
	configurePool(poolConfig, c.logger)
	return poolConfig, nil
}

func (c *PostgresConnector) target(poolConfig *pgxpool.Config) (string, int, string) {
	if c.config != nil {
		return c.config.Host, c.config.Port, c.config.Database
	}
	cc := poolConfig.ConnConfig
	return cc.Host, int(cc.Port), cc.Database
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

%w: %w`, addr, host, port, csvload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

%w: %w`, host, csvload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $PGPASSWORD or the connection string)
  - Wrong username
  - User does not have access to the database

%w: %w`, database, csvload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

To create it:
  createdb %s

%w: %w`, database, database, csvload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

%w: %w`, addr, csvload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but sslmode is wrong
  - Certificate verification failed (try sslmode=require)

%w: %w`, csvload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`too many connections to database "%s"

Possible causes:
  - max_connections limit reached in postgresql.conf
  - Too many --workers for the server

%w: %w`, database, csvload.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("failed to connect to database: %w: %w", csvload.ErrConnectionFailed, err)
	}
}
