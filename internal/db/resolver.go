package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/csvload/internal/config"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// GranularConnFlags holds PostgreSQL connection parameters given as separate
// CLI flags. Password is deliberately absent; use $PGPASSWORD or the
// connection string.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no granular flag was provided.
func (g *GranularConnFlags) IsEmpty() bool {
	return g == nil || *g == GranularConnFlags{}
}

// EnvVars captures the environment variables consulted during resolution.
// The PG* names follow libpq: https://www.postgresql.org/docs/current/libpq-envars.html
type EnvVars struct {
	CSVLOAD_CONNECTION string
	DATABASE_URL       string
	PGHOST             string
	PGPORT             string
	PGUSER             string
	PGPASSWORD         string
	PGDATABASE         string
	PGSSLMODE          string
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		CSVLOAD_CONNECTION: os.Getenv("CSVLOAD_CONNECTION"),
		DATABASE_URL:       os.Getenv("DATABASE_URL"),
		PGHOST:             os.Getenv("PGHOST"),
		PGPORT:             os.Getenv("PGPORT"),
		PGUSER:             os.Getenv("PGUSER"),
		PGPASSWORD:         os.Getenv("PGPASSWORD"),
		PGDATABASE:         os.Getenv("PGDATABASE"),
		PGSSLMODE:          os.Getenv("PGSSLMODE"),
	}
}

func (e *EnvVars) hasGranular() bool {
	return e.PGHOST != "" || e.PGPORT != "" || e.PGUSER != "" || e.PGDATABASE != ""
}

// ResolveDSN picks the connection string for driver.
//
// Precedence:
//
//  1. --connection flag
//  2. $CSVLOAD_CONNECTION
//  3. postgres only: $DATABASE_URL when no granular flag is set
//  4. postgres only: granular flags and PG* variables
//  5. csvload.yaml dsn
//  6. postgres only: csvload.yaml granular fields, then libpq defaults
//
// Passing both --connection and granular flags is a conflict.
func ResolveDSN(
	driver string,
	connStringFlag string,
	granularFlags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (string, error) {
	if envVars == nil {
		envVars = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return "", fmt.Errorf(
			"cannot specify both --connection and granular flags (--host, --port, --username, --database)\n"+
				"Choose one approach:\n"+
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/warehouse\"\n"+
				"  2. Granular flags: --host localhost --port 5432 --username loader --database warehouse\n"+
				"  3. Environment variables: export PGHOST=localhost PGDATABASE=warehouse: %w",
			csvload.ErrInvalidConfig,
		)
	}

	if connStringFlag != "" {
		return connStringFlag, nil
	}
	if envVars.CSVLOAD_CONNECTION != "" {
		return envVars.CSVLOAD_CONNECTION, nil
	}

	if driver != csvload.DriverPostgres {
		if !granularFlags.IsEmpty() {
			return "", fmt.Errorf("granular connection flags only apply to the %s driver: %w",
				csvload.DriverPostgres, csvload.ErrInvalidConfig)
		}
		if pc.DSN != "" {
			return pc.DSN, nil
		}
		return "", fmt.Errorf("connection string is required for driver %q (--connection or $CSVLOAD_CONNECTION): %w",
			driver, csvload.ErrInvalidConfig)
	}

	if granularFlags.IsEmpty() && envVars.DATABASE_URL != "" {
		return envVars.DATABASE_URL, nil
	}
	if granularFlags.IsEmpty() && !envVars.hasGranular() && pc.DSN != "" {
		return pc.DSN, nil
	}

	cfg, err := resolveFromGranularParams(granularFlags, envVars, pc)
	if err != nil {
		return "", err
	}
	return BuildConnectionString(cfg), nil
}

// resolveFromGranularParams builds a ConnectionConfig with, per parameter,
// flag > environment variable > csvload.yaml > default.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	pc config.ConnectionConfig,
) (*ConnectionConfig, error) {
	if flags == nil {
		flags = &GranularConnFlags{}
	}
	cfg := &ConnectionConfig{AdditionalParams: make(map[string]string)}

	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, pc.Host, defaultPostgresHost)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "":
		port, err := strconv.Atoi(envVars.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value '%s': must be an integer: %w", envVars.PGPORT, csvload.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = defaultPostgresPort
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = envVars.PGPASSWORD
	cfg.Database = firstNonEmpty(flags.Database, envVars.PGDATABASE, pc.Database, defaultPostgresDB)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, "prefer")

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
