package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// PostgreSQL SQLSTATE values that are transient outside their class prefix.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeLockNotAvailable     = "55P03"
)

// pgTransientClasses are SQLSTATE classes that are always retryable:
// 08 connection exception, 53 insufficient resources, 57 operator intervention.
var pgTransientClasses = []string{"08", "53", "57"}

// SQL Server error numbers for transient conditions, including the Azure SQL
// throttling and failover codes.
var mssqlTransientNumbers = map[int32]bool{
	1205:  true, // deadlock victim
	233:   true, // connection closed by server
	64:    true, // connection dropped during login
	4060:  true, // cannot open database
	4221:  true, // login timeout on readable secondary
	10053: true, // transport-level error
	10054: true, // connection reset by peer
	10060: true, // network timeout
	10928: true, // resource limit reached
	10929: true, // resource minimum not guaranteed
	40197: true, // service error processing request
	40501: true, // service busy
	40613: true, // database unavailable
	49918: true, // not enough resources
	49919: true, // too many create or update operations
	49920: true, // too many operations in progress
}

// transientPatterns are lowercase message fragments that indicate a transient
// failure when no typed driver error is available.
var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"connection failure",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
	"database is locked",
}

// DatabaseErrorClassifier recognizes transient errors from every supported
// destination: PostgreSQL, SQL Server, SQLite and plain network failures.
type DatabaseErrorClassifier struct{}

var _ csvload.ErrorClassifier = (*DatabaseErrorClassifier)(nil)

// NewDatabaseErrorClassifier creates a new multi-backend error classifier.
func NewDatabaseErrorClassifier() *DatabaseErrorClassifier {
	return &DatabaseErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *DatabaseErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation is the caller's decision, never a transient fault.
	if errors.Is(err, context.Canceled) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isTransientPgCode(pgErr.Code)
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		return mssqlTransientNumbers[msErr.Number]
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	if isNetworkError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

func isTransientPgCode(code string) bool {
	for _, class := range pgTransientClasses {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	switch code {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected, pgCodeLockNotAvailable:
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		if opErr.Err != nil {
			return errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
				errors.Is(opErr.Err, syscall.ECONNRESET) ||
				errors.Is(opErr.Err, syscall.ENETUNREACH) ||
				errors.Is(opErr.Err, syscall.EHOSTUNREACH)
		}
	}
	return false
}
