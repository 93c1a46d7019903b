package testing

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/vvka-141/csvload/internal/dialect"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// ErrInjected is returned by RecordingSink for injected failures.
var ErrInjected = errors.New("injected failure")

// RecordingSink is an in-memory csvload.Sink for tests. It records every
// statement, keeps the committed rows per statement, and can be told to fail
// a given DDL statement or batch. Safe for concurrent use.
type RecordingSink struct {
	mu sync.Mutex

	dialect csvload.Dialect

	// FailBatch makes the n-th ExecuteBatch call (1-based) fail; 0 disables.
	FailBatch int
	// FailDDL makes every ExecuteDDL call fail.
	FailDDL bool

	DDL       []string
	Batches   [][][]any
	Committed [][]any
	Tables    map[string]bool
	Closed    bool

	batchCalls int
}

var _ csvload.Sink = (*RecordingSink)(nil)

// NewRecordingSink creates a sink using the PostgreSQL dialect.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{
		dialect: dialect.Postgres(),
		Tables:  make(map[string]bool),
	}
}

func (s *RecordingSink) Dialect() csvload.Dialect { return s.dialect }

// ExecuteDDL records stmt and tracks created tables, so a repeated
// create-if-absent leaves Tables unchanged.
func (s *RecordingSink) ExecuteDDL(ctx context.Context, stmt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.DDL = append(s.DDL, stmt)
	if s.FailDDL {
		return ErrInjected
	}
	if name, ok := createdTable(stmt); ok {
		s.Tables[name] = true
	}
	return nil
}

// ExecuteBatch records rows and commits them unless this call is FailBatch.
func (s *RecordingSink) ExecuteBatch(ctx context.Context, stmt string, rows [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batchCalls++
	copied := make([][]any, len(rows))
	for i, r := range rows {
		copied[i] = append([]any(nil), r...)
	}
	s.Batches = append(s.Batches, copied)

	if s.FailBatch > 0 && s.batchCalls == s.FailBatch {
		return ErrInjected
	}
	s.Committed = append(s.Committed, copied...)
	return nil
}

func (s *RecordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// BatchCalls returns the number of ExecuteBatch calls so far.
func (s *RecordingSink) BatchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchCalls
}

func createdTable(stmt string) (string, bool) {
	const prefix = "CREATE TABLE IF NOT EXISTS "
	if !strings.HasPrefix(stmt, prefix) {
		return "", false
	}
	rest := stmt[len(prefix):]
	end := strings.Index(rest, " (")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// RecordingSinkFactory hands out a new RecordingSink per Open call.
type RecordingSinkFactory struct {
	mu sync.Mutex

	// Configure is applied to every new sink before it is returned.
	Configure func(n int, s *RecordingSink)
	// OpenErr makes Open fail.
	OpenErr error

	Sinks []*RecordingSink
}

var _ csvload.SinkFactory = (*RecordingSinkFactory)(nil)

func (f *RecordingSinkFactory) Open(ctx context.Context) (csvload.Sink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	s := NewRecordingSink()
	if f.Configure != nil {
		f.Configure(len(f.Sinks), s)
	}
	f.Sinks = append(f.Sinks, s)
	return s, nil
}
