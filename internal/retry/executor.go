package retry

import (
	"context"
	"time"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// Executor runs an operation until it succeeds, fails fatally, or the
// backoff runs out of attempts.
//
// Execute is safe for concurrent use. WithOnRetry returns a copy, so each
// sink can attach its own logging callback without touching a shared executor.
type Executor struct {
	classifier csvload.ErrorClassifier
	strategy   csvload.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a retry executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier csvload.ErrorClassifier, strategy csvload.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// NewDefaultExecutor pairs the multi-backend classifier with the default backoff.
func NewDefaultExecutor() *Executor {
	return NewExecutor(NewDatabaseErrorClassifier(), NewDefaultBackoff())
}

// WithOnRetry returns a copy of e that calls callback before every retry wait.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation, retrying transient failures.
// It returns nil, the first fatal error, the last transient error once
// attempts are exhausted, or ctx.Err() if ctx ends while waiting.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	maxAttempts := e.strategy.MaxAttempts()

	err := operation(ctx)
	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
	}
	return err
}
