package csvload

import "time"

// ErrorClassifier decides whether a destination error is worth retrying.
// Each backend reports transient conditions differently, so classifiers
// inspect driver-specific error types as well as network failures.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy yields the wait before each retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt (zero-indexed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts caps the number of retries (0 = none, negative = unlimited).
	MaxAttempts() int
}
