package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/vvka-141/csvload/pkg/csvload"
)

// ExponentialBackoff grows the wait geometrically up to a cap, with optional jitter.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int

	// jitter spreads delays by +/- jitter*delay (0.1 = 10%)
	jitter     float64
	jitterFunc func() float64
}

var _ csvload.BackoffStrategy = (*ExponentialBackoff)(nil)

// BackoffOption is a functional option for configuring ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithInitialDelay sets the wait before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

// WithMaxDelay caps the wait between retries.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

// WithMultiplier sets the growth factor between retries.
func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the jitter factor (0.0-1.0).
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitter = j }
}

// WithJitterFunc replaces the random source used for jitter; tests pass a constant.
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitterFunc = f }
}

// NewExponentialBackoff creates a backoff with 100ms initial delay, 30s cap,
// factor 2 and 10% jitter, adjusted by opts.
//
// Example:
//
//	backoff := retry.NewExponentialBackoff(csvload.DefaultRetryMaxAttempts,
//	    retry.WithInitialDelay(csvload.DefaultRetryInitialDelay),
//	    retry.WithMaxDelay(csvload.DefaultRetryMaxDelay),
//	)
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: 100 * time.Millisecond,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
		jitterFunc:   rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns initialDelay * multiplier^attempt, capped at maxDelay, then jittered.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := float64(b.initialDelay) * math.Pow(b.multiplier, float64(attempt))
	if delay > float64(b.maxDelay) {
		delay = float64(b.maxDelay)
	}

	if b.jitter > 0 && b.jitterFunc != nil {
		// Map [0,1) onto [-1,1) so the spread is symmetric around delay.
		offset := (b.jitterFunc() - 0.5) * 2.0
		delay *= 1.0 + b.jitter*offset
	}

	return time.Duration(delay).Round(time.Millisecond)
}

// MaxAttempts returns the maximum number of retry attempts.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}

// MaxDelay returns the delay cap.
func (b *ExponentialBackoff) MaxDelay() time.Duration {
	return b.maxDelay
}

// NewDefaultBackoff returns the backoff used when connecting to a destination.
func NewDefaultBackoff() *ExponentialBackoff {
	return NewExponentialBackoff(csvload.DefaultRetryMaxAttempts,
		WithInitialDelay(csvload.DefaultRetryInitialDelay),
		WithMaxDelay(csvload.DefaultRetryMaxDelay),
	)
}
