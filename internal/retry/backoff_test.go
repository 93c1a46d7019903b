package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3)

	assert.Equal(t, 3, b.MaxAttempts())
	assert.Equal(t, 30*time.Second, b.MaxDelay())
}

func TestExponentialBackoff_NextDelay_WithoutJitter(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithJitter(0),
	)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, 1600 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.NextDelay(tt.attempt), "NextDelay(%d)", tt.attempt)
	}
}

func TestExponentialBackoff_NextDelay_Capped(t *testing.T) {
	b := NewExponentialBackoff(100,
		WithInitialDelay(1*time.Second),
		WithMultiplier(3.0),
		WithMaxDelay(1*time.Minute),
		WithJitter(0),
	)

	for attempt := 0; attempt <= 100; attempt++ {
		assert.LessOrEqual(t, b.NextDelay(attempt), time.Minute, "attempt %d", attempt)
	}
	assert.Equal(t, time.Minute, b.NextDelay(10))
}

func TestExponentialBackoff_NextDelay_Jitter(t *testing.T) {
	tests := []struct {
		random float64
		want   time.Duration
	}{
		{0.0, 90 * time.Millisecond},
		{0.5, 100 * time.Millisecond},
		{1.0, 110 * time.Millisecond},
	}

	for _, tt := range tests {
		r := tt.random
		b := NewExponentialBackoff(3,
			WithInitialDelay(100*time.Millisecond),
			WithJitter(0.1),
			WithJitterFunc(func() float64 { return r }),
		)
		assert.Equal(t, tt.want, b.NextDelay(0), "random=%v", r)
	}
}

func TestNewDefaultBackoff_TotalWait(t *testing.T) {
	b := NewExponentialBackoff(3,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Minute),
		WithJitter(0),
	)

	var total time.Duration
	for attempt := 0; attempt < b.MaxAttempts(); attempt++ {
		total += b.NextDelay(attempt)
	}
	assert.Equal(t, 700*time.Millisecond, total)
	assert.Equal(t, 3, NewDefaultBackoff().MaxAttempts())
}
