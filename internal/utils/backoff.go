package utils

import "time"

// Backoff tracks reconnection attempts for one connection context. Attempt
// count and next delay are explicit fields on the value, not process-wide
// state: construct a fresh Backoff per connection.
type Backoff struct {
	Initial     time.Duration
	Max         time.Duration
	MaxAttempts int

	attempts int
}

// NewBackoff returns a Backoff with the default schedule:
// 1s, 2s, 4s, 8s, 16s, capped at 30s, five attempts per series.
func NewBackoff() *Backoff {
	return &Backoff{
		Initial:     time.Second,
		Max:         30 * time.Second,
		MaxAttempts: 5,
	}
}

// Next consumes one attempt and returns the delay to wait before it. When
// the series is exhausted it returns false and resets the counter so a later
// series can start over.
func (b *Backoff) Next() (time.Duration, bool) {
	if b.attempts >= b.MaxAttempts {
		b.attempts = 0
		return 0, false
	}
	b.attempts++
	delay := b.Initial
	for i := 1; i < b.attempts; i++ {
		delay *= 2
		if delay >= b.Max {
			return b.Max, true
		}
	}
	if delay > b.Max {
		delay = b.Max
	}
	return delay, true
}

// Reset clears the attempt counter, typically after a successful connect.
func (b *Backoff) Reset() {
	b.attempts = 0
}

// Attempts reports how many attempts the current series has consumed.
func (b *Backoff) Attempts() int {
	return b.attempts
}
