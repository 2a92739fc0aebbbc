package utils

import (
	"fmt"
	"time"

	"rental-alert-service/internal/logging"
)

// Retry runs fn until it succeeds or the backoff series is exhausted,
// waiting the backoff delay between attempts.
func Retry(logger *logging.Logger, b *Backoff, fn func() error) error {
	for {
		err := fn()
		if err == nil {
			b.Reset()
			return nil
		}
		attempt := b.Attempts() + 1
		delay, ok := b.Next()
		if !ok {
			return fmt.Errorf("failed after %d attempts: %w", attempt-1, err)
		}
		logger.Warnf("Attempt %d/%d failed, retrying in %s: %v", attempt, b.MaxAttempts, delay, err)
		time.Sleep(delay)
	}
}
