package ai

import (
	"context"
	"time"
)

// retryWithBackoff calls fn up to maxRetries+1 times, sleeping between
// attempts with exponential backoff. Delays never decrease: baseDelay,
// then baseDelay*2, baseDelay*4, and so on. Returns the last error when
// every attempt fails.
func retryWithBackoff(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(ctx context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}

	var lastErr error
	delay := baseDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}

		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
	}

	return lastErr
}
