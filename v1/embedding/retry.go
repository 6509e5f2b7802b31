package embedding

import (
	"context"
	"errors"
	"time"
)

// RetryConfig configures the retry policy for provider calls.
type RetryConfig struct {
	MaxRetries int           // maximum retry attempts (0 = no retries)
	RetryDelay time.Duration // initial delay between retries
	MaxDelay   time.Duration // cap for the exponential backoff
	Timeout    time.Duration // per-attempt timeout
}

// DefaultRetryConfig returns a sensible default configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    60 * time.Second,
	}
}

// Retry runs fn with exponential backoff. Only errors IsRetryable reports
// as transient are retried; a per-attempt timeout turns a hung provider
// call into a deadline error, which is retried like any transient failure.
func Retry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoffDelay(cfg, attempt)):
			}
		}

		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if cfg.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		}
		err := fn(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, context.DeadlineExceeded) {
			// Per-attempt timeout: treated like any transient failure.
			continue
		}
		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// backoffDelay doubles the initial delay per attempt, capped at MaxDelay.
func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	delay := cfg.RetryDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= cfg.MaxDelay {
			return cfg.MaxDelay
		}
	}
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return delay
}
