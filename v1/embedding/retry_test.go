package embedding

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		MaxDelay:   4 * time.Millisecond,
	}
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(), func(context.Context) error {
		calls++
		return ErrUnauthorized
	})

	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
	if calls != 1 {
		t.Errorf("auth errors must not be retried, got %d calls", calls)
	}
}

func TestRetryRetriesTransientUntilSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(), func(context.Context) error {
		calls++
		if calls < 3 {
			return ErrTransient
		}
		return nil
	})

	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetryConfig(), func(context.Context) error {
		calls++
		return ErrQuotaExceeded
	})

	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("err = %v, want ErrQuotaExceeded", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 1 initial + 3 retries", calls)
	}
}

func TestRetryHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, fastRetryConfig(), func(context.Context) error {
		return ErrTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBackoffDelayDoublesAndCaps(t *testing.T) {
	cfg := RetryConfig{RetryDelay: time.Second, MaxDelay: 5 * time.Second}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 5 * time.Second},
		{10, 5 * time.Second},
	}
	for _, tc := range cases {
		if got := backoffDelay(cfg, tc.attempt); got != tc.want {
			t.Errorf("backoffDelay(attempt=%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestErrorClassification(t *testing.T) {
	if !IsRetryable(ErrTransient) || !IsRetryable(ErrQuotaExceeded) {
		t.Error("transient and quota errors must be retryable")
	}
	if IsRetryable(ErrUnauthorized) || IsRetryable(ErrDimensionMismatch) {
		t.Error("auth and validation errors must not be retryable")
	}
	if !IsAuthError(ErrUnauthorized) || IsAuthError(ErrTransient) {
		t.Error("IsAuthError misclassifies")
	}
}
