package embedding

import "errors"

// Common embedding provider errors
var (
	// ErrMissingCredentials is returned when the endpoint or API key is
	// absent. Fails configuration only; never retried.
	ErrMissingCredentials = errors.New("embedding: missing credentials")

	// ErrUnauthorized is returned on authentication failure (HTTP 401/403).
	ErrUnauthorized = errors.New("embedding: unauthorized")

	// ErrQuotaExceeded is returned when the provider rejects the request
	// for rate or quota reasons (HTTP 429). Retryable after backoff.
	ErrQuotaExceeded = errors.New("embedding: quota exceeded")

	// ErrTransient is returned on network failures and provider 5xx
	// responses. Retryable.
	ErrTransient = errors.New("embedding: transient provider failure")

	// ErrEmptyInput is returned when a text to embed is empty. Never retried.
	ErrEmptyInput = errors.New("embedding: empty input")

	// ErrDimensionMismatch is returned when the provider responds with
	// vectors of an unexpected size. Never retried.
	ErrDimensionMismatch = errors.New("embedding: unexpected vector dimension")
)

// IsRetryable reports whether the calling layer should retry after backoff.
// Timeouts are treated identically to transient provider errors.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrTransient)
}

// IsAuthError checks if the error is an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrMissingCredentials)
}
