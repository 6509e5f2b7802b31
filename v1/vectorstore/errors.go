package vectorstore

import "errors"

// Common vector store errors
var (
	// ErrNotConnected is returned when an operation is attempted before
	// the client reached CollectionReady.
	ErrNotConnected = errors.New("vectorstore: client not connected")

	// ErrCollectionMissing is returned when the configured collection does
	// not exist and could not be created.
	ErrCollectionMissing = errors.New("vectorstore: collection missing")

	// ErrDimensionMismatch is returned when a vector does not match the
	// collection dimension. Validation failure; never retried.
	ErrDimensionMismatch = errors.New("vectorstore: vector dimension mismatch")

	// ErrUnavailable is returned on connectivity or server-side failures.
	// Retryable by the calling layer.
	ErrUnavailable = errors.New("vectorstore: store unavailable")
)

// IsRetryable reports whether the calling layer should retry after backoff.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsValidationError checks if the error is a malformed-input failure that
// must never be retried.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrDimensionMismatch)
}
