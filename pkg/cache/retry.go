package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for fetches that go through the cache layer.
var (
	// ErrNotFound means the transit authority has no data for the
	// requested resource (an unknown line name, typically).
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers transport failures and error responses from the
	// transit authority API.
	ErrNetwork = errors.New("network error")
)

// Retry policy for stop-point fetches. The API rate-limits and has the
// occasional transient 5xx, so a short exponential backoff is enough.
const (
	retryAttempts  = 3
	retryBaseDelay = time.Second
)

// RetryableError marks a failure worth retrying (timeouts, 5xx responses).
// Anything not wrapped in it fails the fetch immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped in a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn, retrying retryable failures up to the attempt
// limit with exponential backoff. It returns the last error, or the context
// error if the context is cancelled while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
