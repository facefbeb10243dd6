package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient failure (network error, 429, 5xx).
// After, when set, is the wait the server asked for via Retry-After.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Backoff retries transient failures with exponentially growing waits.
type Backoff struct {
	Attempts int           // total attempts; values below 1 mean one
	Delay    time.Duration // wait after the first failure, doubled each time
	Max      time.Duration // cap on any single wait; 0 means none
}

// Do runs fn until it succeeds, returns an error not wrapped in
// [RetryableError], or runs out of attempts. A server-requested wait
// replaces the computed one when it is longer. It returns ctx.Err() if ctx
// ends while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := max(delay, re.After)
		if b.Max > 0 {
			wait = min(wait, b.Max)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}
	return lastErr
}
