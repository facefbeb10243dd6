package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

// MaxBodyBytes caps the size of a downloaded body.
const MaxBodyBytes = 256 << 20

// DefaultBackoff is the retry policy of [GetBytes].
var DefaultBackoff = Backoff{Attempts: 3, Delay: 500 * time.Millisecond, Max: 10 * time.Second}

// GetBytes fetches url and returns the response body, retrying transient
// failures with [DefaultBackoff].
//
// A 404 returns ErrCodeNotFound and other client errors ErrCodeInvalidInput.
// Transient failures that outlast every attempt return ErrCodeInternal.
func GetBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	var body []byte
	err := DefaultBackoff.Do(ctx, func() error {
		b, err := get(ctx, client, url)
		body = b
		return err
	})
	if err != nil {
		var retry *RetryableError
		if errors.As(err, &retry) {
			return nil, arborerrors.Wrap(arborerrors.ErrCodeInternal, retry.Err, "GET %s", url)
		}
		return nil, err
	}
	return body, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, arborerrors.Wrap(arborerrors.ErrCodeInvalidInput, err, "GET %s", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, arborerrors.New(arborerrors.ErrCodeNotFound, "GET %s: %s", url, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return nil, &RetryableError{
			Err:   fmt.Errorf("GET %s: %s", url, resp.Status),
			After: retryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, arborerrors.New(arborerrors.ErrCodeInvalidInput, "GET %s: %s", url, resp.Status)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	return b, nil
}

// retryAfter parses a Retry-After header given in seconds. HTTP dates and
// malformed values yield 0.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
