// Package httputil provides the HTTP client helpers used to load remote
// track files.
//
// # Retry
//
// [Backoff] re-runs an operation with exponential backoff while it fails
// with a [RetryableError]. [GetBytes] classifies failures for it:
//
//   - Network errors and 5xx responses are retried
//   - 429 responses are retried, waiting at least the Retry-After seconds
//   - 404 maps to a NOT_FOUND error and is not retried
//   - Any other non-2xx response fails immediately
//
// Usage:
//
//	data, err := httputil.GetBytes(ctx, http.DefaultClient, "https://example.org/cells.json")
package httputil
