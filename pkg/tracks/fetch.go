package tracks

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/httputil"
)

// Open loads tracks from a local file or, for http and https sources,
// downloads them with [Fetch] using http.DefaultClient.
func Open(ctx context.Context, src string, opts ...Option) (*Tracks, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return Fetch(ctx, http.DefaultClient, src, opts...)
	}
	return ReadFile(src, opts...)
}

// Fetch downloads tracks from rawURL. The format follows the extension of
// the URL path. Transient failures are retried with backoff.
func Fetch(ctx context.Context, client *http.Client, rawURL string, opts ...Option) (*Tracks, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "tracks URL %q", rawURL)
	}
	data, err := httputil.GetBytes(ctx, client, u.String())
	if err != nil {
		return nil, err
	}
	return decode(bytes.NewReader(data), u.Path, opts...)
}
