package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

func TestBackoffDo(t *testing.T) {
	transient := &RetryableError{Err: errors.New("timeout")}
	permanent := errors.New("bad request")

	tests := []struct {
		name      string
		failures  int
		err       error
		attempts  int
		wantCalls int
		wantErr   bool
	}{
		{"succeeds first time", 0, nil, 3, 1, false},
		{"recovers", 2, transient, 3, 3, false},
		{"exhausts", 5, transient, 3, 3, true},
		{"permanent", 5, permanent, 3, 1, true},
		{"zero attempts runs once", 0, nil, 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			b := Backoff{Attempts: tt.attempts, Delay: time.Millisecond}
			err := b.Do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Do() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := Backoff{Attempts: 3, Delay: time.Hour}
	err := b.Do(ctx, func() error {
		return &RetryableError{Err: errors.New("down")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}

func TestBackoffCapsServerWait(t *testing.T) {
	b := Backoff{Attempts: 2, Delay: time.Millisecond, Max: 5 * time.Millisecond}
	start := time.Now()
	calls := 0
	_ = b.Do(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("busy"), After: time.Hour}
	})
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if d := time.Since(start); d > time.Second {
		t.Errorf("waited %v, want the 5ms cap", d)
	}
}

func TestRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"":                              0,
		"3":                             3 * time.Second,
		"-1":                            0,
		"Wed, 21 Oct 2015 07:28:00 GMT": 0,
	}
	for in, want := range tests {
		if got := retryAfter(in); got != want {
			t.Errorf("retryAfter(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetBytes(t *testing.T) {
	saved := DefaultBackoff
	DefaultBackoff = Backoff{Attempts: 3, Delay: time.Millisecond, Max: 5 * time.Millisecond}
	t.Cleanup(func() { DefaultBackoff = saved })

	var flaky, limited atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/flaky":
			if flaky.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("finally"))
		case "/limited":
			if limited.Add(1) < 2 {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte("admitted"))
		case "/down":
			w.WriteHeader(http.StatusBadGateway)
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		path     string
		want     string
		wantCode arborerrors.Code
	}{
		{"/ok", "hello", ""},
		{"/flaky", "finally", ""},
		{"/limited", "admitted", ""},
		{"/down", "", arborerrors.ErrCodeInternal},
		{"/forbidden", "", arborerrors.ErrCodeInvalidInput},
		{"/missing", "", arborerrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := GetBytes(context.Background(), srv.Client(), srv.URL+tt.path)
			if tt.wantCode != "" {
				if !arborerrors.Is(err, tt.wantCode) {
					t.Errorf("GetBytes() code = %v, want %v", arborerrors.GetCode(err), tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetBytes() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("GetBytes() = %q, want %q", got, tt.want)
			}
		})
	}
}
