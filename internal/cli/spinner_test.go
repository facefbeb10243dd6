package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer is a bytes.Buffer safe for the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out lockedBuffer
	s := startSpinner(context.Background(), &out, "Rendering PDF...")
	time.Sleep(200 * time.Millisecond)
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Rendering PDF...") {
		t.Errorf("output %q does not show the message", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("output %q does not end with a cleared line", got)
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &lockedBuffer{}, "Testing idempotent stop...")
	s.stop()
	s.stop()
	s.stop()
}

func TestSpinnerEndsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &lockedBuffer{}, "Testing with context...")
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
	s.stop()
}

func TestSpinnerUpdate(t *testing.T) {
	s := startSpinner(context.Background(), &lockedBuffer{}, "short")
	defer s.stop()

	s.update("a much longer message")
	s.update("tiny")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.message != "tiny" {
		t.Errorf("message = %q, want %q", s.message, "tiny")
	}
	if want := len("a much longer message"); s.width != want {
		t.Errorf("width = %d, want %d", s.width, want)
	}
}

func TestWithSpinner(t *testing.T) {
	var out lockedBuffer
	got, err := withSpinner(context.Background(), &out, "Working...", func() ([]byte, error) {
		return []byte("svg"), nil
	})
	if err != nil || string(got) != "svg" {
		t.Errorf("withSpinner() = %q, %v, want svg, nil", got, err)
	}

	boom := errors.New("boom")
	if _, err := withSpinner(context.Background(), &out, "Working...", func() (int, error) { return 0, boom }); err != boom {
		t.Errorf("withSpinner() error = %v, want %v", err, boom)
	}
}
