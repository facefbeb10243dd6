package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a progress indicator on one terminal line until stopped
// or until its context ends. Write it to stderr so it never mixes with
// artifacts on stdout.
type spinner struct {
	out      io.Writer
	interval time.Duration

	mu      sync.Mutex
	message string
	width   int // widest message shown, for clearing

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// startSpinner starts animating message on out.
func startSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	s := &spinner{
		out:      out,
		interval: 80 * time.Millisecond,
		message:  message,
		width:    len(message),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// update replaces the text shown next to the spinner.
func (s *spinner) update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	s.width = max(s.width, len(message))
}

// stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width+4))
	})
}

// withSpinner runs fn while a spinner shows message on out.
func withSpinner[T any](ctx context.Context, out io.Writer, message string, fn func() (T, error)) (T, error) {
	s := startSpinner(ctx, out, message)
	defer s.stop()
	return fn()
}
