// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about tree drawing and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (log lines, Prometheus, OpenTelemetry, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDrawHooks(&myDrawHooks{})
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	root, nodes, err := lineage.Build(...)
//	observability.Draw().OnExtract(ctx, query, root, len(nodes), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Draw Hooks
// =============================================================================

// DrawHooks receives events from the plotter.
type DrawHooks interface {
	// OnExtract records a subtree extraction for query.
	OnExtract(ctx context.Context, query, root int64, nodeCount int, duration time.Duration, err error)

	// OnLayout records a completed layout.
	OnLayout(ctx context.Context, root int64, edgeCount, annotationCount int, duration time.Duration)

	// OnRefresh records a colour refresh. live reports whether the
	// renderer was asked to apply it.
	OnRefresh(ctx context.Context, edgeCount int, live bool)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from output sinks.
type RenderHooks interface {
	// OnRender records one artifact produced in format.
	OnRender(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDrawHooks is a no-op implementation of DrawHooks.
type NoopDrawHooks struct{}

func (NoopDrawHooks) OnExtract(context.Context, int64, int64, int, time.Duration, error) {}
func (NoopDrawHooks) OnLayout(context.Context, int64, int, int, time.Duration)          {}
func (NoopDrawHooks) OnRefresh(context.Context, int, bool)                              {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRender(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Fan-out
// =============================================================================

type teeDraw []DrawHooks

// TeeDraw returns hooks that forward every event to each of hs in order.
func TeeDraw(hs ...DrawHooks) DrawHooks { return teeDraw(hs) }

func (t teeDraw) OnExtract(ctx context.Context, query, root int64, n int, d time.Duration, err error) {
	for _, h := range t {
		h.OnExtract(ctx, query, root, n, d, err)
	}
}

func (t teeDraw) OnLayout(ctx context.Context, root int64, edges, annotations int, d time.Duration) {
	for _, h := range t {
		h.OnLayout(ctx, root, edges, annotations, d)
	}
}

func (t teeDraw) OnRefresh(ctx context.Context, edges int, live bool) {
	for _, h := range t {
		h.OnRefresh(ctx, edges, live)
	}
}

type teeRender []RenderHooks

// TeeRender returns hooks that forward every event to each of hs in order.
func TeeRender(hs ...RenderHooks) RenderHooks { return teeRender(hs) }

func (t teeRender) OnRender(ctx context.Context, format string, size int, d time.Duration, err error) {
	for _, h := range t {
		h.OnRender(ctx, format, size, d, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	drawHooks   DrawHooks   = NoopDrawHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetDrawHooks registers custom draw hooks.
// This should be called once at application startup before any drawing.
func SetDrawHooks(h DrawHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		drawHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Draw returns the registered draw hooks.
func Draw() DrawHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return drawHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	drawHooks = NoopDrawHooks{}
	renderHooks = NoopRenderHooks{}
}
