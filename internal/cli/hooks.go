package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/observability"
)

// logHooks writes draw and render events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks { return &logHooks{logger: l} }

func (h *logHooks) OnExtract(_ context.Context, query, root int64, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Extract failed", "query", query, "err", err)
		return
	}
	h.logger.Debug("Extracted tree", "query", query, "root", root, "tracks", nodeCount, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnLayout(_ context.Context, root int64, edgeCount, annotationCount int, d time.Duration) {
	h.logger.Debug("Laid out tree", "root", root, "edges", edgeCount, "labels", annotationCount, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnRefresh(_ context.Context, edgeCount int, live bool) {
	h.logger.Debug("Recoloured edges", "edges", edgeCount, "live", live)
}

func (h *logHooks) OnRender(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("Rendered", "format", format, "bytes", size, "took", d.Round(time.Millisecond))
}

var (
	_ observability.DrawHooks   = (*logHooks)(nil)
	_ observability.RenderHooks = (*logHooks)(nil)
)
