// Package metrics exports draw and render events as Prometheus metrics.
//
// A [Metrics] value implements both observability.DrawHooks and
// observability.RenderHooks. Register it at startup and expose the
// registry over HTTP:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	observability.SetDrawHooks(m)
//	observability.SetRenderHooks(m)
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// All metric operations are safe for concurrent use.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/observability"
)

const namespace = "arbor"

// Metrics holds the Prometheus collectors.
type Metrics struct {
	// ExtractionsTotal counts subtree extractions.
	// Labels: status (ok, error), code (error code, empty on success)
	ExtractionsTotal *prometheus.CounterVec

	// ExtractSeconds measures extraction latency.
	ExtractSeconds prometheus.Histogram

	// TreeNodes records the size of extracted trees.
	TreeNodes prometheus.Histogram

	// LayoutSeconds measures layout latency.
	LayoutSeconds prometheus.Histogram

	// RefreshedEdgesTotal counts edges recoloured.
	// Labels: mode (live, deferred)
	RefreshedEdgesTotal *prometheus.CounterVec

	// RendersTotal counts produced artifacts.
	// Labels: format, status (ok, error)
	RendersTotal *prometheus.CounterVec

	// RenderBytesTotal counts bytes of produced artifacts.
	// Labels: format
	RenderBytesTotal *prometheus.CounterVec

	// RequestsTotal counts HTTP requests.
	// Labels: route, code
	RequestsTotal *prometheus.CounterVec

	// RequestSeconds measures HTTP request latency.
	// Labels: route
	RequestSeconds *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// It panics if they are already registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ExtractionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "draw",
			Name:      "extractions_total",
			Help:      "Subtree extractions by status and error code",
		}, []string{"status", "code"}),
		ExtractSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "draw",
			Name:      "extract_duration_seconds",
			Help:      "Time spent extracting subtrees",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		TreeNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "draw",
			Name:      "tree_nodes",
			Help:      "Number of tracks in extracted trees",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		LayoutSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "draw",
			Name:      "layout_duration_seconds",
			Help:      "Time spent laying out trees",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		RefreshedEdgesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "draw",
			Name:      "refreshed_edges_total",
			Help:      "Edges recoloured by refresh mode",
		}, []string{"mode"}),
		RendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "artifacts_total",
			Help:      "Rendered artifacts by format and status",
		}, []string{"format", "status"}),
		RenderBytesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "bytes_total",
			Help:      "Bytes of rendered artifacts by format",
		}, []string{"format"}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RequestSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// OnExtract implements observability.DrawHooks.
func (m *Metrics) OnExtract(_ context.Context, _, _ int64, nodeCount int, d time.Duration, err error) {
	m.ExtractSeconds.Observe(d.Seconds())
	if err != nil {
		m.ExtractionsTotal.WithLabelValues("error", string(errors.GetCode(err))).Inc()
		return
	}
	m.ExtractionsTotal.WithLabelValues("ok", "").Inc()
	m.TreeNodes.Observe(float64(nodeCount))
}

// OnLayout implements observability.DrawHooks.
func (m *Metrics) OnLayout(_ context.Context, _ int64, _, _ int, d time.Duration) {
	m.LayoutSeconds.Observe(d.Seconds())
}

// OnRefresh implements observability.DrawHooks.
func (m *Metrics) OnRefresh(_ context.Context, edgeCount int, live bool) {
	mode := "deferred"
	if live {
		mode = "live"
	}
	m.RefreshedEdgesTotal.WithLabelValues(mode).Add(float64(edgeCount))
}

// OnRender implements observability.RenderHooks.
func (m *Metrics) OnRender(_ context.Context, format string, size int, _ time.Duration, err error) {
	if err != nil {
		m.RendersTotal.WithLabelValues(format, "error").Inc()
		return
	}
	m.RendersTotal.WithLabelValues(format, "ok").Inc()
	m.RenderBytesTotal.WithLabelValues(format).Add(float64(size))
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.RequestSeconds.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ observability.DrawHooks   = (*Metrics)(nil)
	_ observability.RenderHooks = (*Metrics)(nil)
)
