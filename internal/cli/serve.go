package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/lineage/layout"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/observability/metrics"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second

	// headerRenderID carries the id assigned to every request.
	headerRenderID = "X-Render-ID"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	sourceOpts
	addr string
}

// serveCommand creates the serve command, an HTTP server for trees of one
// track set.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve <tracks>",
		Short: "Serve lineage trees over HTTP",
		Long: `Serve loads a track set once and serves its lineage trees.

Routes:
  GET /tracks                  track ids, time ranges and parents
  GET /trees/{id}              tree containing a track
      ?format=svg|json|dot|txt|pdf|png
      ?view=tree|nodelink
      ?highlight=<id>|none
  GET /metrics                 Prometheus metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}

func runServe(ctx context.Context, src string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	ws, err := opts.load(ctx, src)
	if err != nil {
		return err
	}

	s := newServer(ws, logger, prometheus.NewRegistry())
	hooks := newLogHooks(logger)
	observability.SetDrawHooks(observability.TeeDraw(hooks, s.metrics))
	observability.SetRenderHooks(observability.TeeRender(hooks, s.metrics))

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Serving %s on %s", pluralize(ws.tracks.Len(), "track"), StyleHighlight.Render(opts.addr))

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", opts.addr)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Server
// =============================================================================

// server answers tree requests against one loaded workspace. Every request
// draws onto its own plotter and canvas; the workspace is never modified.
type server struct {
	ws      *workspace
	logger  *log.Logger
	metrics *metrics.Metrics
	reg     *prometheus.Registry
}

func newServer(ws *workspace, logger *log.Logger, reg *prometheus.Registry) *server {
	return &server{ws: ws, logger: logger, metrics: metrics.New(reg), reg: reg}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/tracks", s.handleTracks)
	r.Get("/trees/{id}", s.handleTree)
	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return r
}

// instrument tags every response with a render id and records its route,
// status and duration.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(headerRenderID, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), s.logger.With("render", id))))

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(route, status, time.Since(start))
		s.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "status", status, "render", id, "took", time.Since(start).Round(time.Microsecond))
	})
}

// trackInfo is one entry of the /tracks response.
type trackInfo struct {
	ID      int64   `json:"id"`
	Start   int64   `json:"start"`
	End     int64   `json:"end"`
	Parents []int64 `json:"parents,omitempty"`
}

type tracksResponse struct {
	Count  int         `json:"count"`
	Roots  []int64     `json:"roots"`
	Tracks []trackInfo `json:"tracks"`
}

func (s *server) handleTracks(w http.ResponseWriter, r *http.Request) {
	t := s.ws.tracks
	resp := tracksResponse{Count: t.Len(), Roots: t.Roots(), Tracks: make([]trackInfo, 0, t.Len())}
	if resp.Roots == nil {
		resp.Roots = []int64{}
	}
	for _, id := range t.IDs() {
		tr, err := t.TimeRange(id)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Tracks = append(resp.Tracks, trackInfo{ID: id, Start: tr.Min, End: tr.Max, Parents: t.Graph()[id]})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	id, err := errors.ParseTrackID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = formatSVG
	}
	if err := errors.ValidateFormats([]string{format}, supportedFormats); err != nil {
		writeError(w, err)
		return
	}
	view := q.Get("view")
	if view == "" {
		view = viewTree
	}
	if err := validateView(view); err != nil {
		writeError(w, err)
		return
	}
	highlight, err := parseHighlight(q.Get("highlight"), id)
	if err != nil {
		writeError(w, err)
		return
	}

	d, err := s.ws.draw(ctx, id, true)
	if err != nil {
		writeError(w, err)
		return
	}
	if highlight == nil || *highlight != id {
		d.plotter.Highlight(highlight)
	}

	data, err := d.render(ctx, format, view)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Tree-Root", strconv.FormatInt(d.root(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// parseHighlight reads the highlight query parameter. Empty highlights the
// requested track, "none" highlights nothing.
func parseHighlight(v string, requested int64) (*int64, error) {
	switch v {
	case "":
		return layout.TrackID(requested), nil
	case "none":
		return nil, nil
	}
	id, err := errors.ParseTrackID(v)
	if err != nil {
		return nil, err
	}
	return layout.TrackID(id), nil
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorResponse{Error: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
