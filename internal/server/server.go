// Package server exposes one environment's analysis over HTTP.
//
// The server is read-only: the report, graph, and layout are computed
// before it starts, and every endpoint serves a view of that snapshot.
// JSON endpoints live under /api, the rendered dependency graph at
// /graph.svg, and a small HTML overview at /.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/graph"
)

// Server serves a pre-computed environment analysis.
type Server struct {
	report *analysis.Report
	graph  *graph.DependencyGraph
	logger *log.Logger

	svgOnce sync.Once
	svg     []byte
	svgErr  error
}

// New creates a server over a report and the graph it was derived from.
// A nil logger falls back to the process default.
func New(report *analysis.Report, g *graph.DependencyGraph, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{report: report, graph: g, logger: logger}
}

// Handler returns the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/report", s.handleReport)
	r.Get("/api/graph", s.handleGraph)
	r.Get("/api/layout", s.handleLayout)
	r.Get("/graph.svg", s.handleGraphSVG)
	r.Get("/", s.handleIndex)

	return r
}

// Run starts the server and blocks until the listener fails or ctx is
// canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("serving analysis", "addr", addr, "env", s.report.Name)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
