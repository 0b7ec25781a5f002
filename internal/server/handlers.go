package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/export"
	"github.com/condagraph/condagraph/pkg/graph"
)

type graphResponse struct {
	Nodes     []string               `json:"nodes"`
	Edges     []edgeResponse         `json:"edges"`
	Conflicts []graph.ConflictRecord `json:"conflicts"`
}

type edgeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.report)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	resp := graphResponse{
		Nodes:     s.graph.Nodes(),
		Edges:     make([]edgeResponse, 0, s.graph.EdgeCount()),
		Conflicts: s.report.Conflicts,
	}
	for _, e := range s.graph.Edges() {
		resp.Edges = append(resp.Edges, edgeResponse{
			From: s.graph.Name(e.From),
			To:   s.graph.Name(e.To),
			Kind: e.Kind.String(),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.graph.Layout())
}

func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	// Rendering is deterministic for a fixed graph, so the first request
	// pays for Graphviz and later ones serve the cached bytes. The render
	// is detached from the request so a canceled first request cannot
	// poison the cache.
	s.svgOnce.Do(func() {
		dot := export.ToDOT(s.graph, s.report.Conflicts)
		s.svg, s.svgErr = export.RenderSVG(context.WithoutCancel(r.Context()), dot)
	})
	if s.svgErr != nil {
		s.logger.Error("render graph", "err", s.svgErr)
		http.Error(w, "graph rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(s.svg) //nolint:errcheck // best effort, client may be gone
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("  <meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s · condagraph</title>\n", html.EscapeString(s.report.Name))
	buf.WriteString("  <style>\n")
	buf.WriteString("    body { font-family: Arial, sans-serif; margin: 20px; max-width: 960px; }\n")
	buf.WriteString("    img { max-width: 100%; border: 1px solid #ddd; }\n")
	buf.WriteString("    nav a { margin-right: 12px; }\n")
	buf.WriteString("  </style>\n")
	buf.WriteString("</head>\n<body>\n")

	fmt.Fprintf(&buf, "  <h1>Environment: %s</h1>\n", html.EscapeString(s.report.Name))
	fmt.Fprintf(&buf, "  <p>%d packages · %s · %d pinned · %d outdated · %d conflicts</p>\n",
		len(s.report.Packages), analysis.FormatSize(s.report.TotalSize),
		s.report.PinnedCount, s.report.OutdatedCount, len(s.report.Conflicts))

	buf.WriteString("  <nav>\n")
	buf.WriteString("    <a href=\"/api/report\">report</a>\n")
	buf.WriteString("    <a href=\"/api/graph\">graph</a>\n")
	buf.WriteString("    <a href=\"/api/layout\">layout</a>\n")
	buf.WriteString("  </nav>\n")

	if len(s.report.Recommendations) > 0 {
		buf.WriteString("  <h2>Recommendations</h2>\n  <ul>\n")
		for _, rec := range s.report.Recommendations {
			fmt.Fprintf(&buf, "    <li>%s</li>\n", html.EscapeString(rec))
		}
		buf.WriteString("  </ul>\n")
	}

	buf.WriteString("  <h2>Dependency graph</h2>\n")
	buf.WriteString("  <img src=\"/graph.svg\" alt=\"dependency graph\">\n")
	buf.WriteString("</body>\n</html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck // best effort, client may be gone
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}
