package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/graph"
)

func testServer() *Server {
	packages := []conda.Package{
		{Name: "webapp", Version: "1.0"},
		{Name: "flask", Version: "2.0.0"},
		{Name: "werkzeug", Version: "2.0.0"},
	}
	depMap := map[string][]string{
		"webapp": {"flask>=2.0"},
		"flask":  {"werkzeug>=2.0"},
	}
	report := &analysis.Report{
		ID:       uuid.New(),
		Name:     "staging",
		Packages: packages,
		Conflicts: []graph.ConflictRecord{
			{PackageA: "webapp", PackageB: "flask", Description: "werkzeug(>=2.0≠<2.0)"},
		},
		Recommendations: []string{"Consider removing unused package: webapp"},
	}
	return New(report, graph.Build(packages, depMap), log.New(io.Discard))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, testServer().Handler(), "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q, want an ok status", rec.Body.String())
	}
}

func TestReportEndpoint(t *testing.T) {
	rec := get(t, testServer().Handler(), "/api/report")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var report analysis.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.Name != "staging" || len(report.Packages) != 3 {
		t.Errorf("got report %q with %d packages, want staging with 3", report.Name, len(report.Packages))
	}
}

func TestGraphEndpoint(t *testing.T) {
	rec := get(t, testServer().Handler(), "/api/graph")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp graphResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding graph: %v", err)
	}
	if len(resp.Nodes) != 3 {
		t.Errorf("got %d nodes, want 3", len(resp.Nodes))
	}
	if len(resp.Conflicts) != 1 {
		t.Errorf("got %d conflicts, want 1", len(resp.Conflicts))
	}

	kinds := make(map[string]string)
	for _, e := range resp.Edges {
		kinds[e.From+"->"+e.To] = e.Kind
	}
	if kinds["webapp->flask"] != "direct" {
		t.Errorf("webapp->flask kind = %q, want direct", kinds["webapp->flask"])
	}
	if kinds["webapp->werkzeug"] != "transitive" {
		t.Errorf("webapp->werkzeug kind = %q, want transitive", kinds["webapp->werkzeug"])
	}
}

func TestLayoutEndpoint(t *testing.T) {
	rec := get(t, testServer().Handler(), "/api/layout")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var layout graph.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decoding layout: %v", err)
	}
	if len(layout.Positions) != 3 {
		t.Errorf("got %d positions, want 3", len(layout.Positions))
	}
	if layout.MaxWidth <= 0 || layout.MaxHeight <= 0 {
		t.Errorf("layout bounds %dx%d, want positive", layout.MaxWidth, layout.MaxHeight)
	}
}

func TestIndexPage(t *testing.T) {
	rec := get(t, testServer().Handler(), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"Environment: staging",
		`<img src="/graph.svg"`,
		"Consider removing unused package: webapp",
		`<a href="/api/report">`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in index page", want)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, testServer().Handler(), "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	srv := testServer()
	srv.logger = log.New(&buf)

	get(t, srv.Handler(), "/healthz")

	logged := buf.String()
	if !strings.Contains(logged, "/healthz") || !strings.Contains(logged, "200") {
		t.Errorf("request log = %q, want method, path and status", logged)
	}
}
