package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/condagraph/condagraph/pkg/graph"
)

// ToDOT converts a dependency graph to Graphviz DOT. Declared dependencies
// are drawn as solid edges and synthesized reachability edges as dashed
// grey ones. Nodes named by a conflict record are filled red so constraint
// disagreements stand out in the rendered image.
//
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.DependencyGraph, conflicts []graph.ConflictRecord) string {
	conflicted := make(map[string]bool, 2*len(conflicts))
	for _, c := range conflicts {
		conflicted[c.PackageA] = true
		conflicted[c.PackageB] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph conda_dependencies {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=lightblue];\n")
	buf.WriteString("\n")

	for _, name := range g.Nodes() {
		if conflicted[name] {
			fmt.Fprintf(&buf, "  %q [fillcolor=lightcoral];\n", name)
		} else {
			fmt.Fprintf(&buf, "  %q;\n", name)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Kind == graph.EdgeTransitive {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=grey];\n", g.Name(e.From), g.Name(e.To))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", g.Name(e.From), g.Name(e.To))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz. The viewBox of the
// result is normalized so the image scales cleanly when embedded in HTML.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the viewBox starts at
// the origin and explicit pixel dimensions match it. Graphviz emits point
// units and offset boxes that confuse some browsers when the SVG is inlined.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newTag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newTag))
}
