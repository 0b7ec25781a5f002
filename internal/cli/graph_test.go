package cli

import (
	"testing"

	"github.com/condagraph/condagraph/pkg/export"
)

func TestGraphOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		format string
		want   string
	}{
		{"explicit path wins", "deps.svg", export.FormatSVG, "deps.svg"},
		{"default dot", "", export.FormatDOT, "dependency_graph.dot"},
		{"default png", "", export.FormatPNG, "dependency_graph.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := graphOutputPath(tt.output, tt.format); got != tt.want {
				t.Errorf("graphOutputPath(%q, %q) = %q, want %q", tt.output, tt.format, got, tt.want)
			}
		})
	}
}
