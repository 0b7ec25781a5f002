package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/condagraph/condagraph/pkg/export"
	"github.com/condagraph/condagraph/pkg/graph"
	"github.com/condagraph/condagraph/pkg/observability"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output    string // output file path (default: dependency_graph.<format>)
	format    string // dot, svg, or png
	conflicts bool   // highlight conflicting packages
	refresh   bool   // bypass cached registry responses
}

// newGraphCmd creates the graph command.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: export.FormatDOT}

	cmd := &cobra.Command{
		Use:   "graph <env-file>",
		Short: "Render the dependency graph",
		Long: `Render the environment's dependency graph.

DOT output can be piped into Graphviz tooling; SVG and PNG are rendered
directly through the embedded engine.

Examples:
  condagraph graph environment.yml                    # DOT to dependency_graph.dot
  condagraph graph environment.yml --format svg       # Render an SVG
  condagraph graph environment.yml --conflicts        # Highlight conflicting packages
  condagraph graph environment.yml -o deps.png --format png`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runGraph(c.Context(), cfg, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: dependency_graph.<format>)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "graph format (dot|svg|png)")
	cmd.Flags().BoolVar(&opts.conflicts, "conflicts", false, "highlight conflicting packages")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")

	return cmd
}

// runGraph analyzes the environment and writes the graph artifact.
func runGraph(ctx context.Context, cfg Config, opts *graphOpts, envFile string) error {
	format := export.Normalize(opts.format)
	if err := export.ValidateGraphFormat(format); err != nil {
		return err
	}

	runner := newRunner(ctx, cfg)
	defer runner.Close()

	result, err := runner.Execute(ctx, envFile, pipelineOptions(cfg, !cfg.Offline, false, opts.refresh))
	if err != nil {
		return err
	}

	var conflicts []graph.ConflictRecord
	if opts.conflicts {
		conflicts = result.Conflicts
	}

	hooks := observability.Analysis()
	hooks.OnExportStart(ctx, format)
	start := time.Now()

	path := graphOutputPath(opts.output, format)
	err = writeGraphArtifact(ctx, export.ToDOT(result.Graph, conflicts), path, format)

	hooks.OnExportComplete(ctx, format, time.Since(start), err)
	if err != nil {
		return err
	}

	printSuccess("Dependency graph saved to: %s", path)
	printStats(result.Graph.NodeCount(), result.Graph.EdgeCount(), len(result.Conflicts))
	return nil
}

// writeGraphArtifact writes DOT as-is or renders it to SVG or PNG first.
// Rendering shows a spinner since large graphs take a moment.
func writeGraphArtifact(ctx context.Context, dot, path, format string) error {
	data := []byte(dot)
	if format != export.FormatDOT {
		spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s", format))
		spinner.Start()

		var err error
		if format == export.FormatPNG {
			data, err = export.RenderPNG(ctx, dot)
		} else {
			data, err = export.RenderSVG(ctx, dot)
		}
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Rendering failed: %v", err))
			return err
		}
		spinner.Stop()
	}
	return os.WriteFile(path, data, 0644)
}

// graphOutputPath returns the output path: the explicit one when set,
// otherwise dependency_graph.<format> in the working directory.
func graphOutputPath(output, format string) string {
	if output != "" {
		return output
	}
	return "dependency_graph." + format
}
