package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/export"
	"github.com/condagraph/condagraph/pkg/observability"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output string // output file path (stdout if empty)
	format string // report format
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	opts := exportOpts{format: export.FormatText}

	cmd := &cobra.Command{
		Use:   "export <env-file>",
		Short: "Export an analysis report",
		Long: `Export an analysis report in a machine- or human-readable format.

The analysis runs on local metadata only, so exports work offline and give
the same result on every run.

Examples:
  condagraph export environment.yml --format json -o report.json
  condagraph export environment.yml --format markdown > REPORT.md
  condagraph export environment.yml --format csv -o packages.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runExport(c.Context(), cfg, &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "report format (text|json|markdown|html|csv)")

	return cmd
}

// runExport analyzes the environment shallowly and writes the report.
func runExport(ctx context.Context, cfg Config, opts *exportOpts, envFile string) error {
	format := export.Normalize(opts.format)
	if err := export.ValidateReportFormat(format); err != nil {
		return err
	}

	runner := newRunner(ctx, cfg)
	defer runner.Close()

	result, err := runner.Execute(ctx, envFile, pipelineOptions(cfg, false, false, false))
	if err != nil {
		return err
	}

	if err := writeReport(ctx, result.Report, opts.output, format); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Exported %s report", format)
		printFile(opts.output)
	}
	return nil
}

// writeReport writes the report to path (stdout if empty) in the given
// format, firing the export observability hooks around the write.
func writeReport(ctx context.Context, r *analysis.Report, path, format string) error {
	hooks := observability.Analysis()
	hooks.OnExportStart(ctx, format)
	start := time.Now()

	err := func() error {
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		defer out.Close()
		return export.WriteReport(out, r, format)
	}()

	hooks.OnExportComplete(ctx, format, time.Since(start), err)
	return err
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
