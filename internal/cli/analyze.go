package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/export"
	"github.com/condagraph/condagraph/pkg/history"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	deep     bool   // resolve through the network registries
	enrich   bool   // fetch latest versions and sizes
	noEnrich bool   // force enrichment off
	refresh  bool   // bypass cached registry responses
	save     bool   // store the report as a history snapshot
	output   string // output file path (stdout if empty)
	format   string // report format
}

// newAnalyzeCmd creates the analyze command.
//
// Default options:
//   - deep: false (local metadata and the static table only)
//   - enrich: on, unless the config marks the host offline
//   - format: text
func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOpts{format: export.FormatText}

	cmd := &cobra.Command{
		Use:   "analyze <env-file>",
		Short: "Analyze a conda environment file",
		Long: `Analyze a conda environment file.

The command parses the environment, resolves each package's dependencies,
and reports the dependency graph together with conflicts, recommendations,
and outdated packages.

Examples:
  condagraph analyze environment.yml                        # Quick local analysis
  condagraph analyze environment.yml --deep                 # Resolve through the registries
  condagraph analyze environment.yml --save                 # Keep a history snapshot
  condagraph analyze environment.yml -o report.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			enrich := enrichEnabled(cfg, opts.enrich, opts.noEnrich, c.Flags().Changed("enrich"))
			return runAnalyze(c.Context(), cfg, &opts, enrich, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.deep, "deep", false, "resolve dependencies through the package registries")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", false, "fetch latest versions and sizes from the registries")
	cmd.Flags().BoolVar(&opts.noEnrich, "no-enrich", false, "disable enrichment")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the report as a history snapshot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "report format (text|json|markdown|html|csv)")

	return cmd
}

// runAnalyze executes the pipeline and writes the report. Styled stats only
// go to the terminal when the report itself went to a file, keeping stdout
// clean for pipes.
func runAnalyze(ctx context.Context, cfg Config, opts *analyzeOpts, enrich bool, envFile string) error {
	format := export.Normalize(opts.format)
	if err := export.ValidateReportFormat(format); err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	runner := newRunner(ctx, cfg)
	defer runner.Close()

	logger.Infof("Analyzing %s", envFile)
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, envFile, pipelineOptions(cfg, opts.deep, enrich, opts.refresh))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d packages with %d dependencies",
		result.Stats.PackageCount, result.Stats.EdgeCount))

	if err := writeReport(ctx, result.Report, opts.output, format); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Analysis complete")
		printFile(opts.output)
		printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ConflictCount)
	}

	if opts.save {
		if err := saveSnapshot(ctx, cfg, result.Report); err != nil {
			return err
		}
	}

	if opts.output != "" {
		printNextStep("Explore interactively", fmt.Sprintf("%s interactive %s", appName, envFile))
	}
	return nil
}

// saveSnapshot stores the report in the configured history store.
func saveSnapshot(ctx context.Context, cfg Config, report *analysis.Report) error {
	store, err := newHistoryStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close(ctx)

	if err := store.Save(ctx, history.NewSnapshot(report)); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	printSuccess("Saved snapshot %s", report.ID)
	return nil
}
