package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/condagraph/condagraph/pkg/pipeline"
	"github.com/condagraph/condagraph/pkg/vuln"
)

// vulnerabilitiesOpts holds the command-line flags for the vulnerabilities command.
type vulnerabilitiesOpts struct {
	offline bool // skip the advisory network sources
	refresh bool // bypass cached advisories
}

// newVulnerabilitiesCmd creates the vulnerabilities command.
func newVulnerabilitiesCmd() *cobra.Command {
	opts := vulnerabilitiesOpts{}

	cmd := &cobra.Command{
		Use:     "vulnerabilities <env-file>",
		Aliases: []string{"vulns"},
		Short:   "Scan packages for known vulnerabilities",
		Long: `Scan the environment's packages against the advisory sources.

Online scans consult OSV and the Safety DB. Offline scans fall back to the
built-in advisory table and a version-gap heuristic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			offline := cfg.Offline
			if c.Flags().Changed("offline") {
				offline = opts.offline
			}
			return runVulnerabilities(c.Context(), cfg, &opts, offline, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.offline, "offline", false, "scan without network access")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")

	return cmd
}

// runVulnerabilities analyzes the environment and scans every package.
// Online runs enrich packages first so the version-gap heuristic sees the
// latest published versions.
func runVulnerabilities(ctx context.Context, cfg Config, opts *vulnerabilitiesOpts, offline bool, envFile string) error {
	logger := loggerFromContext(ctx)
	backend := newCacheBackend(ctx, cfg)
	defer backend.Close()

	runner := pipeline.NewRunner(backend, logger)
	result, err := runner.Execute(ctx, envFile, pipelineOptions(cfg, false, !offline, opts.refresh))
	if err != nil {
		return err
	}

	scanner := vuln.NewScanner(backend, vuln.Options{
		Refresh: opts.refresh,
		Offline: offline,
		Logger:  func(msg string, args ...any) { logger.Warnf(msg, args...) },
	})

	logger.Infof("Scanning %d packages (%s)", len(result.Packages), strings.Join(scanner.Sources(), ", "))
	prog := newProgress(logger)
	findings := scanner.Scan(ctx, result.Packages)
	prog.done(fmt.Sprintf("Scanned %d packages", len(result.Packages)))

	if len(findings) == 0 {
		fmt.Println("No known vulnerabilities found in the environment.")
		return nil
	}

	fmt.Printf("Found %d potential security vulnerabilities:\n", len(findings))
	for i, f := range findings {
		fmt.Printf("%d. %s\n", i+1, f.Display())
	}
	return nil
}
