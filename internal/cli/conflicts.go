package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newConflictsCmd creates the conflicts command.
func newConflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts <env-file>",
		Short: "List version-constraint conflicts",
		Long: `List pairwise version-constraint conflicts between packages.

A conflict is reported when two packages constrain a shared dependency in
ways no single version can satisfy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runConflicts(c.Context(), cfg, args[0])
		},
	}
}

// runConflicts analyzes the environment and prints the detected conflicts.
func runConflicts(ctx context.Context, cfg Config, envFile string) error {
	runner := newRunner(ctx, cfg)
	defer runner.Close()

	result, err := runner.Execute(ctx, envFile, pipelineOptions(cfg, !cfg.Offline, false, false))
	if err != nil {
		return err
	}

	if len(result.Conflicts) == 0 {
		printSuccess("No conflicts detected")
		return nil
	}

	printWarning("Found %d potential conflicts:", len(result.Conflicts))
	for i, c := range result.Conflicts {
		fmt.Printf("%d. %s and %s: %s\n", i+1, c.PackageA, c.PackageB, c.Description)
	}
	return nil
}
