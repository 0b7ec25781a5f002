package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newRecommendCmd creates the recommend command.
func newRecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <env-file>",
		Short: "Print improvement recommendations",
		Long: `Print recommendations for improving the environment.

Recommendations cover unpinned and outdated packages, oversized installs,
and detected conflicts. Online runs enrich packages with registry data for
more complete suggestions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runRecommend(c.Context(), cfg, args[0])
		},
	}
}

// runRecommend analyzes the environment and prints its recommendations.
func runRecommend(ctx context.Context, cfg Config, envFile string) error {
	runner := newRunner(ctx, cfg)
	defer runner.Close()

	online := !cfg.Offline
	result, err := runner.Execute(ctx, envFile, pipelineOptions(cfg, online, online, false))
	if err != nil {
		return err
	}

	recs := result.Report.Recommendations
	if len(recs) == 0 {
		fmt.Println("No recommendations available for this environment.")
		return nil
	}

	fmt.Printf("Recommendations for environment: %q\n", envFile)
	for i, rec := range recs {
		fmt.Printf("%d. %s\n", i+1, rec)
	}
	return nil
}
