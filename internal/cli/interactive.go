package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newInteractiveCmd creates the interactive command.
func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive <env-file>",
		Short: "Browse the analysis in a terminal UI",
		Long: `Browse the analysis in a full-screen terminal UI.

Tabs cover the summary, the package list with per-package details, the
dependency graph, and the recommendations. On the graph, arrow keys pan
and Home resets the view; pressing enter on a package jumps to its spot
in the graph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runInteractive(c.Context(), cfg, args[0])
		},
	}
}

// runInteractive analyzes the environment and hands the result to the
// full-screen browser.
func runInteractive(ctx context.Context, cfg Config, envFile string) error {
	runner := newRunner(ctx, cfg)
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Analyzing %s", envFile))
	spinner.Start()

	online := !cfg.Offline
	result, err := runner.Execute(ctx, envFile, pipelineOptions(cfg, online, online, false))
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Analysis failed: %v", err))
		return err
	}
	spinner.Stop()

	program := tea.NewProgram(NewAnalysisModel(result), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
