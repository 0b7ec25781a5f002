package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/condagraph/condagraph/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string // listen address
}

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve <env-file>",
		Short: "Serve the analysis over HTTP",
		Long: `Analyze an environment and expose the result over HTTP.

Endpoints:
  /              HTML overview
  /api/report    Full report as JSON
  /api/graph     Graph nodes and edges as JSON
  /api/layout    Grid layout positions as JSON
  /graph.svg     Rendered dependency graph
  /healthz       Liveness probe

The server shuts down cleanly on interrupt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServe(c.Context(), cfg, &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}

// runServe analyzes the environment once and serves the snapshot.
func runServe(ctx context.Context, cfg Config, opts *serveOpts, envFile string) error {
	logger := loggerFromContext(ctx)
	runner := newRunner(ctx, cfg)
	defer runner.Close()

	logger.Infof("Analyzing %s", envFile)
	online := !cfg.Offline
	result, err := runner.Execute(ctx, envFile, pipelineOptions(cfg, online, online, false))
	if err != nil {
		return err
	}

	printInfo("Serving %s at %s", result.Report.Name, StyleLink.Render(serveURL(opts.addr)))
	srv := server.New(result.Report, result.Graph, logger)
	return srv.Run(ctx, opts.addr)
}

// serveURL turns a listen address into something clickable. Bare-port
// addresses like ":8080" resolve to localhost.
func serveURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
