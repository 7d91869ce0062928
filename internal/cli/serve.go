package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdraw/internal/server"
	"github.com/matzehuels/graphdraw/pkg/observability"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve starts an HTTP server exposing the layout pipeline.

Endpoints:
  GET  /healthz     liveness probe
  GET  /version     build information
  POST /v1/layout   lay out the graph in the request body

Example:
  curl --data-binary @graph.txt 'localhost:8080/v1/layout?seed=42&format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			observability.SetHTTPHooks(observability.NewLogHooks(logger))

			ch, err := c.openCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := server.NewRunner(ch, logger)
			runner.TTL = c.cfg.Cache.TTL
			defer runner.Close()

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))
			return server.New(runner, cfg, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+c.cfg.Server.Addr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
