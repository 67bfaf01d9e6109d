package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/splotbio/splot/internal/server"
	"github.com/splotbio/splot/pkg/observability"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Endpoints:
  GET  /healthz        liveness probe
  GET  /v1/densities   supported print densities
  POST /v1/layout      lay out sequences sent as JSON

Requests are independent; nothing is stored between them. The server stops
gracefully on SIGINT or SIGTERM.`,
		Example: `  splot serve --addr :8080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("addr") {
				cfg.Server.Addr = addr
			}
			if f.Changed("max-body") {
				cfg.Server.MaxBodyBytes = maxBody
			}

			logger := commandLogger(cmd)
			observability.SetHTTPHooks(observability.NewLogHooks(logger))

			srv := server.New(logger,
				server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
				server.WithTimeout(timeout))
			printer{w: cmd.OutOrStdout()}.info("Serving on %s", cfg.Server.Addr)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultRequestTimeout, "maximum time per request")

	return cmd
}
