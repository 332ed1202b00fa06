package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrnoize/pkg/config"
	"github.com/matzehuels/qrnoize/pkg/server"
)

// serveCommand creates the serve command that exposes stacks over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		seed    uint64
		quality int
		legacy  bool
		eof     bool
	)

	cmd := &cobra.Command{
		Use:   "serve <config>",
		Short: "Serve the stacks of a config file over HTTP",
		Long: `Serve the stacks of a config file over HTTP.

  GET  /healthz                 liveness check
  GET  /v1/stacks               list stacks as JSON
  POST /v1/stacks/{name}/apply  JPEG body in, distorted JPEG out`,
		Example: `  qrnoize serve noise.cfg --addr :9000
  curl --data-binary @scan.jpg localhost:9000/v1/stacks/lines/apply > out.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			settings, err := c.loadSettings(logger)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			applyString(fs, "addr", &addr, settings.Addr)
			applyUint64(fs, "seed", &seed, settings.Seed)
			applyInt(fs, "quality", &quality, settings.JPEGQuality)
			applyBool(fs, "legacy-limits", &legacy, settings.LegacyLimits)
			applyBool(fs, "flush-eof", &eof, settings.FlushAtEOF)

			tbl, err := config.ParseFile(args[0], config.Options{LegacyLimits: legacy, FlushAtEOF: eof})
			if err != nil {
				return err
			}
			printWarnings(tbl.Warnings)

			srv, err := server.New(server.Options{
				Table:       tbl,
				Seed:        seed,
				JPEGQuality: quality,
				Logger:      logger,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible noise (0 = random)")
	cmd.Flags().IntVarP(&quality, "quality", "q", 0, "JPEG quality of responses (1-100)")
	cmd.Flags().BoolVar(&legacy, "legacy-limits", false, "read x_lim from the y_lim token and leave y_lim unbounded")
	cmd.Flags().BoolVar(&eof, "flush-eof", false, "serve layers left after the last blank line as a stack")
	return cmd
}
