package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/internal/config"
	"github.com/matzehuels/blockfill/internal/server"
	"github.com/matzehuels/blockfill/pkg/observability"
	"github.com/matzehuels/blockfill/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		f        flagValues
		addr     string
		maxCells int
		noCache  bool
		noStore  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

Endpoints generate tilings as JSON, render them, stream blocks over a
websocket and manage stored runs. Grid and generation flags set the
defaults for requests that omit a parameter.

The run routes use the store configured in [store]; pass --no-store to
disable them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), c.options(cmd, &f), addr, maxCells, noCache, noStore)
		},
	}

	f.bindGenerateFlags(cmd)
	f.bindRenderFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&maxCells, "max-cells", server.DefaultMaxCells, "largest grid a request may ask for (0 = unlimited)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable the run routes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, defaults pipeline.Options, addr string, maxCells int, noCache, noStore bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	observability.NewLogHooks(logger).Register()
	defer observability.Reset()

	defaults.Formats = nil
	defaults.Logger = nil
	opts := []server.Option{
		server.WithLogger(logger),
		server.WithDefaults(defaults),
		server.WithMaxCells(maxCells),
	}
	if !noStore && c.cfg.Store.Driver != config.StoreNone {
		s, err := c.openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		opts = append(opts, server.WithStore(s))
		logger.Info("run store enabled", "driver", c.cfg.Store.Driver)
	}

	printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(addr)))
	return server.New(runner, opts...).ListenAndServe(ctx, addr)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
