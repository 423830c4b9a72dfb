package cli

import (
	"github.com/spf13/cobra"

	"github.com/panforge/panlayout/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool
	var rateLimit float64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The server uses the cache, store and preset settings from the config file.
Set PANLAYOUT_REDIS_ADDR or PANLAYOUT_MONGO_URI to share a Redis cache or a
MongoDB instrument store between replicas.`,
		Example: `  panlayout serve --addr :9000
  curl -s 'localhost:9000/v1/parse' -d '{"layout":"D/-A-Bb-C-D-E-F-G-A"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("rate-limit") {
				rateLimit = cfg.Server.RateLimit
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cat, err := c.loadCatalog()
			if err != nil {
				return err
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv, err := server.New(server.Options{
				Runner:    runner,
				Catalog:   cat,
				Store:     st,
				Logger:    c.Logger,
				Defaults:  cfg.Options(""),
				RateLimit: rateLimit,
				Burst:     cfg.Server.Burst,
			})
			if err != nil {
				return err
			}

			printSuccess("Serving %d presets on %s", cat.Len(), StyleLink.Render(displayAddr(addr)))
			printDetail("cache: %s · store: %s", cacheLabel(cfg.Cache.Backend, noCache), cfg.Store.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "requests per second per client, 0 disables")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// displayAddr turns a listen address into a URL a user can open.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func cacheLabel(backend string, noCache bool) string {
	if noCache {
		return "none"
	}
	return backend
}
