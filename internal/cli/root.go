package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panforge/panlayout/pkg/buildinfo"
	"github.com/panforge/panlayout/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The --config flag selects a TOML configuration file; without it the XDG
// location is tried and built-in defaults apply when nothing is found. The
// logger is attached to every command's context so helpers can reach it
// through loggerFromContext. At debug level every pipeline, cache and HTTP
// event is logged as well.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "panlayout draws handpan note layouts",
		Long: `panlayout parses handpan scale notation such as "D/-A-Bb-C-D-E-F-G-A"
and draws the notes the way they sit on the instrument: the ding in the
centre, tone fields on a ring around it, mutants and bottoms outside.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.Logger.GetLevel() <= log.DebugLevel {
				c.traceHooks()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/panlayout/config.toml)")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.spellCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.instrumentsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// traceHooks routes pipeline, cache and HTTP events to the debug log.
func (c *CLI) traceHooks() {
	h := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
