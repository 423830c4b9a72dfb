package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/store"
)

// instrumentsCommand creates the instruments command and its subcommands.
func (c *CLI) instrumentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instruments",
		Aliases: []string{"instrument", "inst"},
		Short:   "Save and recall named layouts",
		Long: `Save and recall named layouts.

Instruments are stored in the backend chosen by the [store] section of the
config file: JSON files under the user config directory by default, or a
MongoDB collection.`,
	}

	cmd.AddCommand(c.instrumentsSaveCommand())
	cmd.AddCommand(c.instrumentsListCommand())
	cmd.AddCommand(c.instrumentsShowCommand())
	cmd.AddCommand(c.instrumentsDeleteCommand())

	return cmd
}

// instrumentsSaveCommand creates the "instruments save" subcommand.
func (c *CLI) instrumentsSaveCommand() *cobra.Command {
	var in inputOpts

	cmd := &cobra.Command{
		Use:   "save <name> [layout]",
		Short: "Save a layout under a name",
		Example: `  panlayout instruments save "My Kurd" "D/-A-Bb-C-D-E-F-G-A"
  panlayout instruments save "Workshop Hijaz" --preset hijaz`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := c.options(args[1:], in)
			if err != nil {
				return err
			}
			inst, err := store.NewInstrument(args[0], opts.Layout, opts.Mode)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Save(ctx, inst); err != nil {
				return err
			}
			printSuccess("Saved %s", StyleHighlight.Render(inst.Name))
			printDetail("ID: %s", inst.ID)
			printNextStep("Render it", appName+" instruments show "+inst.ID)
			return nil
		},
	}
	in.register(c, cmd)

	return cmd
}

// instrumentsListCommand creates the "instruments list" subcommand.
func (c *CLI) instrumentsListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved instruments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.List(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(list)
			}
			if len(list) == 0 {
				printInfo("No saved instruments")
				printNextStep("Save one", appName+` instruments save "My Kurd" --preset kurd-9`)
				return nil
			}

			rows := make([][]string, len(list))
			for i, inst := range list {
				rows[i] = []string{
					inst.ID,
					inst.Name,
					inst.Mode,
					strconv.Itoa(inst.Notes),
					formatRelativeTime(inst.CreatedAt),
				}
			}
			printTable([]string{"ID", "Name", "Mode", "Notes", "Saved"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print instruments as JSON")

	return cmd
}

// instrumentsShowCommand creates the "instruments show" subcommand.
func (c *CLI) instrumentsShowCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved instrument and its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			inst, err := s.Get(ctx, args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			printKeyValue("Name", inst.Name)
			printKeyValue("Saved", inst.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
			printNewline()

			opts := cfg.Options(inst.Layout)
			opts.Mode = inst.Mode
			return c.runParse(ctx, opts, noCache, false)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// instrumentsDeleteCommand creates the "instruments delete" subcommand.
func (c *CLI) instrumentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved instrument",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			inst, err := s.Get(ctx, args[0])
			if errors.Is(err, errors.ErrCodeNotFound) {
				printWarning("No instrument with id %s", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			if err := s.Delete(ctx, inst.ID); err != nil {
				return err
			}
			printSuccess("Deleted %s", inst.Name)
			return nil
		},
	}
}
