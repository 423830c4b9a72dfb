package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/pipeline"
)

// inputOpts holds the flags shared by every command that takes a layout.
type inputOpts struct {
	preset  string // preset id used instead of a positional layout
	mode    string // spelling mode, overrides the preset's
	octave  int    // octave for notes written without one
	noCache bool   // bypass the render cache
}

// register adds the shared flags to cmd.
func (o *inputOpts) register(c *CLI, cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.preset, "preset", "p", "", "use a preset layout instead of an argument")
	cmd.Flags().StringVarP(&o.mode, "mode", "m", "", "mode used for spelling (default from preset or config)")
	cmd.Flags().IntVar(&o.octave, "octave", 0, "octave for notes written without one (default 3)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		cat, err := c.loadCatalog()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return cat.IDs(), cobra.ShellCompDirectiveNoFileComp
	})
}

// options builds pipeline options from a positional layout or a preset,
// seeded from the config file. It also returns a short name used for default
// output file names.
func (c *CLI) options(args []string, in inputOpts) (pipeline.Options, string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, "", err
	}

	var opts pipeline.Options
	var name string
	switch {
	case in.preset != "" && len(args) > 0:
		return opts, "", errors.New(errors.ErrCodeInvalidInput, "pass a layout or --preset, not both")
	case in.preset != "":
		cat, err := c.loadCatalog()
		if err != nil {
			return opts, "", err
		}
		p, err := cat.Get(in.preset)
		if err != nil {
			return opts, "", err
		}
		opts = cfg.Options(p.Layout)
		opts.Mode = p.Mode
		opts.Title = p.Name
		name = p.ID
	case len(args) == 1:
		opts = cfg.Options(args[0])
		name = "layout"
	default:
		return opts, "", errors.New(errors.ErrCodeInvalidInput, "a layout argument or --preset is required")
	}

	if in.mode != "" {
		opts.Mode = in.mode
	}
	if in.octave != 0 {
		opts.DefaultOctave = in.octave
	}
	return opts, name, nil
}

// parseCommand creates the parse command for reading notation.
func (c *CLI) parseCommand() *cobra.Command {
	var in inputOpts
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse [layout]",
		Short: "Parse handpan notation and list its notes",
		Long: `Parse handpan notation and list its notes.

Two notations are accepted. The extended form names the ding before a slash
and infers octaves for the notes after it; (X) marks a bottom note and [X] a
mutant:

  D/(F)-A-Bb-C-D-E-F-G-A-[C#]

The simple form lists notes with explicit or default octaves, the first being
the ding. Unreadable notes are skipped with a warning:

  D3 A3 Bb3 C4 D4 E4 F4 G4 A4`,
		Example: `  # List the notes of a D Kurd
  panlayout parse "D/-A-Bb-C-D-E-F-G-A"

  # Spell a layout in dorian
  panlayout parse "E3 B3 C#4 D4 E4 F#4" --mode dorian

  # Print a preset as JSON
  panlayout parse --preset hijaz --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := c.options(args, in)
			if err != nil {
				return err
			}
			return c.runParse(cmd.Context(), opts, in.noCache, asJSON)
		},
	}

	in.register(c, cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed layout as JSON")

	return cmd
}

// runParse parses opts.Layout and prints the notes.
func (c *CLI) runParse(ctx context.Context, opts pipeline.Options, noCache, asJSON bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	placed, cached, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	l := placed.Layout
	prog.done("Parsed", "notes", len(l.Notes), "cached", cached)

	if asJSON {
		return printJSON(l)
	}

	sp := opts.Spelling(l)
	printSuccess("%s %s %s", StyleHighlight.Render(l.Ding().DisplayName(sp)), opts.Mode, StyleDim.Render("("+l.Format.String()+" notation)"))
	printStats(len(l.Notes), len(l.Skipped), sp.UseFlats, cached)
	printNewline()

	rows := make([][]string, len(l.Notes))
	for i, n := range l.Notes {
		rows[i] = []string{
			strconv.Itoa(i),
			roleLabel(n.Role),
			n.DisplayName(sp),
			strconv.Itoa(n.MIDI()),
			n.SampleName(),
		}
	}
	printTable([]string{"#", "Role", "Note", "MIDI", "Sample"}, rows)

	for _, s := range l.Skipped {
		printWarning("Skipped %q at position %d: %s", s.Token, s.Position, s.Reason)
	}
	printKeyValue("Canonical", l.Canonical())
	return nil
}
