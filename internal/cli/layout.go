package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/panforge/panlayout/pkg/pipeline"
	"github.com/panforge/panlayout/pkg/render/sink"
)

// layoutCommand creates the layout command, which prints diagram positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var in inputOpts
	var radius float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layout [layout]",
		Short: "Print where each note sits on the diagram",
		Long: `Print where each note sits on the diagram.

Coordinates are relative to the shell centre with +y up. Angles are in
degrees, counter-clockwise from +x. Tone fields climb the shell alternating
right and left, and the highest one sits at the top.`,
		Example: `  panlayout layout "D/-A-Bb-C-D-E-F-G-A"
  panlayout layout --preset kurd-12 --radius 150 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := c.options(args, in)
			if err != nil {
				return err
			}
			if radius > 0 {
				opts.ShellRadius = radius
			}
			return c.runLayout(cmd.Context(), opts, in.noCache, asJSON)
		},
	}

	in.register(c, cmd)
	cmd.Flags().Float64Var(&radius, "radius", 0, "shell radius in output units (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the positioned notes as JSON")

	return cmd
}

// runLayout places the notes and prints their positions.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, noCache, asJSON bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	placed, cached, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	sp := opts.Spelling(placed.Layout)

	if asJSON {
		data, err := sink.RenderJSON(placed.Positioned, opts.SinkOptions(sp)...)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	printSuccess("Placed %d notes on a %s shell", len(placed.Positioned), StyleNumber.Render(fmtCoord(opts.ShellRadius)))
	printStats(len(placed.Layout.Notes), len(placed.Layout.Skipped), sp.UseFlats, cached)
	printNewline()

	rows := make([][]string, len(placed.Positioned))
	for i, p := range placed.Positioned {
		rows[i] = []string{
			strconv.Itoa(i),
			p.DisplayName(sp),
			roleLabel(p.Role),
			fmtCoord(p.X),
			fmtCoord(p.Y),
			fmtCoord(p.Angle),
			fmtCoord(p.Radius),
			fmtCoord(p.Size),
		}
	}
	printTable([]string{"#", "Note", "Role", "X", "Y", "Angle", "Radius", "Size"}, rows)
	return nil
}

// fmtCoord prints a coordinate with one decimal, dropping negative zero.
func fmtCoord(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}
