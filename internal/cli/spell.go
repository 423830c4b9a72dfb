package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/panforge/panlayout/pkg/pitch"
	"github.com/panforge/panlayout/pkg/spell"
)

// spellCommand creates the spell command, which reports the accidental
// choice for a key.
func (c *CLI) spellCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "spell <root> [mode]",
		Short: "Show whether a key is spelled with sharps or flats",
		Long: `Show whether a key is spelled with sharps or flats.

The root may be any pitch name, American ("Bb", "C#") or French ("Sib",
"Do#"). The mode defaults to aeolian. With --all, every mode is listed.`,
		Example: `  panlayout spell D
  panlayout spell F# "phrygian dominant"
  panlayout spell Sol --all`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := pitch.Parse(args[0])
			if err != nil {
				return err
			}

			if all {
				printModes(root)
				return nil
			}

			modeName := ""
			if len(args) == 2 {
				modeName = args[1]
			}
			mode, err := spell.ParseMode(modeName)
			if err != nil {
				return err
			}

			flats := spell.ShouldUseFlats(root, mode)
			printKeyValue("Root", root.Name(flats))
			printKeyValue("Mode", mode.String())
			printKeyValue("Accidentals", accidentalName(flats))
			printKeyValue("Signature", signature(spell.KeySignature(root, mode)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every mode for the root")

	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 1 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		modes := spell.Modes()
		out := make([]string, len(modes))
		for i, m := range modes {
			out[i] = m.String()
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}

	return cmd
}

// printModes prints one row per mode for root.
func printModes(root pitch.PitchClass) {
	modes := spell.Modes()
	rows := make([][]string, len(modes))
	for i, m := range modes {
		flats := spell.ShouldUseFlats(root, m)
		rows[i] = []string{
			root.Name(flats),
			m.String(),
			accidentalName(flats),
			signature(spell.KeySignature(root, m)),
		}
	}
	printTable([]string{"Root", "Mode", "Accidentals", "Signature"}, rows)
}

func accidentalName(flats bool) string {
	if flats {
		return "flats"
	}
	return "sharps"
}

// signature formats a key signature count: positive sharps, negative flats.
func signature(n int) string {
	switch {
	case n > 0:
		return strconv.Itoa(n) + "♯"
	case n < 0:
		return fmt.Sprintf("%d♭", -n)
	}
	return "none"
}
