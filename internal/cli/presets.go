package cli

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// presetsCommand creates the presets command and its subcommands.
func (c *CLI) presetsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "presets",
		Aliases: []string{"preset"},
		Short:   "List scale presets",
		Long: `List scale presets.

The built-in catalog can be extended with a TOML file named by the "presets"
key of the config file. Entries with an existing id replace the built-in one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog()
			if err != nil {
				return err
			}
			list := cat.List()
			if asJSON {
				return printJSON(list)
			}

			rows := make([][]string, len(list))
			for i, p := range list {
				rows[i] = []string{p.ID, p.Name, p.Mode, p.Layout}
			}
			printTable([]string{"ID", "Name", "Mode", "Layout"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print presets as JSON")

	cmd.AddCommand(c.presetsShowCommand())
	cmd.AddCommand(c.presetsPickCommand())

	return cmd
}

// presetsShowCommand creates the "presets show" subcommand.
func (c *CLI) presetsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one preset",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			cat, err := c.loadCatalog()
			if err != nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return cat.IDs(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog()
			if err != nil {
				return err
			}
			p, err := cat.Get(args[0])
			if err != nil {
				return err
			}
			printKeyValue("ID", p.ID)
			printKeyValue("Name", p.Name)
			printKeyValue("Mode", p.Mode)
			printKeyValue("Layout", p.Layout)
			printKeyValue("Notes", noteCount(p.Layout))
			if p.Description != "" {
				printKeyValue("About", p.Description)
			}
			printNewline()
			printNextStep("Render it", appName+" render --preset "+p.ID)
			return nil
		},
	}
}

// presetsPickCommand creates the "presets pick" subcommand, an interactive picker.
func (c *CLI) presetsPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a preset interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog()
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewPresetListModel(cat.List()), tea.WithContext(cmd.Context()))
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			fm, ok := finalModel.(PresetListModel)
			if !ok || fm.Selected == nil {
				printDetail("No selection made")
				return nil
			}

			printSuccess("Selected %s", StyleHighlight.Render(fm.Selected.Name))
			printKeyValue("Layout", fm.Selected.Layout)
			printNextStep("Render it", appName+" render --preset "+fm.Selected.ID)
			return nil
		},
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
