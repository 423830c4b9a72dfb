package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/panforge/panlayout/pkg/errors"
	"github.com/panforge/panlayout/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// Zero values leave the config file's render defaults in place.
type renderOpts struct {
	output      string  // output file path (or base path for multiple formats); "-" for stdout
	formats     string  // comma-separated output formats
	radius      float64 // shell radius in output units
	style       string  // colour scheme: "light" or "dark"
	naming      string  // label naming: "american" or "french"
	accidentals string  // "auto", "sharp" or "flat"
	title       string  // diagram title, defaults to the preset name
	scale       float64 // PNG resolution multiplier
	samplePath  string  // sample URL prefix written into SVG data attributes
	embedFont   bool    // embed the label font in SVG output
	refresh     bool    // re-render even when cached
}

// apply overlays the flags that were set on opts.
func (r *renderOpts) apply(opts *pipeline.Options) {
	if f := parseFormats(r.formats); len(f) > 0 {
		opts.Formats = f
	}
	if r.radius > 0 {
		opts.ShellRadius = r.radius
	}
	if r.style != "" {
		opts.Style = r.style
	}
	if r.naming != "" {
		opts.Naming = r.naming
	}
	if r.accidentals != "" {
		opts.Accidentals = r.accidentals
	}
	if r.title != "" {
		opts.Title = r.title
	}
	if r.scale > 0 {
		opts.Scale = r.scale
	}
	if r.samplePath != "" {
		opts.SamplePath = r.samplePath
	}
	opts.EmbedFont = r.embedFont
	opts.Refresh = r.refresh
}

// renderCommand creates the render command for writing diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var in inputOpts
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [layout]",
		Short: "Render a layout to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a layout to one or more files.

With a single format, -o names the output file ("-" writes to stdout). With
several formats, -o is a base path and each file gets its format's extension.
Without -o, files are named after the preset or "layout".`,
		Example: `  # SVG of a D Kurd in the current directory
  panlayout render "D/-A-Bb-C-D-E-F-G-A"

  # PNG and PDF of a preset with French labels
  panlayout render --preset la-sirena -f png,pdf --notation french

  # Dark SVG to stdout
  panlayout render --preset hijaz --style dark -o -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, name, err := c.options(args, in)
			if err != nil {
				return err
			}
			ro.apply(&opts)
			return c.runRender(cmd.Context(), opts, name, ro.output, in.noCache)
		},
	}

	in.register(c, cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg, png, pdf, json, dot (comma-separated)")
	cmd.Flags().Float64Var(&ro.radius, "radius", 0, "shell radius in output units")
	cmd.Flags().StringVar(&ro.style, "style", "", "colour scheme: light, dark")
	cmd.Flags().StringVar(&ro.naming, "notation", "", "label naming: american, french")
	cmd.Flags().StringVar(&ro.accidentals, "accidentals", "", "accidentals: auto, sharp, flat")
	cmd.Flags().StringVar(&ro.title, "title", "", "diagram title")
	cmd.Flags().Float64Var(&ro.scale, "scale", 0, "PNG resolution multiplier")
	cmd.Flags().StringVar(&ro.samplePath, "sample-path", "", "sample URL prefix for SVG note attributes")
	cmd.Flags().BoolVar(&ro.embedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().BoolVar(&ro.refresh, "refresh", false, "re-render even when cached")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON, pipeline.FormatDOT},
		cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions([]string{"light", "dark"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("notation", cobra.FixedCompletions([]string{"american", "french"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runRender runs the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, name, output string, noCache bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if output == "-" && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "stdout output takes a single format, got %s", strings.Join(opts.Formats, ","))
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	paths := outputPaths(output, name, opts.Formats)
	quiet := output == "-"
	var spinner *Spinner
	if !quiet {
		spinner = newSpinnerWithContext(ctx, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, opts)
	if err == nil {
		if spinner != nil {
			spinner.SetMessage(fmt.Sprintf("Writing %d files...", len(opts.Formats)))
		}
		err = writeOutputs(result.Artifacts, paths)
	}
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}
	if quiet {
		return nil
	}

	printSuccess("Rendered %s", StyleHighlight.Render(opts.Layout))
	printStats(result.Stats.NoteCount, result.Stats.SkipCount, result.UseFlats, result.CacheInfo.RenderHit)
	for _, s := range result.Layout.Skipped {
		printWarning("Skipped %q at position %d: %s", s.Token, s.Position, s.Reason)
	}
	for _, format := range opts.Formats {
		printFile(fmt.Sprintf("%s %s", paths[format], StyleDim.Render("("+humanize.Bytes(uint64(len(result.Artifacts[format])))+")")))
	}
	return nil
}

// outputPaths maps each format to the file it is written to.
func outputPaths(output, name string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, name)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output flag and a default name.
// If output is empty, name is used. If output ends in a format extension
// (.svg, .pdf, etc.), the extension is stripped.
func basePath(output, name string) string {
	if output == "" {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutputs writes each artifact to its path.
func writeOutputs(artifacts map[string][]byte, paths map[string]string) error {
	for format, path := range paths {
		if err := writeOutput(path, artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// openOutput opens path for writing; "-" means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
