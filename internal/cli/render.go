package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/pipeline"
)

// slowFormats shell out or run Graphviz and get a spinner.
var slowFormats = []string{pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatGraphviz}

// renderCommand creates the render command for generating output files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene's matrix to SVG, DOT, text, JSON, PNG, or PDF",
		Long: `Render a scene's matrix to SVG, DOT, text, JSON, PNG, or PDF.

Formats:
  svg        one band per layer with every shape drawn in place
  graphviz   the DOT graph laid out by Graphviz, as SVG
  dot        Graphviz source, one rank per layer
  txt        "Layer i : ..." lines
  json       the layout snapshot
  png, pdf   the svg converted with rsvg-convert (librsvg)

Each format is written to <base><ext>, where base is --output or the scene
path without its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.Formats = formats
			return c.runRender(cmd.Context(), args[0], output, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", pipeline.FormatSVG, "output format(s): svg, graphviz, dot, txt, json, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().BoolVar(&opts.SkipSteps, "skip-steps", false, "do not run the scene's steps")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "svg pixels per unit")
	cmd.Flags().BoolVar(&opts.NoFrames, "no-frames", false, "omit frame rectangles (svg)")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit shape labels (svg)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "initialize runner")
	}
	defer runner.Close()

	opts.Scene = input
	opts.Logger = c.Logger

	var sp *spinner
	if slices.ContainsFunc(opts.Formats, func(f string) bool { return slices.Contains(slowFormats, f) }) {
		sp = newSpinner(ctx, "Rendering...")
		sp.Start()
	}
	result, err := runner.Execute(ctx, opts)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(basePath(output, input), opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", result.Scene.Name)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.ShapeCount, result.Stats.Rows, result.Stats.Columns, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes one file per format, in format order, and returns
// the paths written.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s output produced", format)
		}
		path := base + pipeline.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
