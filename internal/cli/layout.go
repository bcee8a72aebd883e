package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/pipeline"
)

// layoutCommand creates the layout command for packing a scene into a matrix.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Pack a scene into a matrix and write the layout",
		Long: `Pack a scene into a matrix and write the layout.

The layout command loads a .json or .toml scene, runs its steps, packs its
shapes into matrix layers, and writes the result as <scene>.layout.json. The
layout can be browsed with 'view' or rendered with 'render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <scene>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.SkipSteps, "skip-steps", false, "do not run the scene's steps")

	return cmd
}

// runLayout loads the scene, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "initialize runner")
	}
	defer runner.Close()

	opts.Scene = input
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	sc, hash, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, sc, hash, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d shapes into %d layers", sc.Len(), l.Rows))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + pipeline.Extension(pipeline.FormatJSON)
	}
	if err := layout.WriteFile(outputPath, l); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(sc.Len(), l.Rows, l.Columns, cacheHit)
	printNewline()
	printNextStep("Browse", "shapestack view "+outputPath)

	return nil
}
