// Package cli implements the shapestack command-line interface.
//
// # Commands
//
// The main commands are:
//   - inspect: Print areas, frames, and the matrix of a scene
//   - layout: Pack a scene into a matrix and write the layout as JSON
//   - render: Generate SVG, DOT, text, JSON, PNG, or PDF output
//   - view: Browse the matrix layers interactively
//   - demo: Run the built-in demonstration scene
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// also registered as the observability backend, so pipeline stages and cache
// lookups show up at debug level.
package cli

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapestack/internal/config"
	"github.com/matzehuels/shapestack/pkg/buildinfo"
	"github.com/matzehuels/shapestack/pkg/cache"
	"github.com/matzehuels/shapestack/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config holds environment settings. Nil means load on first use.
	Config *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          config.AppName,
		Short:        "Shapestack packs 2D shapes into non-overlapping layers",
		Long:         `Shapestack reads scenes of circles, rectangles, triangles, and convex polygons, groups them into composites, and packs them into a matrix whose layers never hold two shapes with overlapping frames.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			installHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config returns the environment settings, loading them on first use.
func (c *CLI) config() (*config.Config, error) {
	if c.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		c.Config = cfg
	}
	return c.Config, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	store, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "v"+buildinfo.Version+":"), c.Logger)
	runner.TTL = cfg.CacheTTL
	return runner, nil
}

func newCache(cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.NoCache || cfg.CacheDir == "" {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cfg.CacheDir)
}

// =============================================================================
// Paths
// =============================================================================

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output ends in a known format extension (.svg, .txt, ...), that
// extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	exts := make([]string, len(pipeline.Formats))
	for i, format := range pipeline.Formats {
		exts[i] = pipeline.Extension(format)
	}
	// ".graphviz.svg" before ".svg"
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
