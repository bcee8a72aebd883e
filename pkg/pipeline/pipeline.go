// Package pipeline provides the load → layout → render pipeline for shapestack.
//
// The CLI commands all go through this package so that a scene is always
// loaded, transformed, packed, and rendered the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a scene document, build its shapes, and run its steps
//  2. Layout: Pack the scene's shapes into a matrix and snapshot it
//  3. Render: Generate output in various formats (SVG, DOT, text, JSON, PNG, PDF)
//
// Layouts and artifacts are cached by content, so re-running an unchanged
// scene skips both the packing and the rendering.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   "shapes.toml",
//	    Formats: []string{"svg", "txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	sc, doc, err := runner.Load(ctx, opts)
//	l, err := runner.ComputeLayout(ctx, sc, doc, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapestack/pkg/cache"
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/scene"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the SVG scale in pixels per layout unit.
	DefaultScale = 20.0

	// DefaultPNGZoom is the rsvg-convert zoom factor for PNG output.
	DefaultPNGZoom = 2.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatText     = "txt"
	FormatGraphviz = "graphviz" // DOT laid out by Graphviz, as SVG
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatText, FormatGraphviz}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatText:     true,
	FormatGraphviz: true,
}

// Extension returns the file suffix written for format.
func Extension(format string) string {
	switch format {
	case FormatGraphviz:
		return ".graphviz.svg"
	case FormatJSON:
		return ".layout.json"
	default:
		return "." + format
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Scene     string          // path to a .json or .toml scene
	Document  *scene.Document // used instead of Scene when set
	SkipSteps bool            // build the shapes but do not run the steps
	Refresh   bool            // ignore cached layouts and artifacts

	// Render options
	Formats  []string
	Scale    float64
	NoFrames bool
	NoLabels bool

	// Runtime options
	Logger *log.Logger

	validated bool
}

// Source names where the scene comes from, for logs and hooks.
func (o *Options) Source() string {
	if o.Document != nil {
		if o.Document.Name != "" {
			return o.Document.Name
		}
		return "<document>"
	}
	return o.Scene
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the loaded scene, with its steps applied unless skipped.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene document.
	SceneHash string

	// Layout is the matrix snapshot.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ShapeCount int
	Rows       int
	Columns    int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidArgument,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		out = append(out, f)
	}
	if err := ValidateFormats(out); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a scene source is set.
func (o *Options) ValidateForLoad() error {
	if o.Scene == "" && o.Document == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "scene path or document is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Steps: !o.SkipSteps}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Scale = o.Scale
		k.Frames = !o.NoFrames
		k.Labels = !o.NoLabels
	}
	return k
}
