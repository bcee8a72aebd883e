// Package pkg provides the core libraries for Shapestack.
//
// # Overview
//
// Shapestack models 2D shapes (circles, rectangles, triangles, convex
// polygons, and nested groups of them) and packs them into a matrix whose
// layers never hold two shapes with overlapping frame rectangles. The pkg
// directory is organized into four areas:
//
//  1. Geometry - [geom], [shape], [composite]
//  2. Packing - [matrix], [layout]
//  3. Scenes and output - [scene], [render]
//  4. Orchestration - [pipeline], [cache], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	scene file (TOML or JSON)
//	         ↓
//	    [scene] package (build shapes, apply steps)
//	         ↓
//	    [matrix] package (first-fit layer packing)
//	         ↓
//	    [layout] package (serializable snapshot)
//	         ↓
//	    [render] package (SVG, DOT, text, PNG, PDF)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/shapestack/pkg/composite"
//	    "github.com/matzehuels/shapestack/pkg/geom"
//	    "github.com/matzehuels/shapestack/pkg/layout"
//	    "github.com/matzehuels/shapestack/pkg/matrix"
//	    "github.com/matzehuels/shapestack/pkg/render"
//	    "github.com/matzehuels/shapestack/pkg/shape"
//	)
//
//	r, _ := shape.NewRectangle(geom.Point{}, 4, 2)
//	c, _ := shape.NewCircle(geom.Point{X: 0.5}, 1)
//	group, _ := composite.Of(r, c)
//
//	m, _ := matrix.FromComposite(group)
//	m.Print(os.Stdout) // Layer 0 : Rectangle / Layer 1 : Circle
//
//	l, _ := layout.Build(m, nil)
//	svg := render.RenderSVG(l)
//
// # Main Packages
//
// [geom] - Points, axis-aligned rectangles, and extents.
//
// [shape] - The [shape.Shape] contract and the four concrete kinds. Every
// transform keeps the shape valid; invalid construction and scaling
// arguments fail with INVALID_ARGUMENT.
//
// [composite] - An ordered, bounded group of shapes that is itself a shape.
// Errors from members are wrapped with the member index so the failing path
// can be printed level by level.
//
// [matrix] - Layers of fixed width. A shape goes into the first column of
// the first layer whose occupants it does not overlap; a new layer is opened
// when none fits.
//
// [scene] - Scene documents, the shapes built from them, and the steps
// (scale, move, rotate, pop) applied before packing.
//
// [layout] - A matrix captured as plain data, with content-derived ids.
//
// [render] - SVG, Graphviz DOT, and text output, plus PNG/PDF conversion.
//
// [pipeline] - Load → layout → render with caching, shared by every CLI
// command.
//
// [cache] - Content-addressed layout and artifact caching.
//
// [observability] - Hooks for logging pipeline and cache events.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example ./... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/geom
// [shape]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/shape
// [composite]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/composite
// [matrix]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/matrix
// [scene]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/scene
// [layout]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/shapestack/pkg/observability
package pkg
