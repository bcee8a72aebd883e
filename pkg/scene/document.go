// Package scene reads shape documents and turns them into composite groups.
//
// A scene document lists shapes and, optionally, transform steps to run
// against them. Documents are JSON or TOML:
//
//	name = "demo"
//
//	[[shapes]]
//	id = "base"
//	kind = "rectangle"
//	center = { x = 100, y = 110 }
//	width = 2
//	height = 5
//
//	[[steps]]
//	op = "scale"
//	factor = 2
//
// Shapes without an id get "<kind>-<n>", numbered per kind in document order.
// A step without a target applies to the whole scene.
package scene

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format by file extension. Anything other than
// ".toml" is read as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Document is the decoded form of a scene file.
type Document struct {
	Name   string      `json:"name,omitempty" toml:"name"`
	Shapes []ShapeSpec `json:"shapes" toml:"shapes"`
	Steps  []Step      `json:"steps,omitempty" toml:"steps"`
}

// ShapeSpec describes one shape. Which fields apply depends on Kind:
//   - circle: Center, Radius
//   - rectangle: Center, Width, Height, Angle
//   - triangle: Points (exactly 3)
//   - polygon: Points (3 or more, convex)
//   - composite: Children
type ShapeSpec struct {
	ID       string       `json:"id,omitempty" toml:"id"`
	Kind     string       `json:"kind" toml:"kind"`
	Center   geom.Point   `json:"center" toml:"center"`
	Radius   float64      `json:"radius,omitempty" toml:"radius"`
	Width    float64      `json:"width,omitempty" toml:"width"`
	Height   float64      `json:"height,omitempty" toml:"height"`
	Angle    float64      `json:"angle,omitempty" toml:"angle"`
	Points   []geom.Point `json:"points,omitempty" toml:"points"`
	Children []ShapeSpec  `json:"children,omitempty" toml:"children"`
}

// Op names a transform step.
type Op string

// Step operations.
const (
	OpScale  Op = "scale"
	OpMoveTo Op = "move_to"
	OpMoveBy Op = "move_by"
	OpRotate Op = "rotate"
	OpPop    Op = "pop"
)

// Step is one transform. Target is a shape id; empty means the scene root.
// OpPop removes the last member of a composite target.
type Step struct {
	Op     Op          `json:"op" toml:"op"`
	Target string      `json:"target,omitempty" toml:"target"`
	Factor float64     `json:"factor,omitempty" toml:"factor"`
	To     *geom.Point `json:"to,omitempty" toml:"to"`
	DX     float64     `json:"dx,omitempty" toml:"dx"`
	DY     float64     `json:"dy,omitempty" toml:"dy"`
	Angle  float64     `json:"angle,omitempty" toml:"angle"`
}

// Parse decodes a document in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json scene")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml scene")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
	if len(doc.Shapes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "scene has no shapes")
	}
	return &doc, nil
}

// ReadFile reads and decodes the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Load reads the document at path and builds it.
func Load(path string) (*Scene, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}
