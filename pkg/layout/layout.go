// Package layout captures a matrix arrangement as plain data.
//
// A [Layout] records, for every occupied matrix cell, the shape's id, kind,
// area, frame rectangle, and the drawable parts needed to render it. It has
// no references back to live shapes, so it can be cached, serialized, and
// rendered after the shapes have changed.
package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/shapestack/pkg/composite"
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
	"github.com/matzehuels/shapestack/pkg/matrix"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// namespace seeds the name-based layout ids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/shapestack/layout"))

// Layout is a serializable snapshot of a matrix.
type Layout struct {
	ID      string    `json:"id"`
	Name    string    `json:"name,omitempty"`
	Rows    int       `json:"rows"`
	Columns int       `json:"columns"`
	Cells   []Cell    `json:"cells"` // row-major, occupied cells only
	Bounds  geom.Rect `json:"bounds"`
}

// Cell is one occupied matrix cell.
type Cell struct {
	Row    int        `json:"row"`
	Column int        `json:"column"`
	ID     string     `json:"id"`
	Kind   shape.Kind `json:"kind"`
	Label  string     `json:"label"`
	Area   float64    `json:"area"`
	Frame  geom.Rect  `json:"frame"`
	Parts  []Part     `json:"parts"`
}

// Part is one drawable leaf of a cell. A plain shape has a single part; a
// composite has one per leaf member, depth first.
type Part struct {
	Kind    shape.Kind   `json:"kind"`
	Center  geom.Point   `json:"center"`
	Radius  float64      `json:"radius,omitempty"`
	Outline []geom.Point `json:"outline,omitempty"`
}

// IDFunc names a shape. Returning "" falls back to "<kind>@<row>.<column>".
type IDFunc func(shape.Shape) string

// Build snapshots m. ids may be nil.
func Build(m *matrix.Matrix, ids IDFunc) (*Layout, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "nil matrix")
	}
	l := &Layout{Rows: m.Rows(), Columns: m.Columns()}
	var ext geom.Extents
	for i, layer := range m.Layers() {
		for j := 0; j < layer.Len(); j++ {
			s, _ := layer.At(j)
			if s == nil {
				continue
			}
			c, err := newCell(i, j, s, ids)
			if err != nil {
				return nil, err
			}
			ext.Include(c.Frame)
			l.Cells = append(l.Cells, c)
		}
	}
	if !ext.Empty() {
		l.Bounds = ext.Rect()
	}
	l.ID = l.contentID()
	return l, nil
}

func newCell(row, col int, s shape.Shape, ids IDFunc) (Cell, error) {
	frame, err := s.FrameRect()
	if err != nil {
		return Cell{}, errors.Wrap(errors.ErrCodeInvalidState, err, "cell [%d][%d]", row, col)
	}
	c := Cell{
		Row:    row,
		Column: col,
		Kind:   s.Kind(),
		Label:  s.String(),
		Area:   s.Area(),
		Frame:  frame,
	}
	if ids != nil {
		c.ID = ids(s)
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("%s@%d.%d", s.Kind(), row, col)
	}
	c.Parts, err = parts(s, nil)
	if err != nil {
		return Cell{}, errors.Wrap(errors.ErrCodeInvalidState, err, "cell [%d][%d]", row, col)
	}
	return c, nil
}

// parts flattens s into drawable leaves.
func parts(s shape.Shape, out []Part) ([]Part, error) {
	if group, ok := s.(*composite.Shape); ok {
		for _, m := range group.All() {
			var err error
			if out, err = parts(m, out); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	center, err := s.Position()
	if err != nil {
		return nil, err
	}
	p := Part{Kind: s.Kind(), Center: center}
	switch v := s.(type) {
	case *shape.Circle:
		p.Radius = v.Radius()
	case shape.Outliner:
		p.Outline = v.Vertices()
	}
	return append(out, p), nil
}

// contentID derives a stable id from everything except the name and id.
func (l *Layout) contentID() string {
	data, _ := json.Marshal(struct {
		Rows, Columns int
		Cells         []Cell
	}{l.Rows, l.Columns, l.Cells})
	return uuid.NewSHA1(namespace, data).String()
}

// Layer returns the cells of row i in column order.
func (l *Layout) Layer(i int) []Cell {
	var out []Cell
	for _, c := range l.Cells {
		if c.Row == i {
			out = append(out, c)
		}
	}
	return out
}

// At returns the cell at (row, col).
func (l *Layout) At(row, col int) (Cell, bool) {
	for _, c := range l.Cells {
		if c.Row == row && c.Column == col {
			return c, true
		}
	}
	return Cell{}, false
}

// Validate checks the structural invariants of a decoded layout.
func (l *Layout) Validate() error {
	if l.Rows < 1 || l.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidFormat, "layout size %dx%d", l.Rows, l.Columns)
	}
	seen := make(map[[2]int]bool, len(l.Cells))
	for i, c := range l.Cells {
		if c.Row < 0 || c.Row >= l.Rows || c.Column < 0 || c.Column >= l.Columns {
			return errors.New(errors.ErrCodeInvalidFormat, "cell %d at [%d][%d] outside %dx%d", i, c.Row, c.Column, l.Rows, l.Columns)
		}
		if !slices.Contains(shape.Kinds, c.Kind) {
			return errors.New(errors.ErrCodeInvalidFormat, "cell %d has unknown kind %q", i, c.Kind)
		}
		key := [2]int{c.Row, c.Column}
		if seen[key] {
			return errors.New(errors.ErrCodeInvalidFormat, "cell [%d][%d] listed twice", c.Row, c.Column)
		}
		seen[key] = true
	}
	return nil
}

// Marshal encodes l as indented JSON.
func Marshal(l *Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal decodes and validates a layout.
func Unmarshal(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// WriteFile writes l to path, creating parent directories.
func WriteFile(path string, l *Layout) error {
	data, err := Marshal(l)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// ReadFile reads a layout written by [WriteFile].
func ReadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Unmarshal(data)
}
