package shape

import (
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
)

// Triangle is a triangle given by its three vertices.
type Triangle struct {
	pts [3]geom.Point
}

// NewTriangle creates a triangle. The vertices must not be collinear.
func NewTriangle(a, b, c geom.Point) (*Triangle, error) {
	t := &Triangle{pts: [3]geom.Point{a, b, c}}
	if t.Area() < minArea {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "triangle vertices are collinear")
	}
	return t, nil
}

func (t *Triangle) String() string { return "Triangle" }

func (t *Triangle) Kind() Kind { return KindTriangle }

func (t *Triangle) Area() float64 { return shoelace(t.pts[:]) }

func (t *Triangle) FrameRect() (geom.Rect, error) { return frameOf(t.pts[:]), nil }

// Position returns the vertex average.
func (t *Triangle) Position() (geom.Point, error) { return geom.Centroid(t.pts[:]), nil }

func (t *Triangle) MoveTo(p geom.Point) error {
	dx, dy := p.Sub(geom.Centroid(t.pts[:]))
	t.MoveBy(dx, dy)
	return nil
}

func (t *Triangle) MoveBy(dx, dy float64) { translate(t.pts[:], dx, dy) }

func (t *Triangle) Scale(factor float64) error {
	if err := CheckFactor(factor); err != nil {
		return err
	}
	scaleAbout(t.pts[:], geom.Centroid(t.pts[:]), factor)
	return nil
}

func (t *Triangle) Rotate(degrees float64) error {
	rotateAbout(t.pts[:], geom.Centroid(t.pts[:]), degrees)
	return nil
}

// Vertices returns a copy of the three vertices.
func (t *Triangle) Vertices() []geom.Point {
	out := make([]geom.Point, 3)
	copy(out, t.pts[:])
	return out
}

var (
	_ Shape    = (*Triangle)(nil)
	_ Outliner = (*Triangle)(nil)
)
