package shape

import (
	"slices"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
)

// Polygon is a convex polygon given by its vertices in order.
type Polygon struct {
	pts []geom.Point
}

// NewPolygon creates a convex polygon. It needs at least three vertices,
// a non-zero area, and every turn along the boundary must bend the same way.
// The input slice is copied.
func NewPolygon(pts ...geom.Point) (*Polygon, error) {
	if len(pts) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "polygon needs at least 3 points, got %d", len(pts))
	}
	p := &Polygon{pts: slices.Clone(pts)}
	if p.Area() < minArea {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "polygon has no area")
	}
	if !convex(p.pts) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "polygon is not convex")
	}
	return p, nil
}

// convex reports whether all cross products of consecutive edges share a
// sign. Collinear runs (zero cross products) are allowed.
func convex(pts []geom.Point) bool {
	var left, right bool
	n := len(pts)
	for i := range n {
		a, b, c := pts[i], pts[(i+1)%n], pts[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 0:
			left = true
		case cross < 0:
			right = true
		}
		if left && right {
			return false
		}
	}
	return true
}

// Len returns the number of vertices.
func (p *Polygon) Len() int { return len(p.pts) }

func (p *Polygon) String() string { return "Polygon" }

func (p *Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) Area() float64 { return shoelace(p.pts) }

func (p *Polygon) FrameRect() (geom.Rect, error) { return frameOf(p.pts), nil }

// Position returns the vertex average.
func (p *Polygon) Position() (geom.Point, error) { return geom.Centroid(p.pts), nil }

func (p *Polygon) MoveTo(to geom.Point) error {
	dx, dy := to.Sub(geom.Centroid(p.pts))
	p.MoveBy(dx, dy)
	return nil
}

func (p *Polygon) MoveBy(dx, dy float64) { translate(p.pts, dx, dy) }

func (p *Polygon) Scale(factor float64) error {
	if err := CheckFactor(factor); err != nil {
		return err
	}
	scaleAbout(p.pts, geom.Centroid(p.pts), factor)
	return nil
}

func (p *Polygon) Rotate(degrees float64) error {
	rotateAbout(p.pts, geom.Centroid(p.pts), degrees)
	return nil
}

// Vertices returns a copy of the vertices.
func (p *Polygon) Vertices() []geom.Point { return slices.Clone(p.pts) }

var (
	_ Shape    = (*Polygon)(nil)
	_ Outliner = (*Polygon)(nil)
)
