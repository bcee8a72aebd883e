// Package shape defines the capability contract every geometry satisfies and
// the four concrete kinds: [Circle], [Rectangle], [Triangle] and [Polygon].
//
// Shapes are always used through pointers. A pointer is a shared reference:
// the same shape may sit in a composite, in a matrix cell and in the caller's
// hands at once, and a mutation through any of them is visible to all.
//
// # Pivots
//
// Each kind has its own reference point, returned by Position and used as the
// pivot for Scale and Rotate:
//   - circle, rectangle: the center
//   - triangle, polygon: the vertex average
//
// The frame rectangle center (FrameRect().Center) coincides with Position for
// circles and rectangles but generally not for triangles and polygons.
package shape

import (
	"fmt"
	"reflect"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
)

// Kind names a shape variant.
type Kind string

// Shape kinds.
const (
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
	KindTriangle  Kind = "triangle"
	KindPolygon   Kind = "polygon"
	KindComposite Kind = "composite"
)

// Kinds lists every shape kind in declaration order.
var Kinds = []Kind{KindCircle, KindRectangle, KindTriangle, KindPolygon, KindComposite}

// Shape is the capability contract shared by all geometries, including
// composite groups.
//
// Concrete kinds never return errors from FrameRect, Position, MoveTo or
// Rotate; the error results exist for groups, which fail when empty.
type Shape interface {
	// String returns a short label such as "Circle".
	fmt.Stringer

	Kind() Kind
	Area() float64
	FrameRect() (geom.Rect, error)
	Position() (geom.Point, error)
	MoveTo(p geom.Point) error
	MoveBy(dx, dy float64)

	// Scale resizes the shape about its own pivot. factor must be positive.
	Scale(factor float64) error

	// Rotate turns the shape about its own pivot by degrees.
	Rotate(degrees float64) error
}

// Outliner is implemented by shapes whose boundary is a closed polyline.
// Vertices are returned in drawing order.
type Outliner interface {
	Vertices() []geom.Point
}

// IsNil reports whether s is absent: a nil interface or a typed nil pointer.
func IsNil(s Shape) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// CheckFactor validates a scale factor.
func CheckFactor(factor float64) error {
	if factor <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "scale factor must be positive, got %v", factor)
	}
	return nil
}

// minArea is the smallest area accepted for triangles and polygons.
const minArea = 1e-8

// shoelace returns the unsigned area of the closed polyline pts.
func shoelace(pts []geom.Point) float64 {
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[i].Y*pts[j].X
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// frameOf returns the extents of pts as a frame rectangle.
func frameOf(pts []geom.Point) geom.Rect {
	var e geom.Extents
	for _, p := range pts {
		e.IncludePoint(p)
	}
	return e.Rect()
}

// scaleAbout moves every point of pts away from pivot by factor.
func scaleAbout(pts []geom.Point, pivot geom.Point, factor float64) {
	for i, p := range pts {
		dx, dy := p.Sub(pivot)
		pts[i] = geom.Point{X: pivot.X + dx*factor, Y: pivot.Y + dy*factor}
	}
}

// rotateAbout rotates every point of pts about pivot.
func rotateAbout(pts []geom.Point, pivot geom.Point, degrees float64) {
	sin, cos := sincos(degrees)
	for i, p := range pts {
		pts[i] = geom.RotateSinCos(p, pivot, sin, cos)
	}
}

// translate moves every point of pts by (dx, dy).
func translate(pts []geom.Point, dx, dy float64) {
	for i, p := range pts {
		pts[i] = p.Add(dx, dy)
	}
}
