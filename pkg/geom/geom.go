// Package geom provides the value types shared by every shape: points,
// axis-aligned frame rectangles, extent reduction, the strict overlap
// predicate, and rotation about a pivot.
//
// Angles are in degrees. Positive angles rotate counter-clockwise in a
// y-up coordinate system.
package geom

import "math"

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) (dx, dy float64) { return p.X - q.X, p.Y - q.Y }

// Rect is an axis-aligned frame rectangle described by its size and center.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Center Point   `json:"center"`
}

// MinX returns the left edge of the rectangle.
func (r Rect) MinX() float64 { return r.Center.X - r.Width/2 }

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.Center.X + r.Width/2 }

// MinY returns the bottom edge of the rectangle.
func (r Rect) MinY() float64 { return r.Center.Y - r.Height/2 }

// MaxY returns the top edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Center.Y + r.Height/2 }

// Overlaps reports whether r and o share interior area. Rectangles that only
// touch along an edge or a corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	dx := math.Abs(r.Center.X - o.Center.X)
	dy := math.Abs(r.Center.Y - o.Center.Y)
	return dx < (r.Width+o.Width)/2 && dy < (r.Height+o.Height)/2
}

// Extents accumulates the min/max bounds of a set of rectangles or points.
// The zero value is empty; the first Include sets the bounds.
type Extents struct {
	MinX, MaxX float64
	MinY, MaxY float64
	set        bool
}

// ExtentsOf returns the extents of a single rectangle.
func ExtentsOf(r Rect) Extents {
	var e Extents
	e.Include(r)
	return e
}

// Include grows e to cover r.
func (e *Extents) Include(r Rect) {
	e.include(r.MinX(), r.MaxX(), r.MinY(), r.MaxY())
}

// IncludePoint grows e to cover p.
func (e *Extents) IncludePoint(p Point) {
	e.include(p.X, p.X, p.Y, p.Y)
}

func (e *Extents) include(minX, maxX, minY, maxY float64) {
	if !e.set {
		e.MinX, e.MaxX, e.MinY, e.MaxY = minX, maxX, minY, maxY
		e.set = true
		return
	}
	e.MinX = math.Min(e.MinX, minX)
	e.MaxX = math.Max(e.MaxX, maxX)
	e.MinY = math.Min(e.MinY, minY)
	e.MaxY = math.Max(e.MaxY, maxY)
}

// Empty reports whether nothing has been included yet.
func (e Extents) Empty() bool { return !e.set }

// Rect converts the extents to a frame rectangle centered on their midpoint.
func (e Extents) Rect() Rect {
	return Rect{
		Width:  math.Abs(e.MaxX - e.MinX),
		Height: math.Abs(e.MaxY - e.MinY),
		Center: Point{X: (e.MaxX + e.MinX) / 2, Y: (e.MaxY + e.MinY) / 2},
	}
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 { return degrees * math.Pi / 180 }

// Rotate rotates p about pivot by the given angle in degrees.
func Rotate(p, pivot Point, degrees float64) Point {
	sin, cos := math.Sincos(Radians(degrees))
	return RotateSinCos(p, pivot, sin, cos)
}

// RotateSinCos rotates p about pivot using a precomputed sine and cosine,
// for callers rotating many points by the same angle.
func RotateSinCos(p, pivot Point, sin, cos float64) Point {
	dx, dy := p.Sub(pivot)
	return Point{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dy*cos + dx*sin,
	}
}

// Centroid returns the vertex average of pts. It returns the zero point for
// an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}
}
