package shape

import (
	"math"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
)

// Rectangle is a rectangle given by its center, side lengths and an
// accumulated rotation angle.
type Rectangle struct {
	center        geom.Point
	width, height float64
	angle         float64 // degrees, in (-360, 360)
}

// NewRectangle creates an unrotated rectangle. Width and height must be positive.
func NewRectangle(center geom.Point, width, height float64) (*Rectangle, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"rectangle sides must be positive, got %vx%v", width, height)
	}
	return &Rectangle{center: center, width: width, height: height}, nil
}

// Size returns the side lengths before rotation.
func (r *Rectangle) Size() (width, height float64) { return r.width, r.height }

// Angle returns the accumulated rotation in degrees.
func (r *Rectangle) Angle() float64 { return r.angle }

func (r *Rectangle) String() string { return "Rectangle" }

func (r *Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) Area() float64 { return r.width * r.height }

// FrameRect returns the bounding box of the rotated rectangle.
func (r *Rectangle) FrameRect() (geom.Rect, error) {
	sin, cos := sincos(r.angle)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return geom.Rect{
		Width:  r.height*sin + r.width*cos,
		Height: r.height*cos + r.width*sin,
		Center: r.center,
	}, nil
}

func (r *Rectangle) Position() (geom.Point, error) { return r.center, nil }

func (r *Rectangle) MoveTo(p geom.Point) error {
	r.center = p
	return nil
}

func (r *Rectangle) MoveBy(dx, dy float64) { r.center = r.center.Add(dx, dy) }

func (r *Rectangle) Scale(factor float64) error {
	if err := CheckFactor(factor); err != nil {
		return err
	}
	r.width *= factor
	r.height *= factor
	return nil
}

func (r *Rectangle) Rotate(degrees float64) error {
	r.angle = math.Mod(r.angle+degrees, 360)
	return nil
}

// Vertices returns the four corners, counter-clockwise from the bottom left
// corner of the unrotated rectangle.
func (r *Rectangle) Vertices() []geom.Point {
	hw, hh := r.width/2, r.height/2
	pts := []geom.Point{
		r.center.Add(-hw, -hh),
		r.center.Add(hw, -hh),
		r.center.Add(hw, hh),
		r.center.Add(-hw, hh),
	}
	rotateAbout(pts, r.center, r.angle)
	return pts
}

func sincos(degrees float64) (sin, cos float64) {
	return math.Sincos(geom.Radians(degrees))
}

var (
	_ Shape    = (*Rectangle)(nil)
	_ Outliner = (*Rectangle)(nil)
)
