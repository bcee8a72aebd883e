package shape

import (
	"math"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
)

// Circle is a circle given by its center and radius.
type Circle struct {
	center geom.Point
	radius float64
}

// NewCircle creates a circle. The radius must be positive.
func NewCircle(center geom.Point, radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "circle radius must be positive, got %v", radius)
	}
	return &Circle{center: center, radius: radius}, nil
}

// Radius returns the current radius.
func (c *Circle) Radius() float64 { return c.radius }

func (c *Circle) String() string { return "Circle" }

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) Area() float64 { return math.Pi * c.radius * c.radius }

func (c *Circle) FrameRect() (geom.Rect, error) {
	return geom.Rect{Width: 2 * c.radius, Height: 2 * c.radius, Center: c.center}, nil
}

func (c *Circle) Position() (geom.Point, error) { return c.center, nil }

func (c *Circle) MoveTo(p geom.Point) error {
	c.center = p
	return nil
}

func (c *Circle) MoveBy(dx, dy float64) { c.center = c.center.Add(dx, dy) }

func (c *Circle) Scale(factor float64) error {
	if err := CheckFactor(factor); err != nil {
		return err
	}
	c.radius *= factor
	return nil
}

// Rotate does nothing: a circle is invariant under rotation about its center.
func (c *Circle) Rotate(float64) error { return nil }

var _ Shape = (*Circle)(nil)
