// Package composite implements a group of shapes that is itself a shape.
//
// A [Shape] holds shared references to its members in insertion order. It
// never copies member geometry: [Shape.Clone] duplicates the reference list,
// and transforms applied to the group mutate the members in place, so every
// other holder of a member observes the change.
//
// Groups nest: a composite can be pushed into another composite.
package composite

import (
	"iter"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// Shape is an ordered, growable collection of shapes.
//
// Elements in [0, size) are always non-nil. The backing array doubles when
// full; slots beyond size are kept nil so released members can be collected.
type Shape struct {
	items []shape.Shape // len(items) is the capacity
	size  int
}

// New returns an empty group.
func New() *Shape {
	return &Shape{items: make([]shape.Shape, 1)}
}

// Of returns a group holding the given shapes in order.
func Of(members ...shape.Shape) (*Shape, error) {
	c := New()
	for _, m := range members {
		if err := c.PushBack(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// PushBack appends a shared reference to s. A group that is c or already
// holds c, at any depth, is rejected since adding it would form a cycle.
func (c *Shape) PushBack(s shape.Shape) error {
	if shape.IsNil(s) {
		return errors.New(errors.ErrCodeInvalidArgument, "cannot add a nil shape")
	}
	if group, ok := s.(*Shape); ok && group.holds(c) {
		return errors.New(errors.ErrCodeInvalidArgument, "cannot add a composite shape to itself")
	}
	if c.size == len(c.items) {
		c.grow()
	}
	c.items[c.size] = s
	c.size++
	return nil
}

// holds reports whether target is c or one of its nested members.
func (c *Shape) holds(target *Shape) bool {
	if c == target {
		return true
	}
	for i := 0; i < c.size; i++ {
		if group, ok := c.items[i].(*Shape); ok && group.holds(target) {
			return true
		}
	}
	return false
}

func (c *Shape) grow() {
	next := make([]shape.Shape, max(1, 2*len(c.items)))
	copy(next, c.items[:c.size])
	c.items = next
}

// PopBack removes the last member.
func (c *Shape) PopBack() error {
	if c.size == 0 {
		return errors.New(errors.ErrCodeInvalidState, "cannot pop from an empty composite shape")
	}
	c.size--
	c.items[c.size] = nil
	return nil
}

// At returns the member at index i.
func (c *Shape) At(i int) (shape.Shape, error) {
	if i < 0 || i >= c.size {
		return nil, errors.New(errors.ErrCodeOutOfRange, "index %d out of range [0, %d)", i, c.size)
	}
	return c.items[i], nil
}

// Len returns the number of members.
func (c *Shape) Len() int { return c.size }

// IsEmpty reports whether the group has no members.
func (c *Shape) IsEmpty() bool { return c.size == 0 }

// All iterates over the members in index order.
func (c *Shape) All() iter.Seq2[int, shape.Shape] {
	return func(yield func(int, shape.Shape) bool) {
		for i := 0; i < c.size; i++ {
			if !yield(i, c.items[i]) {
				return
			}
		}
	}
}

// Clone returns a new group referencing the same members. The backing array
// is new and sized to fit; the members are shared.
func (c *Shape) Clone() *Shape {
	items := make([]shape.Shape, max(1, c.size))
	copy(items, c.items[:c.size])
	return &Shape{items: items, size: c.size}
}

// Transfer moves the members into a new group and leaves c empty.
func (c *Shape) Transfer() *Shape {
	out := &Shape{items: c.items, size: c.size}
	c.items = make([]shape.Shape, 1)
	c.size = 0
	return out
}

func (c *Shape) String() string { return "CompositeShape" }

func (c *Shape) Kind() shape.Kind { return shape.KindComposite }

// Area returns the sum of member areas. An empty group has zero area.
func (c *Shape) Area() float64 {
	var sum float64
	for i := 0; i < c.size; i++ {
		sum += c.items[i].Area()
	}
	return sum
}

// FrameRect returns the smallest axis-aligned rectangle covering every
// member's frame rectangle.
//
// It fails with INVALID_STATE when the group is empty, or when a member's own
// FrameRect fails; the latter names the member index and wraps its error.
func (c *Shape) FrameRect() (geom.Rect, error) {
	if c.size == 0 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidState, "composite shape is empty")
	}
	var ext geom.Extents
	for i := 0; i < c.size; i++ {
		r, err := c.items[i].FrameRect()
		if err != nil {
			return geom.Rect{}, errors.Wrap(errors.ErrCodeInvalidState, err,
				"failed to compute frame rect for shape at index %d", i)
		}
		ext.Include(r)
	}
	return ext.Rect(), nil
}

// Position returns the center of the group's frame rectangle.
func (c *Shape) Position() (geom.Point, error) {
	r, err := c.FrameRect()
	if err != nil {
		return geom.Point{}, err
	}
	return r.Center, nil
}

// MoveTo translates the group so its frame center lands on p.
func (c *Shape) MoveTo(p geom.Point) error {
	center, err := c.Position()
	if err != nil {
		return err
	}
	dx, dy := p.Sub(center)
	c.MoveBy(dx, dy)
	return nil
}

// MoveBy translates every member by (dx, dy).
func (c *Shape) MoveBy(dx, dy float64) {
	for i := 0; i < c.size; i++ {
		c.items[i].MoveBy(dx, dy)
	}
}

// Scale resizes the group by factor.
//
// Members are processed in index order. For each one the group center is
// recomputed from the current frame rectangle, the member's frame center is
// pushed away from it by factor, and the member is scaled in place. Because
// the center is re-derived after every member, earlier members influence the
// displacement of later ones.
func (c *Shape) Scale(factor float64) error {
	if err := shape.CheckFactor(factor); err != nil {
		return err
	}
	for i := 0; i < c.size; i++ {
		center, err := c.Position()
		if err != nil {
			return err
		}
		m := c.items[i]
		r, err := m.FrameRect()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidState, err, "failed to scale shape at index %d", i)
		}
		dx, dy := r.Center.Sub(center)
		m.MoveBy(dx*(factor-1), dy*(factor-1))
		if err := m.Scale(factor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidState, err, "failed to scale shape at index %d", i)
		}
	}
	return nil
}

// Rotate turns the group rigidly about its frame center by degrees: each
// member is rotated in place about its own position, and that position is
// then carried to where rotating it about the group center puts it.
func (c *Shape) Rotate(degrees float64) error {
	pivot, err := c.Position()
	if err != nil {
		return err
	}
	for i := 0; i < c.size; i++ {
		m := c.items[i]
		p, err := m.Position()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidState, err, "failed to rotate shape at index %d", i)
		}
		if err := m.Rotate(degrees); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidState, err, "failed to rotate shape at index %d", i)
		}
		// p is fixed by the in-place turn, so shifting it is enough.
		dx, dy := geom.Rotate(p, pivot, degrees).Sub(p)
		m.MoveBy(dx, dy)
	}
	return nil
}

var _ shape.Shape = (*Shape)(nil)
