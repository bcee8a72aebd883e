package scene

import (
	"fmt"

	"github.com/matzehuels/shapestack/pkg/composite"
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// Scene is a built document: the shapes grouped under one root composite,
// their ids, and the steps still to run.
type Scene struct {
	Name  string
	Root  *composite.Shape
	IDs   []string // every shape id in document order, depth first
	Steps []Step

	byID   map[string]shape.Shape
	byName map[shape.Shape]string
}

// Build constructs the shapes of doc. Constructor errors keep their code and
// are wrapped with the id of the offending shape.
func Build(doc *Document) (*Scene, error) {
	if doc == nil || len(doc.Shapes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "scene has no shapes")
	}
	b := &builder{
		taken:  make(map[string]bool),
		counts: make(map[shape.Kind]int),
		sc: &Scene{
			Name:   doc.Name,
			Root:   composite.New(),
			Steps:  doc.Steps,
			byID:   make(map[string]shape.Shape),
			byName: make(map[shape.Shape]string),
		},
	}
	if err := b.reserve(doc.Shapes); err != nil {
		return nil, err
	}
	if err := b.addAll(b.sc.Root, doc.Shapes); err != nil {
		return nil, err
	}
	for i, st := range doc.Steps {
		if err := b.sc.check(st); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "step %d", i)
		}
	}
	return b.sc, nil
}

// ID returns the id of s, or "" when s is not part of the scene.
func (sc *Scene) ID(s shape.Shape) string { return sc.byName[s] }

// Lookup returns the shape with the given id.
func (sc *Scene) Lookup(id string) (shape.Shape, bool) {
	s, ok := sc.byID[id]
	return s, ok
}

// Len returns the number of shapes, nested ones included.
func (sc *Scene) Len() int { return len(sc.IDs) }

type builder struct {
	sc     *Scene
	taken  map[string]bool
	counts map[shape.Kind]int
}

// reserve records explicit ids so generated ones never collide with them.
func (b *builder) reserve(specs []ShapeSpec) error {
	for _, sp := range specs {
		if sp.ID != "" {
			if b.taken[sp.ID] {
				return errors.New(errors.ErrCodeInvalidFormat, "duplicate shape id %q", sp.ID)
			}
			b.taken[sp.ID] = true
		}
		if err := b.reserve(sp.Children); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) nextID(kind shape.Kind) string {
	for {
		b.counts[kind]++
		id := fmt.Sprintf("%s-%d", kind, b.counts[kind])
		if !b.taken[id] {
			b.taken[id] = true
			return id
		}
	}
}

func (b *builder) addAll(parent *composite.Shape, specs []ShapeSpec) error {
	for _, sp := range specs {
		if err := b.add(parent, sp); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) add(parent *composite.Shape, sp ShapeSpec) error {
	kind := shape.Kind(sp.Kind)
	id := sp.ID
	if id == "" {
		id = b.nextID(kind)
	}

	s, err := b.construct(kind, sp)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInvalidFormat
		}
		return errors.Wrap(code, err, "shape %q", id)
	}

	b.sc.IDs = append(b.sc.IDs, id)
	b.sc.byID[id] = s
	b.sc.byName[s] = id
	if group, ok := s.(*composite.Shape); ok {
		if err := b.addAll(group, sp.Children); err != nil {
			return err
		}
	}
	return parent.PushBack(s)
}

func (b *builder) construct(kind shape.Kind, sp ShapeSpec) (shape.Shape, error) {
	switch kind {
	case shape.KindCircle:
		return shape.NewCircle(sp.Center, sp.Radius)
	case shape.KindRectangle:
		r, err := shape.NewRectangle(sp.Center, sp.Width, sp.Height)
		if err != nil {
			return nil, err
		}
		if sp.Angle != 0 {
			_ = r.Rotate(sp.Angle)
		}
		return r, nil
	case shape.KindTriangle:
		if len(sp.Points) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "triangle needs 3 points, got %d", len(sp.Points))
		}
		return shape.NewTriangle(sp.Points[0], sp.Points[1], sp.Points[2])
	case shape.KindPolygon:
		return shape.NewPolygon(sp.Points...)
	case shape.KindComposite:
		return composite.New(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown shape kind %q", sp.Kind)
	}
}
