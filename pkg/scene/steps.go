package scene

import (
	"github.com/matzehuels/shapestack/pkg/composite"
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// check validates a step against the built shapes without running it.
func (sc *Scene) check(st Step) error {
	if _, err := sc.target(st); err != nil {
		return err
	}
	switch st.Op {
	case OpScale, OpMoveBy, OpRotate, OpPop:
	case OpMoveTo:
		if st.To == nil {
			return errors.New(errors.ErrCodeInvalidFormat, "move_to needs a \"to\" point")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown step op %q", st.Op)
	}
	return nil
}

func (sc *Scene) target(st Step) (shape.Shape, error) {
	if st.Target == "" {
		return sc.Root, nil
	}
	s, ok := sc.byID[st.Target]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown target %q", st.Target)
	}
	return s, nil
}

// Run executes one step. Shape errors are returned unchanged.
func (sc *Scene) Run(st Step) error {
	if err := sc.check(st); err != nil {
		return err
	}
	s, _ := sc.target(st)
	switch st.Op {
	case OpScale:
		return s.Scale(st.Factor)
	case OpMoveTo:
		return s.MoveTo(*st.To)
	case OpMoveBy:
		s.MoveBy(st.DX, st.DY)
		return nil
	case OpRotate:
		return s.Rotate(st.Angle)
	default: // OpPop
		group, ok := s.(*composite.Shape)
		if !ok {
			return errors.New(errors.ErrCodeInvalidArgument, "pop needs a composite target, %q is a %s", st.Target, s.Kind())
		}
		return group.PopBack()
	}
}

// Apply runs the scene's steps in order and clears them. The first failing
// step stops the run; its index is wrapped around the shape error.
func (sc *Scene) Apply() error {
	for i, st := range sc.Steps {
		if err := sc.Run(st); err != nil {
			sc.Steps = sc.Steps[i:]
			return errors.Wrap(errors.GetCode(err), err, "step %d (%s) failed", i, st.Op)
		}
	}
	sc.Steps = nil
	return nil
}
