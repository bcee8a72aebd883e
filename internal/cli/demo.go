package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapestack/pkg/composite"
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/matrix"
	"github.com/matzehuels/shapestack/pkg/scene"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in demonstration scene",
		Long: `Run the built-in demonstration scene.

One rectangle, circle, triangle, and polygon are each scaled, moved, and
rotated with every intermediate result printed, then the same is done to the
group as a whole. The group is packed into a matrix and printed, emptied one
shape at a time, and finally given an empty nested composite so the nested
error chain can be shown level by level on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runDemo(w, errw io.Writer) error {
	sc, err := scene.Demo()
	if err != nil {
		return err
	}

	var current shape.Shape
	for i, st := range sc.Steps {
		var target shape.Shape = sc.Root
		if st.Target != "" {
			target, _ = sc.Lookup(st.Target)
		}
		if target != current {
			if current != nil {
				fmt.Fprintln(w)
			}
			current = target
			fmt.Fprintf(w, "%s: \n", target)
			fmt.Fprintf(w, "Area of %s is %s\n", target, fmtNum(target.Area()))
		}
		if err := sc.Run(st); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "step %d (%s) failed", i, st.Op)
		}
		if err := narrate(w, target, st); err != nil {
			return err
		}
	}
	sc.Steps = nil
	fmt.Fprintln(w)

	m, err := matrix.FromComposite(sc.Root)
	if err != nil {
		return err
	}
	if err := m.Print(w); err != nil {
		return err
	}

	for range sc.Root.Len() {
		if err := sc.Root.PopBack(); err != nil {
			return err
		}
		if sc.Root.IsEmpty() {
			fmt.Fprintln(w, "Is empty")
		} else {
			fmt.Fprintln(w, "Isn't empty")
		}
	}

	if err := sc.Root.PushBack(composite.New()); err != nil {
		return err
	}
	if _, err := sc.Root.FrameRect(); err != nil {
		printChain(errw, err)
	}
	return nil
}

// narrate prints the result of a step that has just run on s.
func narrate(w io.Writer, s shape.Shape, st scene.Step) error {
	switch st.Op {
	case scene.OpScale:
		fmt.Fprintf(w, "Area of %s after scalability %sx is %s\n", s, fmtNum(st.Factor), fmtNum(s.Area()))
		frame, err := s.FrameRect()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Frame Rectangle position of %s is %s\n", s, fmtPoint(frame.Center))
		fmt.Fprintf(w, "Width frame Rectangle of %s is %s and height is %s\n", s, fmtNum(frame.Width), fmtNum(frame.Height))
	case scene.OpMoveTo:
		pos, err := s.Position()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Position %s after moving in {%s, %s} is %s\n", s, fmtNum(st.To.X), fmtNum(st.To.Y), fmtPoint(pos))
	case scene.OpMoveBy:
		pos, err := s.Position()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Position %s after moving to offset (%s, %s) is %s\n", s, fmtNum(st.DX), fmtNum(st.DY), fmtPoint(pos))
	case scene.OpRotate:
		frame, err := s.FrameRect()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Frame Rectangle position of %s after rotate(%s) is %s\n", s, fmtNum(st.Angle), fmtPoint(frame.Center))
		fmt.Fprintf(w, "Width frame Rectangle of %s after rotate(%s) is %s and height is %s\n", s, fmtNum(st.Angle), fmtNum(frame.Width), fmtNum(frame.Height))
	case scene.OpPop:
		fmt.Fprintf(w, "%s after pop has %d shapes\n", s, s.(*composite.Shape).Len())
	}
	return nil
}

// printChain prints a nested error one level per line, outermost first.
func printChain(w io.Writer, err error) {
	for level, msg := range errors.Chain(err) {
		fmt.Fprintf(w, "Level %d exception: %s\n", level, msg)
	}
}
