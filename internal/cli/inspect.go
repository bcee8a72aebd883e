package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/matrix"
	"github.com/matzehuels/shapestack/pkg/pipeline"
	"github.com/matzehuels/shapestack/pkg/scene"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var skipSteps bool

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Print the shapes, totals, and matrix of a scene",
		Long: `Print the shapes, totals, and matrix of a scene.

Every shape is listed with its area, frame rectangle, and position, followed
by the totals of the whole scene and the matrix its shapes pack into. Shapes
whose frame cannot be computed (an empty composite, for example) show the
error chain instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], skipSteps)
		},
	}

	cmd.Flags().BoolVar(&skipSteps, "skip-steps", false, "do not run the scene's steps")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, input string, skipSteps bool) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	sc, _, err := runner.Load(ctx, pipeline.Options{Scene: input, SkipSteps: skipSteps, Logger: c.Logger})
	if err != nil {
		return err
	}
	return inspectScene(w, sc)
}

// inspectScene writes the shape table, the scene totals, and the matrix.
func inspectScene(w io.Writer, sc *scene.Scene) error {
	fmt.Fprintln(w, StyleTitle.Render(sc.Name))
	fmt.Fprintln(w, shapeTable(sc))
	fmt.Fprintln(w)

	fmt.Fprintln(w, keyValue("Shapes", fmt.Sprint(sc.Len())))
	fmt.Fprintln(w, keyValue("Area", fmtNum(sc.Root.Area())))
	if frame, err := sc.Root.FrameRect(); err != nil {
		fmt.Fprintln(w, keyValue("Frame", "unavailable"))
		printChain(w, err)
	} else {
		fmt.Fprintln(w, keyValue("Frame", fmtPoint(frame.Center)+" "+fmtNum(frame.Width)+" x "+fmtNum(frame.Height)))
	}
	fmt.Fprintln(w)

	m, err := matrix.FromComposite(sc.Root)
	if err != nil {
		printChain(w, err)
		return nil
	}
	return m.Print(w)
}

func shapeTable(sc *scene.Scene) string {
	var rows [][]string
	for _, id := range sc.IDs {
		s, _ := sc.Lookup(id)
		rows = append(rows, shapeRow(id, s))
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Shape", "Area", "Position", "Frame center", "Frame size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return tableHeaderStyle
			case col == 2:
				return StyleNumber
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		}).
		Render()
}

func shapeRow(id string, s shape.Shape) []string {
	row := []string{id, s.String(), fmtNum(s.Area())}
	pos, err := s.Position()
	if err != nil {
		return append(row, "-", errors.UserMessage(err), "-")
	}
	frame, _ := s.FrameRect()
	return append(row, fmtPoint(pos), fmtPoint(frame.Center), fmtNum(frame.Width)+" x "+fmtNum(frame.Height))
}
