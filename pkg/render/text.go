package render

import (
	"fmt"
	"io"

	"github.com/matzehuels/shapestack/pkg/layout"
)

// RenderText writes one line per layer in the form
//
//	Layer 0 : Rectangle Triangle
//
// Each line lists cell labels in column order and stops at the first empty
// column, the same way a matrix prints itself.
func RenderText(w io.Writer, l *layout.Layout) error {
	labels := make(map[[2]int]string, len(l.Cells))
	for _, c := range l.Cells {
		labels[[2]int{c.Row, c.Column}] = c.Label
	}
	for row := range l.Rows {
		if _, err := fmt.Fprintf(w, "Layer %d : ", row); err != nil {
			return err
		}
		for col := range l.Columns {
			label, ok := labels[[2]int{row, col}]
			if !ok {
				break
			}
			if _, err := fmt.Fprintf(w, "%s ", label); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
