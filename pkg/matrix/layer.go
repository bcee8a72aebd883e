package matrix

import (
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// Layer is a read-only snapshot of one matrix row. Its length is the column
// count of the matrix when the row was taken; empty cells are nil.
//
// A Layer owns its slice, so later additions to the matrix are not reflected.
// The shapes themselves are shared references.
type Layer struct {
	cells []shape.Shape
}

// At returns the shape in column i, or nil for an empty cell.
func (l Layer) At(i int) (shape.Shape, error) {
	if i < 0 || i >= len(l.cells) {
		return nil, errors.New(errors.ErrCodeOutOfRange, "column %d out of range [0, %d)", i, len(l.cells))
	}
	return l.cells[i], nil
}

// Len returns the number of cells, occupied or not.
func (l Layer) Len() int { return len(l.cells) }

// Occupied returns the number of non-empty cells.
func (l Layer) Occupied() int {
	n := 0
	for _, s := range l.cells {
		if s != nil {
			n++
		}
	}
	return n
}
