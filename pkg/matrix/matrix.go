// Package matrix packs shapes into a grid of layers.
//
// Each shape is placed in the first row where its frame rectangle overlaps
// no shape already in that row. Rows are added when every existing row is
// blocked and columns are added when the chosen row is full. Shapes are never
// removed, so the grid only grows.
//
// Overlap is strict: frame rectangles that only touch along an edge or at a
// corner do not overlap. See [geom.Rect.Overlaps].
package matrix

import (
	"fmt"
	"io"

	"github.com/matzehuels/shapestack/pkg/composite"
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/geom"
	"github.com/matzehuels/shapestack/pkg/shape"
)

// Matrix is a row-major grid of shared shape references.
//
// Within a row no two occupied cells hold shapes whose frame rectangles
// overlap. Rows may overlap each other freely.
type Matrix struct {
	rows, cols int
	cells      []shape.Shape // rows*cols, nil for empty cells
}

// New returns a 1x1 matrix with a single empty cell.
func New() *Matrix {
	return &Matrix{rows: 1, cols: 1, cells: make([]shape.Shape, 1)}
}

// FromComposite lays out the members of c in index order. The result depends
// on that order: a different order may produce a different valid packing.
func FromComposite(c *composite.Shape) (*Matrix, error) {
	if c == nil || c.IsEmpty() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "cannot build a matrix from an empty composite shape")
	}
	m := New()
	for i, s := range c.All() {
		if err := m.Add(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "failed to place shape at index %d", i)
		}
	}
	return m, nil
}

// Rows returns the number of layers.
func (m *Matrix) Rows() int { return m.rows }

// Columns returns the width of every layer.
func (m *Matrix) Columns() int { return m.cols }

// Len returns the number of occupied cells.
func (m *Matrix) Len() int {
	n := 0
	for _, s := range m.cells {
		if s != nil {
			n++
		}
	}
	return n
}

// Add places s in the first row it fits.
//
// Rows are scanned top to bottom and each row left to right. A row is
// rejected as soon as an occupied cell overlaps s; it is accepted when the
// scan reaches an empty cell or the end of the row first. When no row is
// accepted an empty row is appended. The shape goes into the first empty
// cell of the accepted row, and if there is none the matrix grows by one
// column.
func (m *Matrix) Add(s shape.Shape) error {
	if shape.IsNil(s) {
		return errors.New(errors.ErrCodeInvalidArgument, "cannot add a nil shape")
	}
	frame, err := s.FrameRect()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "cannot place %s without a frame rect", s)
	}

	row := -1
	for i := 0; i < m.rows && row < 0; i++ {
		fits, err := m.fits(i, frame)
		if err != nil {
			return err
		}
		if fits {
			row = i
		}
	}
	if row < 0 {
		m.addRow()
		row = m.rows - 1
	}

	col := m.firstEmpty(row)
	if col < 0 {
		m.addColumn()
		col = m.cols - 1
	}
	m.cells[row*m.cols+col] = s
	return nil
}

// fits reports whether frame overlaps none of the shapes in row i before the
// row's first empty cell.
func (m *Matrix) fits(i int, frame geom.Rect) (bool, error) {
	for j := 0; j < m.cols; j++ {
		cell := m.cells[i*m.cols+j]
		if cell == nil {
			return true, nil
		}
		r, err := cell.FrameRect()
		if err != nil {
			return false, errors.Wrap(errors.ErrCodeInvalidState, err,
				"failed to compute frame rect for cell [%d][%d]", i, j)
		}
		if r.Overlaps(frame) {
			return false, nil
		}
	}
	return true, nil
}

func (m *Matrix) firstEmpty(row int) int {
	for j := 0; j < m.cols; j++ {
		if m.cells[row*m.cols+j] == nil {
			return j
		}
	}
	return -1
}

func (m *Matrix) addRow() {
	m.cells = append(m.cells, make([]shape.Shape, m.cols)...)
	m.rows++
}

func (m *Matrix) addColumn() {
	cols := m.cols + 1
	next := make([]shape.Shape, m.rows*cols)
	for i := 0; i < m.rows; i++ {
		copy(next[i*cols:], m.cells[i*m.cols:(i+1)*m.cols])
	}
	m.cells = next
	m.cols = cols
}

// Layer returns a snapshot of row i.
func (m *Matrix) Layer(i int) (Layer, error) {
	if i < 0 || i >= m.rows {
		return Layer{}, errors.New(errors.ErrCodeOutOfRange, "layer %d out of range [0, %d)", i, m.rows)
	}
	cells := make([]shape.Shape, m.cols)
	copy(cells, m.cells[i*m.cols:(i+1)*m.cols])
	return Layer{cells: cells}, nil
}

// Layers returns a snapshot of every row in order.
func (m *Matrix) Layers() []Layer {
	out := make([]Layer, m.rows)
	for i := range out {
		out[i], _ = m.Layer(i)
	}
	return out
}

// Clone returns a matrix with its own grid referencing the same shapes.
func (m *Matrix) Clone() *Matrix {
	cells := make([]shape.Shape, len(m.cells))
	copy(cells, m.cells)
	return &Matrix{rows: m.rows, cols: m.cols, cells: cells}
}

// Print writes one line per layer: "Layer <i> : " followed by the label of
// each shape. A row is printed only up to its first empty cell.
func (m *Matrix) Print(w io.Writer) error {
	for i := 0; i < m.rows; i++ {
		if _, err := fmt.Fprintf(w, "Layer %d : ", i); err != nil {
			return err
		}
		for j := 0; j < m.cols; j++ {
			cell := m.cells[i*m.cols+j]
			if cell == nil {
				break
			}
			if _, err := fmt.Fprintf(w, "%s ", cell); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
