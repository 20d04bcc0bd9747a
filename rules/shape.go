package rules

import (
	"iter"
	"strings"
)

// Shape is a rectangular occupancy matrix. Shape[r][c] is true when the cell
// at row r, column c of the bounding box is part of the piece.
// Shapes are treated as immutable: every transform returns a new matrix.
type Shape [][]bool

// Pos is a (row, col) coordinate, either on the board or inside a shape.
type Pos struct {
	Row int
	Col int
}

// ParseShape builds a shape from rows of text where 'X' marks an occupied cell.
// Short rows are padded so the result stays rectangular.
func ParseShape(rows ...string) Shape {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	s := make(Shape, len(rows))
	for r, row := range rows {
		s[r] = make([]bool, width)
		for c, ch := range row {
			s[r][c] = ch == 'X'
		}
	}
	return s
}

// Rows returns the height of the bounding box.
func (s Shape) Rows() int {
	return len(s)
}

// Cols returns the width of the bounding box.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Area returns the number of occupied cells.
func (s Shape) Area() int {
	n := 0
	for _, row := range s {
		for _, filled := range row {
			if filled {
				n++
			}
		}
	}
	return n
}

// Cells returns the occupied offsets in row-major order.
func (s Shape) Cells() []Pos {
	cells := make([]Pos, 0, 5)
	for r, row := range s {
		for c, filled := range row {
			if filled {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Equal reports whether both shapes have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Rows() != o.Rows() || s.Cols() != o.Cols() {
		return false
	}
	for r := range s {
		for c := range s[r] {
			if s[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r, row := range s {
		out[r] = append([]bool(nil), row...)
	}
	return out
}

// Rotate turns the shape a quarter clockwise: transpose, then reverse each row.
func (s Shape) Rotate() Shape {
	rows, cols := s.Rows(), s.Cols()
	out := make(Shape, cols)
	for c := 0; c < cols; c++ {
		out[c] = make([]bool, rows)
		for r := 0; r < rows; r++ {
			out[c][r] = s[rows-1-r][c]
		}
	}
	return out
}

// Flip mirrors the shape horizontally by reversing each row.
func (s Shape) Flip() Shape {
	out := make(Shape, len(s))
	for r, row := range s {
		out[r] = make([]bool, len(row))
		for c := range row {
			out[r][c] = row[len(row)-1-c]
		}
	}
	return out
}

// String renders the shape with 'X' and '.', one row per line.
func (s Shape) String() string {
	var b strings.Builder
	for r, row := range s {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, filled := range row {
			if filled {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// OrientationCount is the size of the dihedral group of the square.
const OrientationCount = 8

// Orientation describes how a canonical shape is turned: an optional
// horizontal mirror applied first, then Rotation quarter turns clockwise.
type Orientation struct {
	Rotation int
	Mirrored bool
}

// OrientationAt maps an index 0..7 to its orientation. Indices 4..7 are mirrored.
func OrientationAt(i int) Orientation {
	i = ((i % OrientationCount) + OrientationCount) % OrientationCount
	return Orientation{Rotation: i % 4, Mirrored: i >= 4}
}

// Turns is Rotation reduced to 0..3. Negative rotations count
// counterclockwise.
func (o Orientation) Turns() int {
	return ((o.Rotation % 4) + 4) % 4
}

// Index is the inverse of OrientationAt.
func (o Orientation) Index() int {
	i := o.Turns()
	if o.Mirrored {
		i += 4
	}
	return i
}

// Rotate returns the orientation after one more clockwise quarter turn.
func (o Orientation) Rotate() Orientation {
	return Orientation{Rotation: (o.Turns() + 1) % 4, Mirrored: o.Mirrored}
}

// Flip returns the orientation after one more horizontal mirror of the
// current appearance. Mirroring a rotated shape equals the mirrored shape
// rotated the other way, so the rotation count is negated.
func (o Orientation) Flip() Orientation {
	return Orientation{Rotation: (4 - o.Turns()) % 4, Mirrored: !o.Mirrored}
}

// Apply derives the oriented shape from a canonical one.
func (o Orientation) Apply(canonical Shape) Shape {
	s := canonical
	if o.Mirrored {
		s = s.Flip()
	}
	turns := o.Turns()
	for i := 0; i < turns; i++ {
		s = s.Rotate()
	}
	if !o.Mirrored && turns == 0 {
		s = s.Clone()
	}
	return s
}

// Orientations yields the eight orientations of a shape in index order.
// Symmetric shapes yield repeated matrices; consumers must not assume the
// results are distinct.
func Orientations(canonical Shape) iter.Seq2[Orientation, Shape] {
	return func(yield func(Orientation, Shape) bool) {
		for i := 0; i < OrientationCount; i++ {
			o := OrientationAt(i)
			if !yield(o, o.Apply(canonical)) {
				return
			}
		}
	}
}
