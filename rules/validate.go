package rules

import "fmt"

type verdict int

const (
	legal verdict = iota
	outOfBounds
	overlap
	sideContact
	noCornerContact
	startCornerMissed
)

var verdictErrors = map[verdict]error{
	outOfBounds:       ErrOutOfBounds,
	overlap:           ErrOverlap,
	sideContact:       ErrSideContact,
	noCornerContact:   ErrNoCornerContact,
	startCornerMissed: ErrStartCornerMissed,
}

var (
	diagonals  = [4]Pos{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonal = [4]Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// judge runs the adjacency rules without allocating. It is the hot path of
// the move search.
func judge(b *Board, p Player, shape Shape, row, col int, firstMove bool) verdict {
	corner := StartCorner(p)
	touchesOwnCorner := false
	touchesOwnSide := false
	coversStart := false

	for pr, cells := range shape {
		for pc, filled := range cells {
			if !filled {
				continue
			}
			br, bc := row+pr, col+pc
			if !InBounds(br, bc) {
				return outOfBounds
			}
			if b[br][bc] != NoPlayer {
				return overlap
			}
			if br == corner.Row && bc == corner.Col {
				coversStart = true
			}
			for _, d := range diagonals {
				if b.At(br+d.Row, bc+d.Col) == p {
					touchesOwnCorner = true
				}
			}
			for _, d := range orthogonal {
				if b.At(br+d.Row, bc+d.Col) == p {
					touchesOwnSide = true
				}
			}
		}
	}

	switch {
	case touchesOwnSide:
		return sideContact
	case firstMove && !coversStart:
		return startCornerMissed
	case !firstMove && !touchesOwnCorner:
		return noCornerContact
	}
	return legal
}

// IsLegal reports whether p may place shape with its origin at (row, col).
// firstMove must be true until p has placed a piece.
func IsLegal(b *Board, p Player, shape Shape, row, col int, firstMove bool) bool {
	return judge(b, p, shape, row, col, firstMove) == legal
}

// CheckPlacement is IsLegal with a reason. The error wraps ErrIllegalPlacement
// and one of the reason errors.
func CheckPlacement(b *Board, p Player, shape Shape, row, col int, firstMove bool) error {
	v := judge(b, p, shape, row, col, firstMove)
	if v == legal {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrIllegalPlacement, verdictErrors[v])
}
