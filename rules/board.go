package rules

// BoardSize is the number of cells on each side of the board.
const BoardSize = 20

// Player identifies a side. NoPlayer doubles as the empty cell value.
type Player int8

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "none"
	}
}

// StartCorner returns the cell a player's first piece must cover.
func StartCorner(p Player) Pos {
	if p == Player2 {
		return Pos{Row: BoardSize - 1, Col: BoardSize - 1}
	}
	return Pos{Row: 0, Col: 0}
}

// Board holds the owner of every cell. Board is indexed as Board[row][col].
// An owned cell is never cleared.
type Board [BoardSize][BoardSize]Player

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// At returns the owner of a cell, or NoPlayer for empty and off-board cells.
func (b *Board) At(row, col int) Player {
	if !InBounds(row, col) {
		return NoPlayer
	}
	return b[row][col]
}

// IsEmpty reports whether an on-board cell has no owner.
func (b *Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && b[row][col] == NoPlayer
}

// Count returns how many cells p owns.
func (b *Board) Count(p Player) int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] == p {
				n++
			}
		}
	}
	return n
}

// commit writes every occupied shape cell as owned by p. The placement must
// already have been validated.
func (b *Board) commit(shape Shape, row, col int, p Player) {
	for _, cell := range shape.Cells() {
		b[row+cell.Row][col+cell.Col] = p
	}
}
