package rules

import (
	"iter"

	"golang.org/x/exp/rand"
)

// Move is a complete placement: which piece, how it is turned and where its
// shape origin lands.
type Move struct {
	Piece       PieceName
	Orientation Orientation
	Row         int
	Col         int
}

// Shape returns the oriented shape the move places.
func (m Move) Shape() Shape {
	return m.Orientation.Apply(canonical(m.Piece))
}

// Moves yields every legal placement for a player, piece by piece in tray
// order, then orientation index, then anchor row and column. Both the pass
// check and the computer opponent walk this one sequence.
func Moves(b *Board, ps PlayerState) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		firstMove := !ps.HasPlacedFirstPiece
		for _, piece := range ps.Pieces {
			for o, shape := range Orientations(canonical(piece.Name)) {
				for r := 0; r < BoardSize; r++ {
					for c := 0; c < BoardSize; c++ {
						if judge(b, ps.ID, shape, r, c, firstMove) != legal {
							continue
						}
						if !yield(Move{Piece: piece.Name, Orientation: o, Row: r, Col: c}) {
							return
						}
					}
				}
			}
		}
	}
}

// LegalMoves collects Moves.
func LegalMoves(b *Board, ps PlayerState) []Move {
	var moves []Move
	for m := range Moves(b, ps) {
		moves = append(moves, m)
	}
	return moves
}

// HasAnyLegalMove stops at the first legal placement.
func HasAnyLegalMove(b *Board, ps PlayerState) bool {
	for range Moves(b, ps) {
		return true
	}
	return false
}

// Difficulty is the computer strength requested by the player.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty accepts the names returned by String.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// ChooseMove picks uniformly among all legal moves. The difficulty is accepted
// for the interface but does not change the distribution.
func ChooseMove(b *Board, ps PlayerState, _ Difficulty, rng *rand.Rand) (Move, bool) {
	moves := LegalMoves(b, ps)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[rng.Intn(len(moves))], true
}
