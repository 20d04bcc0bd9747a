// Package types contains shared data structures for blokus-local.
package types

import "blokus-local/rules"

// BoardPos represents a cell on the board.
type BoardPos struct {
	Row int
	Col int
}

// MoveEntry is one turn as the engine reports it to the UI: a placement,
// or a pass when Pass is set.
type MoveEntry struct {
	Number      int
	Player      rules.Player
	Piece       rules.PieceName
	Orientation rules.Orientation
	Row         int
	Col         int
	Pass        bool
}

// PlacementEntry builds the entry for a placed move.
func PlacementEntry(number int, p rules.Player, m rules.Move) MoveEntry {
	return MoveEntry{
		Number:      number,
		Player:      p,
		Piece:       m.Piece,
		Orientation: m.Orientation,
		Row:         m.Row,
		Col:         m.Col,
	}
}

// PassEntry builds the entry for a pass.
func PassEntry(number int, p rules.Player) MoveEntry {
	return MoveEntry{Number: number, Player: p, Row: -1, Col: -1, Pass: true}
}

// Move converts a placement entry back into a rules move.
func (e MoveEntry) Move() rules.Move {
	return rules.Move{Piece: e.Piece, Orientation: e.Orientation, Row: e.Row, Col: e.Col}
}
