package rules

import "errors"

var (
	ErrIllegalPlacement = errors.New("illegal placement")
	ErrNoSelection      = errors.New("no piece selected")
	ErrNotYourPiece     = errors.New("piece belongs to the other player")
	ErrPieceUnavailable = errors.New("piece is not in the player's remaining set")
	ErrComputerTurn     = errors.New("the computer is to move")
	ErrGameOver         = errors.New("game is over")
	ErrCanStillMove     = errors.New("player still has a legal placement")
)

// Reasons wrapped inside ErrIllegalPlacement.
var (
	ErrOutOfBounds       = errors.New("piece leaves the board")
	ErrOverlap           = errors.New("cell is already occupied")
	ErrSideContact       = errors.New("piece touches its own color along an edge")
	ErrNoCornerContact   = errors.New("piece does not touch its own color at a corner")
	ErrStartCornerMissed = errors.New("first piece must cover the starting corner")
)
