// Package engine defines the interface the UI uses to drive a game.
package engine

import (
	"time"

	"blokus-local/rules"
	"blokus-local/types"
)

// GameEngine defines the interface for playing a game, hot seat or against
// the computer.
type GameEngine interface {
	// Start begins a new game, discarding any game in progress.
	Start() error

	// State returns a snapshot of the current game.
	State() rules.State

	// SelectPiece picks the piece the player to move intends to place.
	SelectPiece(name rules.PieceName) error

	// Transform turns the selected piece.
	Transform(t rules.Transform) error

	// Preview returns the cells the selected piece would cover with its
	// origin at (row, col) and whether it could be placed there.
	Preview(row, col int) ([]rules.Pos, error)

	// PlacePiece places the selected piece with its origin at (row, col).
	PlacePiece(row, col int) error

	// IsMyTurn returns true while a human may act.
	IsMyTurn() bool

	// OnMove registers a callback for every placement and pass, by either
	// player. state is a snapshot taken right after the move.
	OnMove(func(entry types.MoveEntry, state rules.State))

	// OnGameEnd registers a callback fired once when the game ends.
	OnGameEnd(func(outcome rules.Outcome, state rules.State))

	// History returns the turns played so far.
	History() []types.MoveEntry

	// Transcript renders the turns played so far with a header line carrying
	// mode, start time and result.
	Transcript() string

	// Close stops the engine. Pending computer moves are dropped.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Mode       rules.Mode
	Difficulty rules.Difficulty
	ThinkDelay time.Duration // Pause before the computer moves
	Seed       uint64        // Move picker seed, 0 for a random one
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Mode:       rules.ModeComputer,
		Difficulty: rules.Medium,
		ThinkDelay: 500 * time.Millisecond,
	}
}
