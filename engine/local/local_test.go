package local

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"blokus-local/engine"
	"blokus-local/record"
	"blokus-local/rules"
	"blokus-local/types"
)

// manualClock collects scheduled funcs and runs them on demand.
type manualClock struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (c *manualClock) schedule(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, f)
	c.delays = append(c.delays, d)
}

func (c *manualClock) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// fire runs the oldest pending func. It reports false when none is pending.
func (c *manualClock) fire() bool {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return false
	}
	f := c.pending[0]
	c.pending = c.pending[1:]
	c.mu.Unlock()
	f()
	return true
}

type recorder struct {
	mu       sync.Mutex
	moves    []types.MoveEntry
	states   []rules.State
	outcomes []rules.Outcome
}

func (r *recorder) attach(e *LocalEngine) {
	e.OnMove(func(entry types.MoveEntry, state rules.State) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.moves = append(r.moves, entry)
		r.states = append(r.states, state)
	})
	e.OnGameEnd(func(outcome rules.Outcome, _ rules.State) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.outcomes = append(r.outcomes, outcome)
	})
}

func newTestEngine(t *testing.T, mode rules.Mode) (*LocalEngine, *manualClock, *recorder) {
	t.Helper()
	clock := &manualClock{}
	cfg := engine.DefaultConfig()
	cfg.Mode = mode
	e, err := NewLocalEngine(cfg, zerolog.Nop(),
		WithScheduler(clock.schedule),
		WithRand(rand.New(rand.NewSource(42))),
	)
	require.NoError(t, err)
	rec := &recorder{}
	rec.attach(e)
	require.NoError(t, e.Start())
	return e, clock, rec
}

// playMove drives a rules move through the engine's human API.
func playMove(t *testing.T, e *LocalEngine, m rules.Move) {
	t.Helper()
	require.NoError(t, e.SelectPiece(m.Piece))
	require.NoError(t, e.Transform(rules.TransformReset))
	if m.Orientation.Mirrored {
		require.NoError(t, e.Transform(rules.TransformFlip))
	}
	for i := 0; i < m.Orientation.Rotation; i++ {
		require.NoError(t, e.Transform(rules.TransformRotate))
	}
	require.NoError(t, e.PlacePiece(m.Row, m.Col))
}

func TestHotSeatPlacement(t *testing.T) {
	// Given: a human vs human game
	e, clock, rec := newTestEngine(t, rules.ModeHuman)
	require.True(t, e.IsMyTurn())

	// When: Player1 places the monomino on its corner
	require.NoError(t, e.SelectPiece("I1"))
	require.NoError(t, e.PlacePiece(0, 0))

	// Then: the move is reported and Player2 is to move, nothing scheduled
	require.Len(t, rec.moves, 1)
	assert.Equal(t, "P1 I1 r0 A1", record.FormatMove(rec.moves[0]))
	assert.Equal(t, 1, rec.moves[0].Number)
	assert.Equal(t, rules.Player2, rec.states[0].Current)
	assert.Equal(t, rules.Player1, e.State().Board[0][0])
	assert.True(t, e.IsMyTurn())
	assert.Zero(t, clock.len())
	assert.Len(t, e.History(), 1)
}

func TestRefusedPlacementLeavesStateAlone(t *testing.T) {
	e, _, rec := newTestEngine(t, rules.ModeHuman)
	require.NoError(t, e.SelectPiece("I2"))
	before := e.State()

	err := e.PlacePiece(5, 5)

	assert.ErrorIs(t, err, rules.ErrStartCornerMissed)
	assert.Equal(t, before, e.State())
	assert.Empty(t, rec.moves)
}

func TestErrorsWithoutSelection(t *testing.T) {
	e, _, _ := newTestEngine(t, rules.ModeHuman)

	assert.ErrorIs(t, e.PlacePiece(0, 0), rules.ErrNoSelection)
	assert.ErrorIs(t, e.Transform(rules.TransformRotate), rules.ErrNoSelection)
	_, err := e.Preview(0, 0)
	assert.ErrorIs(t, err, rules.ErrNoSelection)
	assert.ErrorIs(t, e.SelectPiece("Q9"), rules.ErrPieceUnavailable)
}

func TestPreview(t *testing.T) {
	e, _, _ := newTestEngine(t, rules.ModeHuman)
	require.NoError(t, e.SelectPiece("I2"))

	cells, err := e.Preview(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []rules.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, cells)

	cells, err = e.Preview(0, 19)
	assert.ErrorIs(t, err, rules.ErrOutOfBounds)
	assert.Equal(t, []rules.Pos{{Row: 0, Col: 19}}, cells)
}

func TestComputerMovesAfterDelay(t *testing.T) {
	// Given: a game against the computer
	e, clock, rec := newTestEngine(t, rules.ModeComputer)

	// When: the human moves
	require.NoError(t, e.SelectPiece("I1"))
	require.NoError(t, e.PlacePiece(0, 0))

	// Then: the computer's move is scheduled with the think delay and the
	// human is locked out until it fires
	require.Equal(t, 1, clock.len())
	assert.Equal(t, 500*time.Millisecond, clock.delays[0])
	assert.False(t, e.IsMyTurn())
	assert.ErrorIs(t, e.SelectPiece("I2"), rules.ErrComputerTurn)

	// When: the timer fires
	require.True(t, clock.fire())

	// Then: the computer placed on its own corner and it is the human's turn
	require.Len(t, rec.moves, 2)
	assert.Equal(t, rules.Player2, rec.moves[1].Player)
	assert.False(t, rec.moves[1].Pass)
	state := e.State()
	assert.Equal(t, rules.Player2, state.Board[rules.BoardSize-1][rules.BoardSize-1])
	assert.Equal(t, rules.Player1, state.Current)
	assert.Equal(t, rules.AwaitingSelection, state.Phase)
	assert.True(t, e.IsMyTurn())
	assert.Zero(t, clock.len())
}

func TestStaleComputerMoveIsDropped(t *testing.T) {
	// Given: a computer move pending
	e, clock, rec := newTestEngine(t, rules.ModeComputer)
	require.NoError(t, e.SelectPiece("I1"))
	require.NoError(t, e.PlacePiece(0, 0))
	require.Equal(t, 1, clock.len())

	// When: a new game starts before the timer fires
	require.NoError(t, e.Start())
	require.True(t, clock.fire())

	// Then: the old move never lands on the new board
	assert.Len(t, rec.moves, 1)
	state := e.State()
	assert.Equal(t, rules.NewGame(rules.ModeComputer).Board, state.Board)
	assert.Equal(t, rules.Player1, state.Current)
	assert.Empty(t, e.History())
}

func TestCloseDropsPendingMove(t *testing.T) {
	e, clock, rec := newTestEngine(t, rules.ModeComputer)
	require.NoError(t, e.SelectPiece("I1"))
	require.NoError(t, e.PlacePiece(0, 0))

	e.Close()
	require.True(t, clock.fire())

	assert.Len(t, rec.moves, 1)
	assert.False(t, e.IsMyTurn())
	assert.ErrorIs(t, e.SelectPiece("I2"), ErrClosed)
	assert.ErrorIs(t, e.Start(), ErrClosed)
}

func TestFullGameAgainstComputer(t *testing.T) {
	// Given: a computer game where the human also plays random legal moves
	e, clock, rec := newTestEngine(t, rules.ModeComputer)
	rng := rand.New(rand.NewSource(7))

	// When: playing until the end
	for turns := 0; turns < 200; turns++ {
		state := e.State()
		if state.Phase == rules.GameEnded {
			break
		}
		if state.Phase == rules.TurnOver {
			require.True(t, clock.fire(), "computer turn must be scheduled")
			continue
		}
		m, ok := rules.ChooseMove(&state.Board, state.Player(state.Current), rules.Medium, rng)
		require.True(t, ok, "human to move must have a move")
		playMove(t, e, m)
	}

	// Then: the end is reported once with the final scores
	state := e.State()
	require.Equal(t, rules.GameEnded, state.Phase)
	require.Len(t, rec.outcomes, 1)
	assert.Equal(t, state.Outcome(), rec.outcomes[0])
	assert.Zero(t, clock.len())

	// And: both players are recorded as passing and the transcript replays
	var passes []rules.Player
	for _, entry := range rec.moves {
		if entry.Pass {
			passes = append(passes, entry.Player)
		}
	}
	assert.ElementsMatch(t, []rules.Player{rules.Player1, rules.Player2}, passes)

	replayed, err := record.Replay(rules.ModeComputer, e.History())
	require.NoError(t, err)
	assert.Equal(t, state.Board, replayed.Board)
	assert.Equal(t, state.FinalScores, replayed.FinalScores)
	assert.Contains(t, e.Transcript(), "result="+state.Outcome().String())
}

func TestRestartDuringCallbacksDropsTheRest(t *testing.T) {
	// Given: a hot seat game where Player1's next placement fills the last
	// empty cell, so one placement produces two passes and the game end
	e, _, _ := newTestEngine(t, rules.ModeHuman)
	e.mu.Lock()
	for r := range e.state.Board {
		for c := range e.state.Board[r] {
			e.state.Board[r][c] = rules.Player2
		}
	}
	e.state.Board[0][0] = rules.Player1
	e.state.Board[1][1] = rules.NoPlayer
	e.state.Players[0].HasPlacedFirstPiece = true
	e.state.Players[1].HasPlacedFirstPiece = true
	e.mu.Unlock()

	// And: the first move callback starts a new game
	var moves []types.MoveEntry
	var outcomes []rules.Outcome
	e.OnMove(func(entry types.MoveEntry, _ rules.State) {
		moves = append(moves, entry)
		if len(moves) == 1 {
			require.NoError(t, e.Start())
		}
	})
	e.OnGameEnd(func(outcome rules.Outcome, _ rules.State) {
		outcomes = append(outcomes, outcome)
	})

	// When: Player1 places the monomino
	require.NoError(t, e.SelectPiece("I1"))
	require.NoError(t, e.PlacePiece(1, 1))

	// Then: only the placement reached the callbacks; the passes and the
	// end belong to the replaced game
	require.Len(t, moves, 1)
	assert.False(t, moves[0].Pass)
	assert.Empty(t, outcomes)
	assert.Equal(t, rules.AwaitingSelection, e.State().Phase)
	assert.Empty(t, e.History())
}

func TestCallbacksFireWithoutRestart(t *testing.T) {
	e, _, rec := newTestEngine(t, rules.ModeHuman)
	e.mu.Lock()
	for r := range e.state.Board {
		for c := range e.state.Board[r] {
			e.state.Board[r][c] = rules.Player2
		}
	}
	e.state.Board[0][0] = rules.Player1
	e.state.Board[1][1] = rules.NoPlayer
	e.state.Players[0].HasPlacedFirstPiece = true
	e.state.Players[1].HasPlacedFirstPiece = true
	e.mu.Unlock()

	require.NoError(t, e.SelectPiece("I1"))
	require.NoError(t, e.PlacePiece(1, 1))

	require.Len(t, rec.moves, 3)
	assert.Equal(t, rules.Player2, rec.moves[1].Player)
	assert.True(t, rec.moves[1].Pass)
	assert.Equal(t, rules.Player1, rec.moves[2].Player)
	assert.True(t, rec.moves[2].Pass)
	require.Len(t, rec.outcomes, 1)
}
