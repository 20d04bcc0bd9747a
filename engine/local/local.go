// Package local runs the game in process, with the computer opponent picking
// random legal moves after a short delay.
package local

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"blokus-local/engine"
	"blokus-local/random"
	"blokus-local/record"
	"blokus-local/rules"
	"blokus-local/types"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("engine closed")

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Option configures a LocalEngine.
type Option func(*LocalEngine)

// WithScheduler replaces the timer used for the computer's delayed move.
func WithScheduler(s Scheduler) Option {
	return func(e *LocalEngine) {
		e.schedule = s
	}
}

// WithRand sets the move picker's generator, overriding GameConfig.Seed.
func WithRand(r *rand.Rand) Option {
	return func(e *LocalEngine) {
		e.rng = r
	}
}

// LocalEngine implements the GameEngine interface in process.
type LocalEngine struct {
	config     engine.GameConfig
	log        zerolog.Logger
	schedule   Scheduler
	rng        *rand.Rand
	state      rules.State
	transcript *record.Transcript
	ended      bool
	closed     bool

	// epoch changes on Start and Close; a scheduled computer move carries
	// the epoch it was scheduled in and is dropped when it no longer matches.
	epoch uint64

	moveCallback func(entry types.MoveEntry, state rules.State)
	endCallback  func(outcome rules.Outcome, state rules.State)

	mu sync.Mutex
}

var _ engine.GameEngine = (*LocalEngine)(nil)

// NewLocalEngine creates an engine with the given configuration. Call Start
// to begin the first game.
func NewLocalEngine(cfg engine.GameConfig, logger zerolog.Logger, opts ...Option) (*LocalEngine, error) {
	e := &LocalEngine{
		config:   cfg,
		log:      logger.With().Str("component", "engine").Logger(),
		schedule: afterFunc,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		rng, err := random.NewRand(cfg.Seed)
		if err != nil {
			return nil, err
		}
		e.rng = rng
	}
	e.state = rules.NewGame(cfg.Mode)
	e.transcript = record.NewTranscript(cfg.Mode, cfg.Difficulty, time.Now())
	return e, nil
}

// Start begins a new game. A computer move still pending from the previous
// game is dropped.
func (e *LocalEngine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	e.epoch++
	e.state = rules.NewGame(e.config.Mode)
	e.transcript = record.NewTranscript(e.config.Mode, e.config.Difficulty, time.Now())
	e.ended = false
	e.log.Info().
		Stringer("mode", e.config.Mode).
		Stringer("difficulty", e.config.Difficulty).
		Uint64("epoch", e.epoch).
		Msg("game started")
	e.scheduleComputerTurn()
	return nil
}

// State returns a snapshot of the current game.
func (e *LocalEngine) State() rules.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// SelectPiece picks a piece for the player to move.
func (e *LocalEngine) SelectPiece(name rules.PieceName) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	next, err := e.state.SelectPiece(e.state.Current, name)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// Transform turns the selected piece.
func (e *LocalEngine) Transform(t rules.Transform) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	next, err := e.state.SetOrientation(t)
	if err != nil {
		return err
	}
	e.state = next
	return nil
}

// Preview reports the cells and legality of the selection at (row, col).
func (e *LocalEngine) Preview(row, col int) ([]rules.Pos, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.PreviewPlacement(row, col)
}

// PlacePiece places the selected piece with its origin at (row, col).
func (e *LocalEngine) PlacePiece(row, col int) error {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}

	prev := e.state
	piece, _ := prev.Selection()
	next, err := prev.AttemptPlacement(row, col)
	if err != nil {
		e.mu.Unlock()
		e.log.Debug().Err(err).Int("row", row).Int("col", col).Msg("placement refused")
		return err
	}

	m := rules.Move{Piece: piece.Name, Orientation: piece.Orientation, Row: row, Col: col}
	notify := e.advance(prev, next, &m)
	e.mu.Unlock()

	// Notify callbacks (outside lock to prevent deadlock)
	notify()
	return nil
}

// computerTurn plays the computer's move if the game it was scheduled for is
// still waiting on it.
func (e *LocalEngine) computerTurn(epoch uint64) {
	e.mu.Lock()

	if epoch != e.epoch || e.state.Phase != rules.TurnOver {
		e.log.Debug().
			Uint64("scheduled", epoch).
			Uint64("current", e.epoch).
			Stringer("phase", e.state.Phase).
			Msg("dropping stale computer move")
		e.mu.Unlock()
		return
	}

	prev := e.state
	m, ok := rules.ChooseMove(&prev.Board, prev.Player(prev.Current), e.config.Difficulty, e.rng)

	var notify func()
	if ok {
		next, err := prev.Play(m)
		if err != nil {
			e.log.Error().Err(err).Str("move", record.FormatMove(types.PlacementEntry(0, prev.Current, m))).Msg("computer chose an illegal move")
			e.mu.Unlock()
			return
		}
		notify = e.advance(prev, next, &m)
	} else {
		next, err := prev.Pass()
		if err != nil {
			e.log.Error().Err(err).Msg("computer pass failed")
			e.mu.Unlock()
			return
		}
		notify = e.advance(prev, next, nil)
	}
	e.mu.Unlock()

	notify()
}

// advance commits next as the current state, records the placement (if any)
// and the passes the rules applied, and schedules the computer when it is to
// move. The returned func fires the callbacks and must be called without the
// lock held. Must be called while holding the lock.
func (e *LocalEngine) advance(prev, next rules.State, placed *rules.Move) func() {
	var entries []types.MoveEntry
	if placed != nil {
		entry := e.transcript.Add(types.PlacementEntry(0, prev.Current, *placed))
		entries = append(entries, entry)
		e.log.Info().
			Int("number", entry.Number).
			Str("move", record.FormatMove(entry)).
			Msg("piece placed")
	}

	// The rules flag passes starting from the mover's opponent.
	for _, p := range []rules.Player{prev.Current.Opponent(), prev.Current} {
		if prev.Player(p).Passed || !next.Player(p).Passed {
			continue
		}
		entry := e.transcript.Add(types.PassEntry(0, p))
		entries = append(entries, entry)
		e.log.Info().
			Int("number", entry.Number).
			Stringer("player", p).
			Msg("player passed")
	}

	e.state = next

	var outcome rules.Outcome
	gameEnded := next.Phase == rules.GameEnded && !e.ended
	if gameEnded {
		e.ended = true
		outcome = next.Outcome()
		e.transcript.Result = outcome.String()
		e.log.Info().
			Int("player1", outcome.Scores[0]).
			Int("player2", outcome.Scores[1]).
			Str("result", outcome.String()).
			Msg("game ended")
	}

	e.scheduleComputerTurn()

	moveCallback := e.moveCallback
	endCallback := e.endCallback
	snapshot := next.Clone()
	epoch := e.epoch
	return func() {
		if moveCallback != nil {
			for _, entry := range entries {
				if !e.inEpoch(epoch) {
					return
				}
				moveCallback(entry, snapshot)
			}
		}
		if gameEnded && endCallback != nil && e.inEpoch(epoch) {
			endCallback(outcome, snapshot)
		}
	}
}

// inEpoch reports whether no Start or Close happened since epoch. Callbacks
// queued for a replaced game are dropped with it.
func (e *LocalEngine) inEpoch(epoch uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch != e.epoch {
		e.log.Debug().
			Uint64("queued", epoch).
			Uint64("current", e.epoch).
			Msg("dropping callbacks of a replaced game")
		return false
	}
	return true
}

// scheduleComputerTurn arms the delayed computer move when it is the
// computer's turn. Must be called while holding the lock.
func (e *LocalEngine) scheduleComputerTurn() {
	if e.state.Phase != rules.TurnOver {
		return
	}
	epoch := e.epoch
	e.schedule(e.config.ThinkDelay, func() {
		e.computerTurn(epoch)
	})
}

// IsMyTurn returns true while a human may select and place.
func (e *LocalEngine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	return e.state.Phase == rules.AwaitingSelection || e.state.Phase == rules.PieceSelected
}

// OnMove registers a callback for every placement and pass.
func (e *LocalEngine) OnMove(callback func(entry types.MoveEntry, state rules.State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *LocalEngine) OnGameEnd(callback func(outcome rules.Outcome, state rules.State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endCallback = callback
}

// History returns the turns played in the current game.
func (e *LocalEngine) History() []types.MoveEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transcript.Entries()
}

// Transcript renders the current game's transcript.
func (e *LocalEngine) Transcript() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transcript.String()
}

// Close stops the engine. A pending computer move is dropped when it fires.
func (e *LocalEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.epoch++
	e.log.Debug().Msg("engine closed")
}
