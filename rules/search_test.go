package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// playRandomly applies up to n random moves for whoever is to move.
func playRandomly(t *testing.T, s State, n int, seed uint64) State {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n && s.Phase != GameEnded; i++ {
		m, ok := ChooseMove(&s.Board, s.Player(s.Current), Medium, rng)
		require.True(t, ok, "player to move must have a move")
		var err error
		s, err = s.Play(m)
		require.NoError(t, err)
	}
	return s
}

func onlyPieces(ps PlayerState, names ...PieceName) PlayerState {
	ps.Pieces = nil
	for _, n := range names {
		ps.Pieces = append(ps.Pieces, Piece{Name: n, Owner: ps.ID})
	}
	return ps
}

func TestLegalMovesOpening(t *testing.T) {
	// Given: a fresh game
	s := NewGame(ModeHuman)

	// When: listing Player1's opening moves
	moves := s.LegalMoves(Player1)

	// Then: every move covers (0,0), which forces the anchor to (0,0)
	require.NotEmpty(t, moves)
	for _, m := range moves {
		assert.Equal(t, 0, m.Row)
		assert.Equal(t, 0, m.Col)
		assert.True(t, m.Shape()[0][0], "%s %d", m.Piece, m.Orientation.Index())
	}
}

func TestLegalMovesAcceptsDuplicateOrientations(t *testing.T) {
	var b Board
	ps := onlyPieces(PlayerState{ID: Player1}, "I1")

	moves := LegalMoves(&b, ps)

	// All eight orientations of the monomino are the same matrix and all are listed.
	require.Len(t, moves, OrientationCount)
	for i, m := range moves {
		assert.Equal(t, Move{Piece: "I1", Orientation: OrientationAt(i)}, m)
	}
}

func TestLegalMovesCrossCannotOpen(t *testing.T) {
	// The X pentomino has an empty top-left cell in every orientation.
	var b Board
	ps := onlyPieces(PlayerState{ID: Player1}, "X")

	assert.Empty(t, LegalMoves(&b, ps))
	assert.False(t, HasAnyLegalMove(&b, ps))
}

func TestMovesAreLegal(t *testing.T) {
	s := playRandomly(t, NewGame(ModeHuman), 10, 3)

	for _, p := range []Player{Player1, Player2} {
		ps := s.Player(p)
		for _, m := range s.LegalMoves(p) {
			assert.True(t, IsLegal(&s.Board, p, m.Shape(), m.Row, m.Col, !ps.HasPlacedFirstPiece))
		}
	}
}

func TestHasAnyLegalMoveAgreesWithLegalMoves(t *testing.T) {
	full := Board{}
	for r := range full {
		for c := range full[r] {
			full[r][c] = Player2
		}
	}

	boards := map[string]State{
		"opening":  NewGame(ModeHuman),
		"midgame":  playRandomly(t, NewGame(ModeHuman), 16, 11),
		"full":     {Board: full, Players: NewGame(ModeHuman).Players},
		"late":     playRandomly(t, NewGame(ModeHuman), 30, 5),
		"finished": playRandomly(t, NewGame(ModeHuman), 100, 9),
	}

	for name, s := range boards {
		t.Run(name, func(t *testing.T) {
			for _, p := range []Player{Player1, Player2} {
				assert.Equal(t, len(s.LegalMoves(p)) > 0, s.HasAnyLegalMove(p), "player %s", p)
			}
		})
	}
}

func TestChooseMove(t *testing.T) {
	t.Run("picks one of the legal moves", func(t *testing.T) {
		s := playRandomly(t, NewGame(ModeHuman), 6, 21)
		rng := rand.New(rand.NewSource(1))

		m, ok := ChooseMove(&s.Board, s.Player(s.Current), Easy, rng)

		require.True(t, ok)
		assert.Contains(t, s.LegalMoves(s.Current), m)
	})

	t.Run("reports none when there is no move", func(t *testing.T) {
		var b Board
		ps := onlyPieces(PlayerState{ID: Player1}, "X")

		_, ok := ChooseMove(&b, ps, Hard, rand.New(rand.NewSource(1)))

		assert.False(t, ok)
	})

	t.Run("difficulty does not change the pick", func(t *testing.T) {
		s := NewGame(ModeComputer)
		ps := s.Player(Player1)

		easy, _ := ChooseMove(&s.Board, ps, Easy, rand.New(rand.NewSource(99)))
		hard, _ := ChooseMove(&s.Board, ps, Hard, rand.New(rand.NewSource(99)))

		assert.Equal(t, easy, hard)
	})

	t.Run("samples across the whole set", func(t *testing.T) {
		var b Board
		ps := onlyPieces(PlayerState{ID: Player1}, "I1")
		rng := rand.New(rand.NewSource(5))

		seen := map[int]bool{}
		for i := 0; i < 400; i++ {
			m, ok := ChooseMove(&b, ps, Medium, rng)
			require.True(t, ok)
			seen[m.Orientation.Index()] = true
		}

		assert.Len(t, seen, OrientationCount)
	})
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		parsed, ok := ParseDifficulty(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, parsed)
	}

	_, ok := ParseDifficulty("impossible")
	assert.False(t, ok)
}
