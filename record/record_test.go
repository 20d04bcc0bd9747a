package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"blokus-local/rules"
	"blokus-local/types"
)

func TestCoordRoundTrip(t *testing.T) {
	cases := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{9, 4, "E10"},
		{19, 19, "T20"},
		{0, 19, "T1"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Coord(tc.row, tc.col))

		row, col, err := ParseCoord(tc.want)
		require.NoError(t, err)
		assert.Equal(t, tc.row, row)
		assert.Equal(t, tc.col, col)
	}
}

func TestParseCoordRejects(t *testing.T) {
	for _, s := range []string{"", "A", "U1", "A0", "A21", "Ax"} {
		_, _, err := ParseCoord(s)
		assert.Error(t, err, s)
	}
}

func TestParseCoordIsCaseInsensitive(t *testing.T) {
	row, col, err := ParseCoord(" k10 ")
	require.NoError(t, err)
	assert.Equal(t, 9, row)
	assert.Equal(t, 10, col)
}

func TestOrientationCode(t *testing.T) {
	for i := 0; i < rules.OrientationCount; i++ {
		o := rules.OrientationAt(i)
		code := OrientationCode(o)

		parsed, err := ParseOrientationCode(code)
		require.NoError(t, err, code)
		assert.Equal(t, o, parsed)
	}

	assert.Equal(t, "r1m", OrientationCode(rules.Orientation{Rotation: 1, Mirrored: true}))
	assert.Equal(t, "r3", OrientationCode(rules.Orientation{Rotation: -1}))

	for _, bad := range []string{"", "r4", "x1", "r1mm", "m"} {
		_, err := ParseOrientationCode(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatMove(t *testing.T) {
	// Given: a placement and a pass
	placed := types.PlacementEntry(3, rules.Player1, rules.Move{
		Piece:       "L5",
		Orientation: rules.Orientation{Rotation: 1, Mirrored: true},
		Row:         9,
		Col:         10,
	})
	passed := types.PassEntry(4, rules.Player2)

	// When / Then: they render in move notation
	assert.Equal(t, "P1 L5 r1m K10", FormatMove(placed))
	assert.Equal(t, "P2 pass", FormatMove(passed))
}

func TestParseMove(t *testing.T) {
	t.Run("placement", func(t *testing.T) {
		e, err := ParseMove("P2 T4 r2 T20")
		require.NoError(t, err)

		assert.Equal(t, rules.Player2, e.Player)
		assert.Equal(t, rules.Move{Piece: "T4", Orientation: rules.Orientation{Rotation: 2}, Row: 19, Col: 19}, e.Move())
		assert.False(t, e.Pass)
	})

	t.Run("pass", func(t *testing.T) {
		e, err := ParseMove("P1 pass")
		require.NoError(t, err)

		assert.True(t, e.Pass)
		assert.Equal(t, rules.Player1, e.Player)
	})

	t.Run("bad input", func(t *testing.T) {
		for _, s := range []string{"", "P3 pass", "P1 Q9 r0 A1", "P1 I1 r7 A1", "P1 I1 r0 Z9", "P1 I1 r0"} {
			_, err := ParseMove(s)
			assert.Error(t, err, s)
		}
	})
}

func TestTranscriptAddNumbersEntries(t *testing.T) {
	tr := NewTranscript(rules.ModeHuman, rules.Medium, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	first := tr.Add(types.PlacementEntry(0, rules.Player1, rules.Move{Piece: "I1"}))
	second := tr.Add(types.PassEntry(0, rules.Player2))

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []string{"  1. P1 I1 r0 A1", "  2. P2 pass"}, tr.Lines())
	assert.Equal(t, "mode=human started=2024-03-01T12:00:00Z result=?\n  1. P1 I1 r0 A1\n  2. P2 pass\n", tr.String())
}

func TestTranscriptEntriesIsACopy(t *testing.T) {
	tr := NewTranscript(rules.ModeComputer, rules.Hard, time.Now())
	tr.Add(types.PlacementEntry(0, rules.Player1, rules.Move{Piece: "I1"}))

	entries := tr.Entries()
	entries[0].Piece = "X"

	assert.Equal(t, rules.PieceName("I1"), tr.Entries()[0].Piece)
	assert.Contains(t, tr.String(), "difficulty=hard")
}

func TestReplayRebuildsState(t *testing.T) {
	// Given: a game played by random moves with a transcript kept alongside
	s := rules.NewGame(rules.ModeHuman)
	tr := NewTranscript(rules.ModeHuman, rules.Medium, time.Now())
	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 24 && s.Phase != rules.GameEnded; i++ {
		m, ok := rules.ChooseMove(&s.Board, s.Player(s.Current), rules.Medium, rng)
		require.True(t, ok)
		mover := s.Current
		next, err := s.Play(m)
		require.NoError(t, err)
		tr.Add(types.PlacementEntry(0, mover, m))
		s = next
	}

	// When: replaying the transcript, notation included
	var parsed []types.MoveEntry
	for _, line := range tr.Entries() {
		e, err := ParseMove(FormatMove(line))
		require.NoError(t, err)
		parsed = append(parsed, e)
	}
	replayed, err := Replay(rules.ModeHuman, parsed)

	// Then: the same position results
	require.NoError(t, err)
	assert.Equal(t, s.Board, replayed.Board)
	assert.Equal(t, s.Current, replayed.Current)
	assert.Equal(t, s.Phase, replayed.Phase)
}

func TestReplayRejectsIllegalMove(t *testing.T) {
	entries := []types.MoveEntry{
		types.PlacementEntry(1, rules.Player1, rules.Move{Piece: "I1", Row: 5, Col: 5}),
	}

	_, err := Replay(rules.ModeHuman, entries)

	assert.ErrorIs(t, err, rules.ErrIllegalPlacement)
}

func TestReplayRejectsOutOfTurn(t *testing.T) {
	entries := []types.MoveEntry{
		types.PlacementEntry(1, rules.Player2, rules.Move{Piece: "I1", Row: 19, Col: 19}),
	}

	_, err := Replay(rules.ModeHuman, entries)

	assert.ErrorContains(t, err, "out of turn")
}

func TestReplayRejectsPassWithMovesLeft(t *testing.T) {
	// Given: Player2 passes while it can still open from its corner
	entries := []types.MoveEntry{
		types.PlacementEntry(1, rules.Player1, rules.Move{Piece: "I1"}),
		types.PassEntry(2, rules.Player2),
	}

	// When: the transcript is replayed
	s, err := Replay(rules.ModeHuman, entries)

	// Then: the pass is refused and Player2 is still to move
	require.ErrorIs(t, err, rules.ErrCanStillMove)
	assert.Contains(t, err.Error(), "move 2")
	assert.False(t, s.Player(rules.Player2).Passed)
	assert.Equal(t, rules.Player2, s.Current)
}
