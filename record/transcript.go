package record

import (
	"fmt"
	"strings"
	"time"

	"blokus-local/rules"
	"blokus-local/types"
)

// Transcript tracks the turns of one game in memory.
type Transcript struct {
	Mode       rules.Mode
	Difficulty rules.Difficulty
	Started    time.Time
	Result     string
	entries    []types.MoveEntry
}

// NewTranscript starts an empty transcript.
func NewTranscript(mode rules.Mode, difficulty rules.Difficulty, started time.Time) *Transcript {
	return &Transcript{
		Mode:       mode,
		Difficulty: difficulty,
		Started:    started,
		Result:     "?",
	}
}

// Add appends an entry, numbering it.
func (t *Transcript) Add(e types.MoveEntry) types.MoveEntry {
	e.Number = len(t.entries) + 1
	t.entries = append(t.entries, e)
	return e
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries.
func (t *Transcript) Entries() []types.MoveEntry {
	return append([]types.MoveEntry(nil), t.entries...)
}

// Lines renders the numbered entries, one per line.
func (t *Transcript) Lines() []string {
	lines := make([]string, len(t.entries))
	for i, e := range t.entries {
		lines[i] = fmt.Sprintf("%3d. %s", e.Number, FormatMove(e))
	}
	return lines
}

// String renders a header followed by the lines.
func (t *Transcript) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("mode=%s", t.Mode))
	if t.Mode == rules.ModeComputer {
		b.WriteString(fmt.Sprintf(" difficulty=%s", t.Difficulty))
	}
	b.WriteString(fmt.Sprintf(" started=%s result=%s\n", t.Started.Format(time.RFC3339), t.Result))
	for _, line := range t.Lines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Replay rebuilds the game state from the entries. Pass entries for a
// player the rules already flagged are skipped; any other pass must be one
// the rules allow.
func Replay(mode rules.Mode, entries []types.MoveEntry) (rules.State, error) {
	s := rules.NewGame(mode)
	for _, e := range entries {
		if e.Pass {
			if s.Player(e.Player).Passed {
				continue
			}
			if e.Player != s.Current {
				return s, fmt.Errorf("move %d: pass by %s out of turn", e.Number, e.Player)
			}
			var err error
			if s, err = s.Pass(); err != nil {
				return s, fmt.Errorf("move %d: %w", e.Number, err)
			}
			continue
		}
		if e.Player != s.Current {
			return s, fmt.Errorf("move %d: %s moved out of turn", e.Number, e.Player)
		}
		next, err := s.Play(e.Move())
		if err != nil {
			return s, fmt.Errorf("move %d (%s): %w", e.Number, FormatMove(e), err)
		}
		s = next
	}
	return s, nil
}
