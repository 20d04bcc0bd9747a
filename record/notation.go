// Package record keeps the in-session move transcript and its text notation.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"blokus-local/rules"
	"blokus-local/types"
)

// Board coordinates:
// - Columns: A-T, left to right
// - Rows: 1-20, top to bottom
// - Example: A1 is Player 1's start corner, T20 is Player 2's

// Coord converts 0-indexed board coordinates to notation.
// (0,0) -> "A1", (9,4) -> "E10", (19,19) -> "T20".
func Coord(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+rune(col), row+1)
}

// ParseCoord converts notation back to 0-indexed (row, col).
func ParseCoord(s string) (int, int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("invalid coordinate: %q", s)
	}

	col := int(s[0] - 'A')
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row in coordinate: %q", s)
	}
	row--

	if !rules.InBounds(row, col) {
		return 0, 0, fmt.Errorf("coordinate out of bounds: %q", s)
	}
	return row, col, nil
}

// OrientationCode renders an orientation as r0-r3 with an m suffix when mirrored.
func OrientationCode(o rules.Orientation) string {
	code := fmt.Sprintf("r%d", o.Turns())
	if o.Mirrored {
		code += "m"
	}
	return code
}

// ParseOrientationCode is the inverse of OrientationCode.
func ParseOrientationCode(s string) (rules.Orientation, error) {
	var o rules.Orientation
	if strings.HasSuffix(s, "m") {
		o.Mirrored = true
		s = strings.TrimSuffix(s, "m")
	}
	if len(s) != 2 || s[0] != 'r' || s[1] < '0' || s[1] > '3' {
		return rules.Orientation{}, fmt.Errorf("invalid orientation: %q", s)
	}
	o.Rotation = int(s[1] - '0')
	return o, nil
}

func playerCode(p rules.Player) string {
	return fmt.Sprintf("P%d", int(p))
}

func parsePlayerCode(s string) (rules.Player, error) {
	switch s {
	case "P1":
		return rules.Player1, nil
	case "P2":
		return rules.Player2, nil
	}
	return rules.NoPlayer, fmt.Errorf("invalid player: %q", s)
}

// FormatMove renders an entry as "P1 L5 r1m K10" or "P2 pass".
func FormatMove(e types.MoveEntry) string {
	if e.Pass {
		return playerCode(e.Player) + " pass"
	}
	return fmt.Sprintf("%s %s %s %s", playerCode(e.Player), e.Piece, OrientationCode(e.Orientation), Coord(e.Row, e.Col))
}

// ParseMove reads the FormatMove notation. The entry number is left zero.
func ParseMove(s string) (types.MoveEntry, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return types.MoveEntry{}, fmt.Errorf("empty move")
	}
	p, err := parsePlayerCode(fields[0])
	if err != nil {
		return types.MoveEntry{}, err
	}

	if len(fields) == 2 && fields[1] == "pass" {
		return types.PassEntry(0, p), nil
	}
	if len(fields) != 4 {
		return types.MoveEntry{}, fmt.Errorf("invalid move: %q", s)
	}

	name := rules.PieceName(fields[1])
	if _, ok := rules.CanonicalShape(name); !ok {
		return types.MoveEntry{}, fmt.Errorf("unknown piece: %q", fields[1])
	}
	o, err := ParseOrientationCode(fields[2])
	if err != nil {
		return types.MoveEntry{}, err
	}
	row, col, err := ParseCoord(fields[3])
	if err != nil {
		return types.MoveEntry{}, err
	}

	return types.PlacementEntry(0, p, rules.Move{Piece: name, Orientation: o, Row: row, Col: col}), nil
}
