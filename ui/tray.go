package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blokus-local/config"
	"blokus-local/rules"
)

const trayHeight = 12

// PieceTray lists both players' remaining pieces.
type PieceTray struct {
	box   *tview.TextView
	cfg   *config.Config
	state rules.State
}

// NewPieceTray creates an empty tray.
func NewPieceTray(c *config.Config) *PieceTray {
	tray := &PieceTray{
		box: tview.NewTextView(),
		cfg: c,
	}
	tray.box.SetDynamicColors(true)
	tray.box.SetWrap(true)
	tray.box.SetWordWrap(true)
	return tray
}

// Box returns the underlying tview component.
func (t *PieceTray) Box() *tview.TextView {
	return t.box
}

// SetState redraws the tray for state.
func (t *PieceTray) SetState(state rules.State) {
	t.state = state
	t.box.SetText(t.text())
}

func (t *PieceTray) text() string {
	var b strings.Builder
	selected, hasSelection := t.state.Selection()

	b.WriteString("[white::b]Pieces[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	for _, player := range []rules.Player{rules.Player1, rules.Player2} {
		color := colorTag(tcell.PaletteColor(t.playerColorCode(player)))
		fmt.Fprintf(&b, "%s%s[-]\n", color, playerLabel(t.state, player))

		ps := t.state.Player(player)
		if len(ps.Pieces) == 0 {
			b.WriteString("  [dimgray]all placed[-]\n")
			continue
		}
		names := make([]string, len(ps.Pieces))
		for i, piece := range ps.Pieces {
			name := string(piece.Name)
			if hasSelection && player == t.state.Current && piece.Name == selected.Name {
				name = "[::r]" + name + "[::-]"
			}
			names[i] = name
		}
		b.WriteString("  " + strings.Join(names, " ") + "\n")
	}
	return b.String()
}

func (t *PieceTray) playerColorCode(p rules.Player) int {
	if p == rules.Player2 {
		return t.cfg.Theme.Colors.Player2Color
	}
	return t.cfg.Theme.Colors.Player1Color
}

// colorTag formats c as a tview color tag.
func colorTag(c tcell.Color) string {
	hex := c.Hex()
	if hex < 0 {
		return "[white]"
	}
	return fmt.Sprintf("[#%06x]", hex)
}
