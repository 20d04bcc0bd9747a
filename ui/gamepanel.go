package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"blokus-local/engine"
	"blokus-local/record"
	"blokus-local/rules"
	"blokus-local/types"
)

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	state      rules.State
	history    []types.MoveEntry
	gameConfig engine.GameConfig
	hasState   bool
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetState updates the panel with the current game.
func (p *GameInfoPanel) SetState(state rules.State, history []types.MoveEntry, gameCfg engine.GameConfig) {
	p.state = state
	p.history = history
	p.gameConfig = gameCfg
	p.hasState = true
	p.refresh()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if !p.hasState {
		p.box.SetText("")
		return
	}
	p.box.SetText(p.text())
}

func (p *GameInfoPanel) text() string {
	var b strings.Builder
	s := p.state

	// Game Info section
	b.WriteString("[white::b]Game Info[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]Mode:[-:-:-] %s\n", modeLabel(s.Mode))
	if s.Mode == rules.ModeComputer {
		fmt.Fprintf(&b, "[white]Level:[-:-:-] %s\n", p.gameConfig.Difficulty)
	}
	fmt.Fprintf(&b, "[white]Move:[-:-:-] %d\n", len(p.history)+1)

	// Scores: cells left in hand, lower is better
	b.WriteString("\n[white::b]Cells left[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	for _, player := range []rules.Player{rules.Player1, rules.Player2} {
		ps := s.Player(player)
		marker := " "
		if player == s.Current && s.Phase != rules.GameEnded {
			marker = "[white]>[-]"
		}
		passed := ""
		if ps.Passed {
			passed = " [dimgray](out)[-]"
		}
		fmt.Fprintf(&b, "%s%-10s %2d [dimgray]%2d pcs[-]%s\n", marker, playerLabel(s, player), ps.Score(), len(ps.Pieces), passed)
	}

	if piece, ok := s.Selection(); ok {
		fmt.Fprintf(&b, "\n[white::b]Selected[-:-:-] %s [dimgray]%s[-]\n", piece.Name, record.OrientationCode(piece.Orientation))
		for _, row := range piece.Shape() {
			b.WriteString(" ")
			for _, filled := range row {
				if filled {
					b.WriteString("██")
				} else {
					b.WriteString("  ")
				}
			}
			b.WriteString("\n")
		}
	}

	if len(p.history) > 0 {
		b.WriteString("\n[white::b]Moves[-:-:-]\n")
		b.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		// Show last N moves that fit, with scroll
		maxVisible := 10
		start := 0
		if len(p.history) > maxVisible {
			start = len(p.history) - maxVisible
		}
		if start > 0 {
			fmt.Fprintf(&b, "[dimgray]  ··· %d earlier[-]\n", start)
		}
		for i := start; i < len(p.history); i++ {
			marker := " "
			if i == len(p.history)-1 {
				marker = "[white]>[-]"
			}
			fmt.Fprintf(&b, "%s[dimgray]%3d.[-] %s\n", marker, p.history[i].Number, record.FormatMove(p.history[i]))
		}
	}

	return b.String()
}

func modeLabel(m rules.Mode) string {
	if m == rules.ModeComputer {
		return "vs computer"
	}
	return "hot seat"
}

func playerLabel(s rules.State, p rules.Player) string {
	if s.IsComputer(p) {
		return "Computer"
	}
	return p.String()
}

const sidePanelWidth = 28

// sideColumn stacks the info panel over the piece tray.
func sideColumn(board *BoardUI) *tview.Flex {
	infoPanel := NewGameInfoPanel()
	tray := NewPieceTray(board.cfg)

	// Store references in board for updates
	board.infoPanel = infoPanel
	board.tray = tray
	board.refreshHint()

	column := tview.NewFlex().SetDirection(tview.FlexRow)
	column.AddItem(infoPanel.Box(), 0, 1, false)
	column.AddItem(tray.Box(), trayHeight, 0, false)
	return column
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth, maxHeight int) *tview.Flex {
	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)        // Left spacer
	centerRow.AddItem(form, maxWidth, 0, true) // Form with max width
	centerRow.AddItem(nil, 0, 1, false)        // Right spacer

	centered := tview.NewFlex().SetDirection(tview.FlexRow)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(centerRow, maxHeight, 0, true)
	centered.AddItem(nil, 0, 1, false)
	return centered
}

// RebuildNormalLayout restores the normal game layout with board, side panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	// Board takes the remaining space, side panel is fixed width
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(sideColumn(board), sidePanelWidth, 0, false)

	// Main vertical flex: board area on top, compact status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()

	boardWidth := rules.BoardSize*2 + 4 // 2 chars per cell + coordinates
	boardHeight := rules.BoardSize + 2  // + coordinates

	// Center board with flex spacers
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)               // left spacer
	centerRow.AddItem(board.Box, boardWidth, 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)               // right spacer

	gameFrame.AddItem(centerRow, boardHeight, 0, true) // center row (fixed height)
	gameFrame.AddItem(nil, 0, 1, false)                // bottom spacer
}
