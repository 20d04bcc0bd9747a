// Package ui specifies custom controls for tview to play a polyomino placement game in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blokus-local/config"
	"blokus-local/engine"
	"blokus-local/record"
	"blokus-local/rules"
	"blokus-local/types"
)

// Indices into BoardUI.styles.
const (
	styleBoard = iota
	styleBoardAlt
	stylePlayer1
	stylePlayer2
	styleCorner
	styleLine
	styleCursorFG
	styleCursorBG
	stylePreviewOK
	stylePreviewBad
)

type BoardUI struct {
	Box        *tview.Box
	state      rules.State
	hint       *tview.TextView
	cfg        *config.Config
	gameConfig engine.GameConfig
	finished   bool
	selRow     int
	selCol     int
	status     string
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	tray       *PieceTray
	focusMode  bool
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

// State returns the snapshot the board is drawing.
func (g *BoardUI) State() rules.State {
	return g.state
}

func (g *BoardUI) SelectedTile() *types.BoardPos {
	if g.selRow == -1 && g.selCol == -1 {
		return nil
	}
	return &types.BoardPos{Row: g.selRow, Col: g.selCol}
}

// MoveSelection moves the cursor. The first move puts it on the start
// corner of the player to move.
func (g *BoardUI) MoveSelection(dRow, dCol int) {
	if g.finished {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		corner := rules.StartCorner(g.state.Current)
		g.selRow, g.selCol = corner.Row, corner.Col
		return
	}
	if !rules.InBounds(g.selRow+dRow, g.selCol+dCol) {
		return
	}
	g.selRow += dRow
	g.selCol += dCol
}

func (g *BoardUI) ResetSelection() {
	g.selRow = -1
	g.selCol = -1
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:    tview.NewBox(),
		state:  rules.NewGame(rules.ModeHuman),
		hint:   hint,
		app:    app,
		selRow: -1,
		selCol: -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	// 2 characters per cell for square appearance
	boardW, boardH := rules.BoardSize*2, rules.BoardSize
	preview, previewOK := g.previewCells()
	symbols := g.cfg.Theme.Symbols

	for row := 0; row < rules.BoardSize; row++ {
		for col := 0; col < rules.BoardSize; col++ {
			bg := g.styles[styleBoard]
			if (row%2 + col%2) == 1 {
				bg = g.styles[styleBoardAlt]
			}
			fg := g.styles[styleLine]
			drawRune := symbols.Empty

			switch owner := g.state.Board[row][col]; owner {
			case rules.Player1, rules.Player2:
				fg = g.playerColor(owner)
				drawRune = g.playerSymbol(owner)
			default:
				if _, ok := g.openCorner(row, col); ok {
					fg = g.styles[styleCorner]
					drawRune = symbols.StartCorner
				}
			}

			if _, ok := preview[rules.Pos{Row: row, Col: col}]; ok {
				fg = g.playerColor(g.state.Current)
				drawRune = symbols.Preview
				if previewOK {
					bg = g.styles[stylePreviewOK]
				} else {
					bg = g.styles[stylePreviewBad]
				}
			} else if row == g.selRow && col == g.selCol && g.cfg.Theme.DrawCursorBackground {
				bg = g.styles[styleCursorBG]
				if g.state.Board[row][col] == rules.NoPlayer {
					fg = g.styles[styleCursorFG]
				}
			}

			drawCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), drawRune, col, row, x+4, y)
		}
	}
	drawCoordinates(screen, x, y, g)
	// Add offset for coordinate display
	return x, y, boardW + 4, boardH + 2
}

// previewCells returns the cells the selected piece covers at the cursor.
func (g *BoardUI) previewCells() (map[rules.Pos]struct{}, bool) {
	if g.finished || g.SelectedTile() == nil {
		return nil, false
	}
	cells, err := g.state.PreviewPlacement(g.selRow, g.selCol)
	if errors.Is(err, rules.ErrNoSelection) {
		return nil, false
	}
	set := make(map[rules.Pos]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return set, err == nil
}

// openCorner reports the player whose unused start corner is (row, col).
func (g *BoardUI) openCorner(row, col int) (rules.Player, bool) {
	for _, p := range []rules.Player{rules.Player1, rules.Player2} {
		corner := rules.StartCorner(p)
		if corner.Row == row && corner.Col == col && !g.state.Player(p).HasPlacedFirstPiece {
			return p, true
		}
	}
	return rules.NoPlayer, false
}

func (g *BoardUI) playerColor(p rules.Player) tcell.Color {
	if p == rules.Player2 {
		return g.styles[stylePlayer2]
	}
	return g.styles[stylePlayer1]
}

func (g *BoardUI) playerSymbol(p rules.Player) rune {
	if p == rules.Player2 {
		return g.cfg.Theme.Symbols.Player2
	}
	return g.cfg.Theme.Symbols.Player1
}

// ConnectEngine connects the board to a game engine and starts a game.
func (g *BoardUI) ConnectEngine(e engine.GameEngine, gameCfg engine.GameConfig) error {
	g.finished = false
	g.status = ""
	g.eng = e
	g.gameConfig = gameCfg

	e.OnMove(func(entry types.MoveEntry, _ rules.State) {
		g.update(func() {
			if entry.Pass {
				g.status = fmt.Sprintf("○ %s has no legal move and passes", g.playerName(entry.Player))
			} else if g.state.IsComputer(entry.Player) {
				g.status = "◌ Computer played " + record.FormatMove(entry)
			}
			g.sync()
		})
	})

	e.OnGameEnd(func(outcome rules.Outcome, _ rules.State) {
		g.update(func() {
			g.finished = true
			g.status = ""
			g.ResetSelection()
			g.sync()
		})
	})

	if err := e.Start(); err != nil {
		return err
	}
	g.ResetSelection()
	g.sync()
	return nil
}

// update applies f on the UI goroutine. Engine callbacks arrive either from
// an input handler or from the computer's timer.
func (g *BoardUI) update(f func()) {
	if g.app == nil {
		f()
		return
	}
	// Spawn goroutine to avoid deadlock when called from main thread
	go g.app.QueueUpdateDraw(f)
}

// sync pulls the engine's current state.
func (g *BoardUI) sync() {
	if g.eng != nil {
		g.state = g.eng.State()
	}
	g.refreshHint()
}

func (g *BoardUI) canAct() bool {
	return !g.finished && g.eng != nil && g.eng.IsMyTurn()
}

// PlaceSelected places the selected piece at the cursor.
func (g *BoardUI) PlaceSelected() {
	if !g.canAct() || g.SelectedTile() == nil {
		return
	}
	err := g.eng.PlacePiece(g.selRow, g.selCol)
	g.report(err)
}

// CyclePiece selects the next (delta 1) or previous (delta -1) remaining
// piece of the player to move.
func (g *BoardUI) CyclePiece(delta int) {
	if !g.canAct() {
		return
	}
	pieces := g.state.Player(g.state.Current).Pieces
	if len(pieces) == 0 {
		return
	}
	next := 0
	if delta < 0 {
		next = len(pieces) - 1
	}
	if sel, ok := g.state.Selection(); ok {
		for i, p := range pieces {
			if p.Name == sel.Name {
				next = ((i+delta)%len(pieces) + len(pieces)) % len(pieces)
				break
			}
		}
	}
	if g.SelectedTile() == nil {
		g.MoveSelection(0, 0)
	}
	g.report(g.eng.SelectPiece(pieces[next].Name))
}

// TransformSelected rotates, mirrors or resets the selected piece.
func (g *BoardUI) TransformSelected(t rules.Transform) {
	if !g.canAct() {
		return
	}
	g.report(g.eng.Transform(t))
}

// report shows err in the status line and refreshes the snapshot.
func (g *BoardUI) report(err error) {
	switch {
	case err == nil:
		g.status = ""
	case errors.Is(err, rules.ErrIllegalPlacement):
		g.status = "✗ " + err.Error()
		if reason := illegalReason(err); reason != nil {
			g.status = "✗ " + reason.Error()
		}
	default:
		g.status = "✗ " + err.Error()
	}
	g.sync()
}

// illegalReason finds which rule a placement broke.
func illegalReason(err error) error {
	for _, reason := range []error{rules.ErrOutOfBounds, rules.ErrOverlap, rules.ErrSideContact, rules.ErrStartCornerMissed, rules.ErrNoCornerContact} {
		if errors.Is(err, reason) {
			return reason
		}
	}
	return nil
}

// Transcript returns the connected game's transcript, or "" when no engine
// is connected or nothing was played yet.
func (g *BoardUI) Transcript() string {
	if g.eng == nil || len(g.eng.History()) == 0 {
		return ""
	}
	return g.eng.Transcript()
}

// Close disconnects the engine.
func (g *BoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),     // styleBoard
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),  // styleBoardAlt
		tcell.PaletteColor(c.Theme.Colors.Player1Color),   // stylePlayer1
		tcell.PaletteColor(c.Theme.Colors.Player2Color),   // stylePlayer2
		tcell.PaletteColor(c.Theme.Colors.CornerColor),    // styleCorner
		tcell.PaletteColor(c.Theme.Colors.LineColor),      // styleLine
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),  // styleCursorFG
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),  // styleCursorBG
		tcell.PaletteColor(c.Theme.Colors.PreviewColorOK), // stylePreviewOK
		tcell.PaletteColor(c.Theme.Colors.PreviewColorNG), // stylePreviewBad
	}
	g.cfg = c
}

func (g *BoardUI) playerName(p rules.Player) string {
	if g.state.IsComputer(p) {
		return "Computer"
	}
	return p.String()
}

func (g *BoardUI) refreshHint() {
	var history []types.MoveEntry
	if g.eng != nil {
		history = g.eng.History()
	}
	if g.infoPanel != nil {
		g.infoPanel.SetState(g.state, history, g.gameConfig)
	}
	if g.tray != nil {
		g.tray.SetState(g.state)
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	g.hint.SetText(g.hintText())
}

func (g *BoardUI) hintText() string {
	if g.finished {
		return fmt.Sprintf("  Game over · %s\n  q · return to menu", describeOutcome(g.state))
	}

	var turnLine string
	switch {
	case g.state.Phase == rules.TurnOver:
		turnLine = "  ◌ Thinking..."
	case g.eng != nil && g.eng.IsMyTurn():
		turnLine = fmt.Sprintf("  %c %s to move", g.playerSymbol(g.state.Current), g.playerName(g.state.Current))
	}
	if g.status != "" {
		turnLine += "   " + g.status
	}

	controlsLine := "  hjkl/↑↓←→ move  tab/n p piece  r rotate  m mirror  0 reset  ⏎ place  f focus  q quit"
	return turnLine + "\n" + controlsLine
}

// describeOutcome words the final result: lower remaining total wins.
func describeOutcome(s rules.State) string {
	o := s.Outcome()
	switch o.Status {
	case rules.Win:
		name := o.Winner.String()
		if s.IsComputer(o.Winner) {
			name = "Computer"
		}
		return fmt.Sprintf("%s wins, %d to %d", name, o.Scores[o.Winner-1], o.Scores[o.Winner.Opponent()-1])
	case rules.Draw:
		return fmt.Sprintf("Draw, %d each", o.Scores[0])
	default:
		return o.String()
	}
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.finished
}

// drawCell draws a board cell (2 characters wide)
func drawCell(s tcell.Screen, c tcell.Style, r rune, col, row, l, t int) {
	s.SetContent(l+col*2, t+row, r, nil, c)
	s.SetContent(l+col*2+1, t+row, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *BoardUI) {
	hCoord := int('A')
	if ui.cfg.Theme.FullWidthLetters {
		hCoord = int('Ａ')
	}

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursorBG])

	for col := 0; col < rules.BoardSize; col++ {
		_style := style
		if col == ui.selCol {
			_style = highlight
		}
		// 2-char cells
		s.SetContent(x+4+(col*2), y+rules.BoardSize+1, rune(hCoord+col), nil, _style)
		s.SetContent(x+4+(col*2)+1, y+rules.BoardSize+1, ' ', nil, _style)
	}

	// Rows count down the screen, matching record.Coord
	for row := 0; row < rules.BoardSize; row++ {
		_style := style
		if row == ui.selRow {
			_style = highlight
		}
		displayNum := row + 1
		tensRune := ' '
		if displayNum >= 10 {
			tensRune = rune('0' + displayNum/10)
		}
		s.SetContent(x+1, y+row, tensRune, nil, _style)
		s.SetContent(x+2, y+row, rune('0'+(displayNum%10)), nil, _style)
	}
}
