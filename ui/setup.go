package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blokus-local/engine"
	"blokus-local/rules"
)

// setupControl is a focusable row on the setup card.
type setupControl interface {
	SetFocused(bool)
	HandleKey(*tcell.EventKey) bool
}

// GameSetupUI is the new-game card: mode, difficulty, think delay and the
// start/quit buttons.
type GameSetupUI struct {
	*MenuCard

	config   engine.GameConfig
	onStart  func(engine.GameConfig)
	onCancel func()

	mode       *RadioSelect
	difficulty *LevelSlider
	delay      *DelayInput
	start      *MenuButton
	quit       *MenuButton

	controls []setupControl
	focus    int
}

// SetupCardWidth and SetupCardHeight size the card on screen.
const (
	SetupCardWidth  = 52
	SetupCardHeight = 20
)

// NewGameSetup creates the setup card with defaults taken from initial.
func NewGameSetup(initial engine.GameConfig, onStart func(engine.GameConfig), onCancel func()) *GameSetupUI {
	setup := &GameSetupUI{
		MenuCard: NewMenuCard("B L O K U S"),
		config:   initial,
		onStart:  onStart,
		onCancel: onCancel,
	}

	modeIndex := 0
	if initial.Mode == rules.ModeComputer {
		modeIndex = 1
	}
	setup.mode = NewRadioSelect("Opponent", []RadioOption{
		{Label: "Hot seat", Description: "two players, one keyboard"},
		{Label: "Computer", Description: "you are Player 1"},
	}, modeIndex, func(i int) {
		setup.config.Mode = rules.ModeHuman
		if i == 1 {
			setup.config.Mode = rules.ModeComputer
		}
	})

	setup.difficulty = NewLevelSlider("Level", int(rules.Easy), int(rules.Hard), int(initial.Difficulty), func(v int) {
		setup.config.Difficulty = rules.Difficulty(v)
	})
	setup.difficulty.SetValueLabels(func(v int) string {
		return rules.Difficulty(v).String()
	})

	setup.delay = NewDelayInput("Delay ms", int(initial.ThinkDelay/time.Millisecond), func(ms int) {
		setup.config.ThinkDelay = time.Duration(ms) * time.Millisecond
	})

	setup.start = NewMenuButton("Start", true, func() {
		if setup.onStart != nil {
			setup.onStart(setup.config)
		}
	})
	setup.quit = NewMenuButton("Quit", false, func() {
		if setup.onCancel != nil {
			setup.onCancel()
		}
	})

	setup.controls = []setupControl{setup.mode, setup.difficulty, setup.delay, setup.start, setup.quit}
	setup.setFocus(len(setup.controls) - 2) // Start button
	return setup
}

// Config returns the configuration the card currently describes.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.config
}

func (s *GameSetupUI) setFocus(i int) {
	n := len(s.controls)
	s.focus = ((i % n) + n) % n
	for j, c := range s.controls {
		c.SetFocused(j == s.focus)
	}
}

// HandleKey routes a key to the focused control, or moves focus.
func (s *GameSetupUI) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyTab:
		s.setFocus(s.focus + 1)
		return true
	case tcell.KeyBacktab:
		s.setFocus(s.focus - 1)
		return true
	case tcell.KeyEsc:
		if s.onCancel != nil {
			s.onCancel()
		}
		return true
	}

	if s.controls[s.focus].HandleKey(event) {
		return true
	}

	// Up/Down leave the radio group at its ends and step between rows elsewhere
	switch event.Key() {
	case tcell.KeyUp:
		s.setFocus(s.focus - 1)
		return true
	case tcell.KeyDown:
		s.setFocus(s.focus + 1)
		return true
	case tcell.KeyLeft:
		if s.controls[s.focus] == s.quit {
			s.setFocus(s.focus - 1)
			return true
		}
	case tcell.KeyRight:
		if s.controls[s.focus] == s.start {
			s.setFocus(s.focus + 1)
			return true
		}
	}
	return false
}

// InputHandler returns the handler for this primitive.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		s.HandleKey(event)
	})
}

// Draw renders the card and its controls.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	s.MenuCard.Draw(screen)

	x, y, width, height := s.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	left := x + 3
	inner := width - 6
	row := y + 6

	row += s.mode.Draw(screen, left, row, inner)
	row++
	row += s.difficulty.Draw(screen, left, row, inner)
	row += s.delay.Draw(screen, left, row, inner)
	row++

	s.DrawDivider(screen, row)
	row += 2

	col := left
	col += s.start.Draw(screen, col, row) + 2
	s.quit.Draw(screen, col, row)

	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	drawCentered(screen, "tab/↑↓ field  ←→ change  ⏎ select", x, y+height-2, width, hintStyle)
}
