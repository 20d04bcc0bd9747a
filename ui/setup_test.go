package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blokus-local/engine"
	"blokus-local/rules"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func screenRow(screen tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestSetupStartsWithDefaults(t *testing.T) {
	// Given: the setup card with the Start button focused
	var started *engine.GameConfig
	setup := NewGameSetup(engine.DefaultConfig(), func(cfg engine.GameConfig) {
		started = &cfg
	}, nil)

	// When: pressing Enter
	setup.HandleKey(key(tcell.KeyEnter))

	// Then: the defaults are started
	require.NotNil(t, started)
	assert.Equal(t, engine.DefaultConfig(), *started)
}

func TestSetupEditsEveryField(t *testing.T) {
	var started *engine.GameConfig
	setup := NewGameSetup(engine.DefaultConfig(), func(cfg engine.GameConfig) {
		started = &cfg
	}, nil)

	// Mode: back to the radio group, switch to hot seat
	for i := 0; i < 3; i++ {
		setup.HandleKey(key(tcell.KeyBacktab))
	}
	setup.HandleKey(key(tcell.KeyUp))

	// Level: one step right
	setup.HandleKey(key(tcell.KeyTab))
	setup.HandleKey(key(tcell.KeyRight))

	// Delay: clear and type 250
	setup.HandleKey(key(tcell.KeyTab))
	for i := 0; i < 3; i++ {
		setup.HandleKey(key(tcell.KeyBackspace2))
	}
	for _, r := range "250" {
		setup.HandleKey(char(r))
	}

	setup.HandleKey(key(tcell.KeyTab))
	setup.HandleKey(key(tcell.KeyEnter))

	require.NotNil(t, started)
	assert.Equal(t, rules.ModeHuman, started.Mode)
	assert.Equal(t, rules.Hard, started.Difficulty)
	assert.Equal(t, 250*time.Millisecond, started.ThinkDelay)
}

func TestSetupArrowKeysMoveBetweenButtons(t *testing.T) {
	quit := false
	setup := NewGameSetup(engine.DefaultConfig(), nil, func() { quit = true })

	setup.HandleKey(key(tcell.KeyRight))
	setup.HandleKey(key(tcell.KeyEnter))

	assert.True(t, quit)
}

func TestSetupEscapeCancels(t *testing.T) {
	quit := false
	setup := NewGameSetup(engine.DefaultConfig(), nil, func() { quit = true })

	setup.HandleKey(key(tcell.KeyEsc))

	assert.True(t, quit)
}

func TestSetupDraw(t *testing.T) {
	setup := NewGameSetup(engine.DefaultConfig(), nil, nil)
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(SetupCardWidth, SetupCardHeight)
	setup.SetRect(0, 0, SetupCardWidth, SetupCardHeight)

	setup.Draw(screen)

	assert.Contains(t, screenRow(screen, 2, SetupCardWidth), "B L O K U S")
	assert.Contains(t, screenRow(screen, 8, SetupCardWidth), "● Computer")
	assert.Contains(t, screenRow(screen, 10, SetupCardWidth), "medium")
	assert.Contains(t, screenRow(screen, 11, SetupCardWidth), "500")
	assert.Contains(t, screenRow(screen, 15, SetupCardWidth), "▶ Start")
}

func TestRadioSelectLeavesAtEnds(t *testing.T) {
	var changes []int
	radio := NewRadioSelect("Opponent", []RadioOption{{Label: "a"}, {Label: "b"}}, 0, func(i int) {
		changes = append(changes, i)
	})

	assert.False(t, radio.HandleKey(key(tcell.KeyUp)))
	assert.True(t, radio.HandleKey(key(tcell.KeyDown)))
	assert.False(t, radio.HandleKey(key(tcell.KeyDown)))
	assert.True(t, radio.HandleKey(key(tcell.KeyRight)))

	assert.Equal(t, []int{1, 0}, changes)
	assert.Equal(t, 0, radio.Selected())
}

func TestLevelSliderClamps(t *testing.T) {
	slider := NewLevelSlider("Level", 1, 3, 9, nil)
	assert.Equal(t, 3, slider.Value())

	slider.HandleKey(key(tcell.KeyRight))
	assert.Equal(t, 3, slider.Value())

	slider.HandleKey(key(tcell.KeyLeft))
	slider.HandleKey(key(tcell.KeyLeft))
	slider.HandleKey(key(tcell.KeyLeft))
	assert.Equal(t, 1, slider.Value())
}

func TestDelayInput(t *testing.T) {
	var last int
	input := NewDelayInput("Delay ms", 500, func(ms int) { last = ms })

	input.HandleKey(char('x'))
	assert.Equal(t, 500, input.Value())

	input.HandleKey(key(tcell.KeyLeft))
	input.HandleKey(key(tcell.KeyLeft))
	input.HandleKey(key(tcell.KeyDelete))
	assert.Equal(t, 50, last)

	for _, r := range "9999" {
		input.HandleKey(char(r))
	}
	assert.Equal(t, 59990, input.Value(), "five digits at most")

	// Row movement and confirmation stay with the card
	for _, k := range []tcell.Key{tcell.KeyUp, tcell.KeyDown, tcell.KeyTab, tcell.KeyEnter} {
		assert.False(t, input.HandleKey(key(k)))
	}
}

func TestDelayInputEmptyMeansNoDelay(t *testing.T) {
	last := -1
	input := NewDelayInput("Delay ms", 40, func(ms int) { last = ms })

	input.HandleKey(key(tcell.KeyBackspace2))
	input.HandleKey(key(tcell.KeyBackspace2))

	assert.Equal(t, 0, last)
	assert.Equal(t, 0, input.Value())
}
