package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// LevelSlider is a horizontal slider component for selecting a level.
type LevelSlider struct {
	label      string
	min        int
	max        int
	value      int
	focused    bool
	onChange   func(int)
	valueLabel func(int) string
}

// NewLevelSlider creates a new level slider. initial is clamped to the range.
func NewLevelSlider(label string, min, max, initial int, onChange func(int)) *LevelSlider {
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &LevelSlider{
		label:      label,
		min:        min,
		max:        max,
		value:      initial,
		onChange:   onChange,
		valueLabel: strconv.Itoa,
	}
}

// SetValueLabels replaces the number shown after the bar.
func (s *LevelSlider) SetValueLabels(f func(int) string) {
	s.valueLabel = f
}

// SetFocused sets the focus state.
func (s *LevelSlider) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (s *LevelSlider) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		s.SetValue(s.value - 1)
		return true
	case tcell.KeyRight:
		s.SetValue(s.value + 1)
		return true
	}
	return false
}

// Draw renders the slider and returns the number of rows used.
func (s *LevelSlider) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)

	col := x

	if s.focused {
		screen.SetContent(col, y, '▸', nil, selectedStyle)
	} else {
		screen.SetContent(col, y, ' ', nil, bgStyle)
	}
	col += 2

	// ◈ Level
	screen.SetContent(col, y, '◈', nil, accentStyle)
	drawText(screen, s.label, col+2, y, labelStyle)
	col = x + labelColumn

	arrowStyle := unselectedStyle
	if s.focused {
		arrowStyle = selectedStyle
	}
	screen.SetContent(col, y, '◀', nil, arrowStyle)
	col += 2

	// One block per level, filled up to the value
	for i := s.min; i <= s.max; i++ {
		char := '░'
		style := unselectedStyle
		if i <= s.value {
			char = '█'
			style = selectedStyle
		}
		screen.SetContent(col, y, char, nil, style)
		screen.SetContent(col+1, y, char, nil, style)
		col += 2
	}
	col++

	screen.SetContent(col, y, '▶', nil, arrowStyle)
	drawText(screen, s.valueLabel(s.value), col+2, y, labelStyle)

	return 1
}

// Value returns the current slider value.
func (s *LevelSlider) Value() int {
	return s.value
}

// SetValue sets the slider value. Values outside the range are ignored.
func (s *LevelSlider) SetValue(v int) {
	if v >= s.min && v <= s.max && v != s.value {
		s.value = v
		if s.onChange != nil {
			s.onChange(s.value)
		}
	}
}
