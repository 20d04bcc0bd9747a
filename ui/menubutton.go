package ui

import (
	"github.com/gdamore/tcell/v2"
)

// MenuButton is a styled button component.
type MenuButton struct {
	label    string
	primary  bool
	focused  bool
	onSelect func()
}

// NewMenuButton creates a new menu button. A primary button gets an arrow.
func NewMenuButton(label string, primary bool, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		primary:  primary,
		onSelect: onSelect,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// HandleKey fires the button on Enter or space.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	if event.Key() == tcell.KeyEnter || (event.Key() == tcell.KeyRune && event.Rune() == ' ') {
		if b.onSelect != nil {
			b.onSelect()
		}
		return true
	}
	return false
}

func (b *MenuButton) text() string {
	if b.primary {
		return "▶ " + b.label
	}
	return b.label
}

// Draw renders the button at the given position and returns its width.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.text()
	width := b.Width()

	if b.focused {
		// Filled pill, bright text
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		drawText(screen, label, x+1, y, style)
		return width
	}

	// Dim text with brackets, no fill
	dimStyle := tcell.StyleDefault.
		Foreground(MenuColors.Hint).
		Background(MenuColors.CardBG)
	bracketStyle := tcell.StyleDefault.
		Foreground(MenuColors.Border).
		Background(MenuColors.CardBG)

	screen.SetContent(x, y, '[', nil, bracketStyle)
	col := drawText(screen, label, x+1, y, dimStyle)
	screen.SetContent(col, y, ']', nil, bracketStyle)
	return width
}

// Width returns the button width.
func (b *MenuButton) Width() int {
	return len([]rune(b.text())) + 2 // 1 padding on each side (or brackets)
}
