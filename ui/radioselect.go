package ui

import (
	"github.com/gdamore/tcell/v2"
)

// RadioOption represents a single radio button option.
type RadioOption struct {
	Label       string
	Description string
}

// RadioSelect is a radio button group.
type RadioSelect struct {
	label    string
	options  []RadioOption
	selected int
	focused  bool
	onChange func(int)
}

// NewRadioSelect creates a new radio select component.
func NewRadioSelect(label string, options []RadioOption, initial int, onChange func(int)) *RadioSelect {
	return &RadioSelect{
		label:    label,
		options:  options,
		selected: initial,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled; Up on the
// first option and Down on the last are left to the caller.
func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyUp:
		if r.selected == 0 {
			return false
		}
		r.SetSelected(r.selected - 1)
		return true
	case tcell.KeyDown:
		if r.selected == len(r.options)-1 {
			return false
		}
		r.SetSelected(r.selected + 1)
		return true
	case tcell.KeyLeft, tcell.KeyRight:
		// Left/Right cycle through the options
		next := r.selected + 1
		if event.Key() == tcell.KeyLeft {
			next = r.selected - 1
		}
		n := len(r.options)
		r.SetSelected(((next % n) + n) % n)
		return true
	}
	return false
}

// Draw renders the group and returns the number of rows used.
func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	row := y

	// ◈ Opponent
	screen.SetContent(x, row, '◈', nil, accentStyle)
	drawText(screen, r.label, x+2, row, labelStyle)
	row++

	for i, opt := range r.options {
		col := x + 2

		if r.focused && i == r.selected {
			screen.SetContent(col, row, '▸', nil, selectedStyle)
		} else {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
		col += 2

		style := unselectedStyle
		bullet := '○'
		if i == r.selected {
			bullet = '●'
			style = selectedStyle
		}
		screen.SetContent(col, row, bullet, nil, style)
		col = drawText(screen, opt.Label, col+2, row, style)

		if opt.Description != "" && col+1 < x+width {
			desc := []rune(opt.Description)
			if room := x + width - col - 1; len(desc) > room {
				desc = desc[:room]
			}
			drawText(screen, string(desc), col+1, row, hintStyle)
		}

		row++
	}

	return row - y
}

// Selected returns the currently selected index.
func (r *RadioSelect) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RadioSelect) SetSelected(index int) {
	if index >= 0 && index < len(r.options) {
		r.selected = index
		if r.onChange != nil {
			r.onChange(r.selected)
		}
	}
}
