package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// labelColumn is where inputs start, after the "▸ ◈ Label" prefix.
const labelColumn = 16

// maxDelayDigits bounds the delay to under 100 seconds.
const maxDelayDigits = 5

// DelayInput is the think delay row of the setup card. Editing is done by a
// tview.InputField restricted to digits; the row adds the card's label and
// brackets around it.
type DelayInput struct {
	label   string
	value   int
	focused bool
	field   *tview.InputField
}

// NewDelayInput creates the row. An empty field means no delay.
func NewDelayInput(label string, initial int, onChange func(int)) *DelayInput {
	d := &DelayInput{label: label, value: initial}
	d.field = tview.NewInputField().
		SetFieldWidth(maxDelayDigits + 1).
		SetAcceptanceFunc(acceptDelay).
		SetFieldBackgroundColor(MenuColors.InputBG).
		SetFieldTextColor(MenuColors.Label)
	d.field.SetBackgroundColor(MenuColors.CardBG)
	d.field.SetText(strconv.Itoa(initial))
	d.field.SetChangedFunc(func(text string) {
		ms, err := strconv.Atoi(text)
		if err != nil {
			ms = 0
		}
		d.value = ms
		if onChange != nil {
			onChange(ms)
		}
	})
	return d
}

// acceptDelay lets through up to maxDelayDigits digits.
func acceptDelay(text string, _ rune) bool {
	if len(text) > maxDelayDigits {
		return false
	}
	for _, ch := range text {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// SetFocused moves the text cursor in or out of the field.
func (d *DelayInput) SetFocused(focused bool) {
	d.focused = focused
	if focused {
		d.field.Focus(nil)
	} else {
		d.field.Blur()
	}
}

// HandleKey passes editing keys to the field. Keys that move between rows
// or confirm the card are left to the caller.
func (d *DelayInput) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyTab, tcell.KeyBacktab, tcell.KeyEnter, tcell.KeyEsc:
		return false
	}
	d.field.InputHandler()(event, func(tview.Primitive) {})
	return true
}

// Draw renders the row and returns the number of rows used.
func (d *DelayInput) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)

	marker, markerStyle := ' ', bgStyle
	if d.focused {
		marker, markerStyle = '▸', selectedStyle
	}
	screen.SetContent(x, y, marker, nil, markerStyle)
	screen.SetContent(x+2, y, '◈', nil, accentStyle)
	drawText(screen, d.label, x+4, y, labelStyle)

	// [ 500    ]
	col := x + labelColumn
	screen.SetContent(col, y, '[', nil, labelStyle)
	d.field.SetRect(col+1, y, maxDelayDigits+1, 1)
	d.field.Draw(screen)
	screen.SetContent(col+maxDelayDigits+2, y, ']', nil, labelStyle)

	return 1
}

// Value returns the delay in milliseconds.
func (d *DelayInput) Value() int {
	return d.value
}
