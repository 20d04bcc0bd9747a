package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuCard is a styled card container with rounded borders and a title.
type MenuCard struct {
	*tview.Box
	title   string
	focused bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title string) *MenuCard {
	return &MenuCard{
		Box:   tview.NewBox(),
		title: title,
	}
}

// Draw fills the card, draws the rounded border and the title row.
func (c *MenuCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	// ╭───╮
	screen.SetContent(x, y, '╭', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, y, '╮', nil, borderStyle)

	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}

	// ╰───╯
	screen.SetContent(x, y+height-1, '╰', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y+height-1, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, y+height-1, '╯', nil, borderStyle)

	if c.title == "" {
		return
	}

	// ▦  B L O K U S ▦
	titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	titleLen := len([]rune(c.title)) + 6
	titleX := x + (width-titleLen)/2
	titleY := y + 2

	screen.SetContent(titleX, titleY, '▦', nil, accentStyle)
	drawText(screen, c.title, titleX+3, titleY, titleStyle)
	screen.SetContent(titleX+titleLen-1, titleY, '▦', nil, accentStyle)

	c.DrawDivider(screen, y+4)
}

func (c *MenuCard) borderStyle() tcell.Style {
	borderColor := MenuColors.Border
	if c.focused || c.HasFocus() {
		borderColor = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(borderColor).Background(MenuColors.CardBG)
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	x, _, width, _ := c.GetInnerRect()
	borderStyle := c.borderStyle()

	screen.SetContent(x, divY, '├', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, divY, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, divY, '┤', nil, borderStyle)
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}

// drawText writes text starting at (x, y) and returns the column after it.
func drawText(screen tcell.Screen, text string, x, y int, style tcell.Style) int {
	for _, ch := range text {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// drawCentered writes text centered in a row of the given width.
func drawCentered(screen tcell.Screen, text string, x, y, width int, style tcell.Style) {
	n := len([]rune(text))
	if n > width {
		n = width
	}
	drawText(screen, string([]rune(text)[:n]), x+(width-n)/2, y, style)
}
