package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette for the setup card.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	CardBG      tcell.Color
	InputBG     tcell.Color
	Title       tcell.Color
	TitleAccent tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	Selected    tcell.Color
	Unselected  tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
}{
	Border:      tcell.PaletteColor(60),
	BorderFocus: tcell.PaletteColor(109),
	CardBG:      tcell.PaletteColor(236),
	InputBG:     tcell.PaletteColor(238),
	Title:       tcell.PaletteColor(255),
	TitleAccent: tcell.PaletteColor(208), // Player 2 orange
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(245),
	Selected:    tcell.PaletteColor(39), // Player 1 blue
	Unselected:  tcell.PaletteColor(245),
	ButtonFocus: tcell.PaletteColor(33),
	ButtonText:  tcell.PaletteColor(255),
}
