package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground: true,
		FullWidthLetters:     false,
		Colors: ConfigColors{
			BoardColor:     236,
			BoardColorAlt:  237,
			Player1Color:   33,
			Player2Color:   202,
			CornerColor:    244,
			LineColor:      245,
			CursorColorFG:  15,
			CursorColorBG:  4,
			PreviewColorOK: 34,
			PreviewColorNG: 160,
		},
		Symbols: ConfigSymbols{
			Player1:     '█',
			Player2:     '█',
			Empty:       '·',
			StartCorner: '◆',
			Preview:     '▒',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameConfig{
			DefaultMode:       "computer",
			DefaultDifficulty: "medium",
			ThinkDelayMS:      500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
