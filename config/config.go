package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"blokus-local/engine"
	"blokus-local/rules"
)

var (
	cfgFile = "blokus-local/config.json"
	logFile = "blokus-local/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor     int `json:"board" env:"BLOKUS_COLOR_BOARD"`
	BoardColorAlt  int `json:"board_alt" env:"BLOKUS_COLOR_BOARD_ALT"`
	Player1Color   int `json:"player1" env:"BLOKUS_COLOR_PLAYER1"`
	Player2Color   int `json:"player2" env:"BLOKUS_COLOR_PLAYER2"`
	CornerColor    int `json:"corner" env:"BLOKUS_COLOR_CORNER"`
	LineColor      int `json:"line" env:"BLOKUS_COLOR_LINE"`
	CursorColorFG  int `json:"cursor_fg" env:"BLOKUS_COLOR_CURSOR_FG"`
	CursorColorBG  int `json:"cursor_bg" env:"BLOKUS_COLOR_CURSOR_BG"`
	PreviewColorOK int `json:"preview_ok" env:"BLOKUS_COLOR_PREVIEW_OK"`
	PreviewColorNG int `json:"preview_bad" env:"BLOKUS_COLOR_PREVIEW_BAD"`
}

type ConfigSymbols struct {
	Player1     rune `json:"player1"`
	Player2     rune `json:"player2"`
	Empty       rune `json:"empty"`
	StartCorner rune `json:"start_corner"`
	Preview     rune `json:"preview"`
}

type Theme struct {
	DrawCursorBackground bool          `json:"draw_cursor_bg"`
	FullWidthLetters     bool          `json:"fullwidth_letters"`
	Colors               ConfigColors  `json:"colors"`
	Symbols              ConfigSymbols `json:"symbols"`
}

// GameConfig holds the defaults offered on the setup screen.
type GameConfig struct {
	DefaultMode       string `json:"default_mode" env:"BLOKUS_MODE" env-default:"computer"`
	DefaultDifficulty string `json:"default_difficulty" env:"BLOKUS_DIFFICULTY" env-default:"medium"`
	ThinkDelayMS      int    `json:"think_delay_ms" env:"BLOKUS_THINK_DELAY_MS"`
	Seed              uint64 `json:"seed" env:"BLOKUS_SEED"`
}

// LogConfig holds logger settings. An empty File means the XDG state dir.
type LogConfig struct {
	Level string `json:"level" env:"BLOKUS_LOG_LEVEL" env-default:"info"`
	File  string `json:"file" env:"BLOKUS_LOG_FILE"`
}

type Config struct {
	Theme Theme      `json:"theme"`
	Game  GameConfig `json:"game"`
	Log   LogConfig  `json:"log"`
}

// InitConfig loads the config file from the XDG config dirs if there is one,
// then applies BLOKUS_* environment overrides.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		return loadEnv()
	}
	return Load(absPath)
}

// Load reads the config at path over the defaults, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func loadEnv() (*Config, error) {
	config := DefaultConfig
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Player1, c.Theme.Symbols.Player2, c.Theme.Symbols.Empty, c.Theme.Symbols.StartCorner, c.Theme.Symbols.Preview} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	colors := c.Theme.Colors
	for _, col := range []int{colors.BoardColor, colors.BoardColorAlt, colors.Player1Color, colors.Player2Color, colors.CornerColor, colors.LineColor, colors.CursorColorFG, colors.CursorColorBG, colors.PreviewColorOK, colors.PreviewColorNG} {
		if col < 0 || col > 255 {
			return &InvalidConfig{fmt.Sprintf("color %d is outside the 256-color palette", col)}
		}
	}
	if _, ok := rules.ParseMode(c.Game.DefaultMode); !ok {
		return &InvalidConfig{fmt.Sprintf("unknown mode %q (human or computer)", c.Game.DefaultMode)}
	}
	if _, ok := rules.ParseDifficulty(c.Game.DefaultDifficulty); !ok {
		return &InvalidConfig{fmt.Sprintf("unknown difficulty %q (easy, medium or hard)", c.Game.DefaultDifficulty)}
	}
	if c.Game.ThinkDelayMS < 0 {
		return &InvalidConfig{"think_delay_ms must not be negative"}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	return nil
}

// Engine converts the game defaults into an engine configuration.
func (g GameConfig) Engine() engine.GameConfig {
	cfg := engine.DefaultConfig()
	if mode, ok := rules.ParseMode(g.DefaultMode); ok {
		cfg.Mode = mode
	}
	if d, ok := rules.ParseDifficulty(g.DefaultDifficulty); ok {
		cfg.Difficulty = d
	}
	cfg.ThinkDelay = time.Duration(g.ThinkDelayMS) * time.Millisecond
	cfg.Seed = g.Seed
	return cfg
}

// LogLevel returns the configured zerolog level.
func (l LogConfig) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Path returns the log file path, creating its directory.
func (l LogConfig) Path() (string, error) {
	if l.File != "" {
		if err := os.MkdirAll(filepath.Dir(l.File), 0o755); err != nil {
			return "", err
		}
		return l.File, nil
	}
	return xdg.StateFile(logFile)
}

// Save writes the config to the user's XDG config dir and returns the path.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

// WriteDefault writes the default config unless a config file already exists.
func WriteDefault() (string, error) {
	if absPath, err := xdg.SearchConfigFile(cfgFile); err == nil {
		return absPath, fs.ErrExist
	}
	config := DefaultConfig
	return config.Save()
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("write config %s: %w", filePath, err)
	}
	return nil
}

// IsExist reports whether err means WriteDefault found an existing file.
func IsExist(err error) bool {
	return errors.Is(err, fs.ErrExist)
}
