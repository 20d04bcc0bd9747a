// blokus-local is a terminal application to play a two-player polyomino
// placement game, hot seat or against the computer.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"blokus-local/config"
	"blokus-local/engine"
	"blokus-local/engine/local"
	"blokus-local/rules"
	"blokus-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagMode       = flag.String("mode", "", "Opponent: human (hot seat) or computer")
	flagDifficulty = flag.String("difficulty", "", "Computer level: easy, medium or hard")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
	flagInitConfig = flag.Bool("init-config", false, "Write the default config file and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger zerolog.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("blokus-local %s\n", Version)
		return
	}

	if *flagInitConfig {
		path, err := config.WriteDefault()
		switch {
		case config.IsExist(err):
			fmt.Printf("Config already exists at %s\n", path)
		case err != nil:
			fmt.Printf("Could not write config: %s\n", err)
			os.Exit(1)
		default:
			fmt.Printf("Wrote default config to %s\n", path)
		}
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logFile, err := openLog(cfg.Log)
	if err != nil {
		fmt.Printf("Could not open log file: %s\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger = zerolog.New(logFile).Level(cfg.Log.LogLevel()).With().Timestamp().Logger()

	gameCfg, err := buildGameConfigFromFlags(cfg.Game.Engine())
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	logger.Info().Str("version", Version).Stringer("mode", gameCfg.Mode).Msg("starting")

	// Check if quick start requested
	quickStart := *flagQuickStart || *flagMode != "" || *flagDifficulty != "" || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ▦ blokus ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(app, cfg, gameHint)

	// Create game layout with board and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(handleBoardKey)

	// Game setup screen
	setupUI := ui.NewGameSetup(gameCfg,
		func(c engine.GameConfig) {
			startGame(c)
		},
		func() {
			app.Stop()
		},
	)

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI, ui.SetupCardWidth, ui.SetupCardHeight), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)

	if quickStart {
		startGame(gameCfg)
		// Enter focus mode if requested
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		logger.Error().Err(err).Msg("application stopped")
		closeGame()
		panic(err)
	}
	closeGame()
}

// closeGame logs the transcript of the game on the board, then disconnects
// its engine.
func closeGame() {
	if transcript := gameBoard.Transcript(); transcript != "" {
		logger.Info().Str("transcript", transcript).Msg("game closed")
	}
	gameBoard.Close()
}

// handleBoardKey is the game board's input capture.
func handleBoardKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveSelection(-1, 0)
	case tcell.KeyDown:
		gameBoard.MoveSelection(1, 0)
	case tcell.KeyLeft:
		gameBoard.MoveSelection(0, -1)
	case tcell.KeyRight:
		gameBoard.MoveSelection(0, 1)
	case tcell.KeyEnter:
		gameBoard.PlaceSelected()
	case tcell.KeyTab:
		gameBoard.CyclePiece(1)
	case tcell.KeyBacktab:
		gameBoard.CyclePiece(-1)
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			closeGame()
			rootPage.SwitchToPage("setup")
		case 'h':
			gameBoard.MoveSelection(0, -1)
		case 'j':
			gameBoard.MoveSelection(1, 0)
		case 'k':
			gameBoard.MoveSelection(-1, 0)
		case 'l':
			gameBoard.MoveSelection(0, 1)
		case 'n':
			gameBoard.CyclePiece(1)
		case 'p':
			gameBoard.CyclePiece(-1)
		case 'r':
			gameBoard.TransformSelected(rules.TransformRotate)
		case 'm':
			gameBoard.TransformSelected(rules.TransformFlip)
		case '0':
			gameBoard.TransformSelected(rules.TransformReset)
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
		}
	}
	return nil
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	closeGame()

	eng, err := local.NewLocalEngine(gameCfg, logger)
	if err == nil {
		err = gameBoard.ConnectEngine(eng, gameCfg)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to start game")
		// Show error modal
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
}

// buildGameConfigFromFlags applies command-line flags over the configured defaults.
func buildGameConfigFromFlags(gameCfg engine.GameConfig) (engine.GameConfig, error) {
	if *flagMode != "" {
		mode, ok := rules.ParseMode(*flagMode)
		if !ok {
			return gameCfg, fmt.Errorf("unknown mode %q (human or computer)", *flagMode)
		}
		gameCfg.Mode = mode
	}

	if *flagDifficulty != "" {
		d, ok := rules.ParseDifficulty(*flagDifficulty)
		if !ok {
			return gameCfg, fmt.Errorf("unknown difficulty %q (easy, medium or hard)", *flagDifficulty)
		}
		gameCfg.Difficulty = d
		// A difficulty only makes sense against the computer
		if *flagMode == "" {
			gameCfg.Mode = rules.ModeComputer
		}
	}

	return gameCfg, nil
}

// openLog opens the debug log for appending. Level "disabled" discards output.
func openLog(lc config.LogConfig) (io.WriteCloser, error) {
	if lc.LogLevel() == zerolog.Disabled {
		return nopCloser{io.Discard}, nil
	}
	path, err := lc.Path()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
