package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickfall/internal/platform/tui"
)

var (
	flagLogFile   string
	flagAutopilot bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/A, Right/D   - Move paddle sideways
  Up/W, Down/S      - Move paddle forward/back
  Space             - Start, or launch the ball early
  Enter             - Start / next board
  P/Esc             - Pause and show the board breakdown
  R                 - Restart on a fresh board
  M                 - Back to the menu
  T                 - Toggle autopilot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - More lives, slower ball, fewer strong bricks
  normal - Default board, ball speeds up with score
  hard   - Fewer lives, faster ball, more strong bricks
  fixed  - No speed progression

Logs go to --log-file since the game owns the terminal.

Examples:
  brickfall play
  brickfall play --difficulty easy
  brickfall play --config ./brickfall.toml --log-file brickfall.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	playCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Start with the autopilot steering")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			fail("cannot open log file: %v", openErr)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "brickfall")
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game := tui.NewGame(tui.Options{
		Config:    cfg,
		Seed:      flagSeed,
		FPS:       cfg.Loop.FrameRate,
		Autopilot: flagAutopilot,
		Logger:    logger,
	})
	defer game.Close()

	if runErr := tui.Run(game, width, height); runErr != nil {
		fail("running game: %v", runErr)
	}
}
