// brickfall is a terminal brick-breaker built on a physics-agnostic game
// session engine.
//
// Usage:
//
//	brickfall play            - Play in this terminal
//	brickfall serve           - Start SSH server for remote play
//	brickfall level           - Generate and print a random board
//	brickfall simulate        - Run a headless autopilot game
//
// Global flags:
//
//	--config <path>      - Config file (.yaml or .toml)
//	--difficulty <name>  - easy, normal, hard or fixed
//	--seed <value>       - RNG seed for reproducible boards
//	--fps <rate>         - Frame rate (default: from config)
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       uint64
	flagFPS        int
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickfall",
	Short: "Brickfall - break bricks in your terminal",
	Long: `Brickfall is a brick-breaker for the terminal. Keep the ball in play
with the paddle, clear every breakable brick and do not run out of lives.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  level     - Print a random board
  simulate  - Headless autopilot run

Examples:
  brickfall play
  brickfall play --difficulty hard
  brickfall level --seed 42
  brickfall simulate --duration 5m
  brickfall serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = config frame rate)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig loads the config named by --config and applies --difficulty.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.Config{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Loop.FrameRate = flagFPS
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger creates a logger writing to w at --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
