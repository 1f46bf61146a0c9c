package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/arena"
	"github.com/vovakirdan/brickfall/internal/breakout"
	"github.com/vovakirdan/brickfall/internal/config"
)

var (
	flagDuration     time.Duration
	flagSkill        float64
	flagStopOnFinish bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless autopilot game",
	Long: `Run the game without a terminal UI. An autopilot steers the paddle,
simulated time advances as fast as possible, and notifications are logged.
A cleared board is followed by a fresh one unless --stop is set.

Examples:
  brickfall simulate
  brickfall simulate --duration 10m --seed 7
  brickfall simulate --skill 0.6 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", 2*time.Minute, "Simulated play time")
	simulateCmd.Flags().Float64Var(&flagSkill, "skill", 1, "Autopilot skill (0..1)")
	simulateCmd.Flags().BoolVar(&flagStopOnFinish, "stop", false, "Stop at the first victory or game over")
}

// simulation is the outcome of a headless run.
type simulation struct {
	Seed      uint64
	Simulated time.Duration
	Steps     uint64
	Score     int
	BestScore int
	Bricks    int
	BallsLost int
	Victories int
	GameOvers int
	Final     breakout.State
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(os.Stderr, "simulate")
	if err != nil {
		fail("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	res := simulate(cfg, seed, flagDuration, flagSkill, flagStopOnFinish, logger)
	printSimulation(os.Stdout, res)
}

// simulate plays one headless game for the given simulated time.
func simulate(cfg config.Config, seed uint64, duration time.Duration, skill float64, stop bool, logger *log.Logger) simulation {
	world := arena.NewWorld(cfg.Arena, logger.WithPrefix("arena"))
	scene := breakout.NewScene(cfg, world, rand.New(rand.NewPCG(seed, seed)), logger)
	defer scene.Close()

	pilot := arena.NewAutopilot(scene.Paddle, scene.Ball, cfg.Arena.PaddleWidth/2, rand.New(rand.NewPCG(seed, ^seed)))
	pilot.SetSkill(skill)
	loop := arena.NewLoop(scene.Session, world, cfg.Loop.PhysicsStep())

	res := simulation{Seed: seed}
	s := scene.Session
	finished := false

	s.StateChanged.Subscribe(func(st breakout.State) {
		logger.Info("state", "state", st, "score", s.Score(), "lives", s.Lives())
		switch st {
		case breakout.StateVictory:
			res.Victories++
			finished = true
		case breakout.StateGameOver:
			res.GameOvers++
			finished = true
		}
	})
	s.ScoreChanged.Subscribe(func(score int) {
		res.BestScore = max(res.BestScore, score)
	})
	lives := s.Lives()
	s.LivesChanged.Subscribe(func(n int) {
		if n < lives {
			res.BallsLost++
			logger.Info("ball lost", "lives", n)
		}
		lives = n
	})
	scene.Level.BrickDestroyed.Subscribe(func(b *breakout.Brick) {
		res.Bricks++
		logger.Debug("brick destroyed", "type", b.Type(), "score", b.ScoreValue())
	})

	loop.Activate()
	s.StartGame()

	frame := time.Second / time.Duration(max(cfg.Loop.FrameRate, 1))
	for res.Simulated < duration {
		pilot.Update()
		loop.Advance(frame)
		res.Simulated += frame

		if finished && stop {
			break
		}
		if s.State() == breakout.StateVictory {
			s.StartGame()
		}
	}

	res.Steps = loop.Ticks()
	res.Score = s.Score()
	res.Final = s.State()
	return res
}

func printSimulation(w io.Writer, r simulation) {
	fmt.Fprintf(w, "Simulation (seed %d)\n\n", r.Seed)
	fmt.Fprintf(w, "  %-14s %s\n", "simulated", r.Simulated.Round(time.Millisecond))
	fmt.Fprintf(w, "  %-14s %d\n", "physics steps", r.Steps)
	fmt.Fprintf(w, "  %-14s %d\n", "bricks", r.Bricks)
	fmt.Fprintf(w, "  %-14s %d\n", "balls lost", r.BallsLost)
	fmt.Fprintf(w, "  %-14s %d\n", "victories", r.Victories)
	fmt.Fprintf(w, "  %-14s %d\n", "game overs", r.GameOvers)
	fmt.Fprintf(w, "  %-14s %d\n", "best score", r.BestScore)
	fmt.Fprintf(w, "  %-14s %d\n", "final score", r.Score)
	fmt.Fprintf(w, "  %-14s %s\n", "final state", r.Final)
}
