package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickfall/internal/arena"
	"github.com/vovakirdan/brickfall/internal/breakout"
	"github.com/vovakirdan/brickfall/internal/config"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Generate and print a random board",
	Long: `Generate one board headlessly and print its grid and brick counts.

Legend:
  S  standard brick (1 hit)
  X  strong brick (2 hits)
  #  indestructible brick
  .  empty cell

Examples:
  brickfall level
  brickfall level --seed 42 --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runLevel,
}

func runLevel(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	logger, err := newLogger(os.Stderr, "level")
	if err != nil {
		fail("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	if err := printLevel(os.Stdout, cfg, seed, logger); err != nil {
		fail("%v", err)
	}
}

// printLevel generates one board from seed and writes it to w.
func printLevel(w io.Writer, cfg config.Config, seed uint64, logger *log.Logger) error {
	world := arena.NewWorld(cfg.Arena, logger)
	level := breakout.NewLevel(cfg.Level, world, world, rand.New(rand.NewPCG(seed, seed)), logger)
	level.GenerateRandomLevel()

	byPos := make(map[[2]float64]*breakout.Brick)
	for _, b := range level.Bricks() {
		p := b.Position()
		byPos[[2]float64{p.X(), p.Z()}] = b
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Board (seed %d)\n\n", seed)
	rows, cols := level.Dimensions()
	for row := range rows {
		sb.WriteString("  ")
		for col := range cols {
			p := level.CalculateGridPosition(row, col)
			sb.WriteByte(brickSymbol(byPos[[2]float64{p.X(), p.Z()}]))
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}

	counts := map[breakout.BrickType]int{}
	for _, b := range level.Bricks() {
		counts[b.Type()]++
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  %-16s %d\n", "standard", counts[breakout.BrickStandard])
	fmt.Fprintf(&sb, "  %-16s %d\n", "strong", counts[breakout.BrickStrong])
	fmt.Fprintf(&sb, "  %-16s %d\n", "indestructible", counts[breakout.BrickIndestructible])
	fmt.Fprintf(&sb, "  %-16s %d\n", "destroyable", level.TotalDestroyableBricks())
	if level.IsLevelCleared() {
		sb.WriteString("\n  (nothing to clear: the board counts as won)\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func brickSymbol(b *breakout.Brick) byte {
	if b == nil {
		return '.'
	}
	switch b.Type() {
	case breakout.BrickStrong:
		return 'X'
	case breakout.BrickIndestructible:
		return '#'
	default:
		return 'S'
	}
}
