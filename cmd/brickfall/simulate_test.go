package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/brickfall/internal/breakout"
	"github.com/vovakirdan/brickfall/internal/config"
)

func TestSimulateRunsForDuration(t *testing.T) {
	cfg := config.Default()
	res := simulate(cfg, 11, 20*time.Second, 1, false, quietLogger())

	assert.GreaterOrEqual(t, res.Simulated, 20*time.Second)
	// 50 Hz physics over 20 s.
	assert.InDelta(t, 1000, float64(res.Steps), 2)
	assert.GreaterOrEqual(t, res.BestScore, res.Score)
	assert.GreaterOrEqual(t, res.Bricks, 0)
	assert.NotEqual(t, breakout.StateMenu, res.Final)
}

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := config.Default()
	a := simulate(cfg, 5, 15*time.Second, 0.8, false, quietLogger())
	b := simulate(cfg, 5, 15*time.Second, 0.8, false, quietLogger())
	assert.Equal(t, a, b)
}

func TestSimulateStopsAtFirstFinish(t *testing.T) {
	cfg := config.Default()
	cfg.Session.StartingLives = 1
	// The autopilot never moves, so the first off-center return is lost.
	res := simulate(cfg, 3, 10*time.Minute, 0, true, quietLogger())

	finished := res.Victories + res.GameOvers
	if finished == 0 {
		assert.Equal(t, breakout.StatePlaying, res.Final)
		return
	}
	assert.Equal(t, 1, finished)
	assert.Less(t, res.Simulated, 10*time.Minute)
}

func TestPrintSimulation(t *testing.T) {
	var buf bytes.Buffer
	printSimulation(&buf, simulation{
		Seed:      7,
		Simulated: 90 * time.Second,
		Steps:     4500,
		Score:     300,
		BestScore: 800,
		Bricks:    6,
		Victories: 1,
		Final:     breakout.StatePlaying,
	})
	out := buf.String()

	assert.Contains(t, out, "Simulation (seed 7)")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "4500")
	assert.Contains(t, out, "800")
	assert.Contains(t, out, breakout.StatePlaying.String())
}
