package arena

import (
	"time"

	"github.com/vovakirdan/brickfall/internal/breakout"
)

// maxFrame caps a single frame so a stalled host does not replay seconds of
// physics at once.
const maxFrame = 250 * time.Millisecond

// Stepper is a physics world advanced in fixed steps.
type Stepper interface {
	Step(dt time.Duration)
}

// Loop drives a Simulation and its physics world at a fixed timestep from
// variable frame times.
type Loop struct {
	sim   breakout.Simulation
	world Stepper
	step  time.Duration

	accumulator time.Duration
	ticks       uint64
	frames      uint64
	activated   bool
}

// NewLoop creates a loop running physics every step.
func NewLoop(sim breakout.Simulation, world Stepper, step time.Duration) *Loop {
	if step <= 0 {
		step = time.Second / 50
	}
	return &Loop{sim: sim, world: world, step: step}
}

// Activate runs the simulation's activation hook once.
func (l *Loop) Activate() {
	if l.activated {
		return
	}
	l.activated = true
	l.sim.OnActivate()
}

// Advance feeds one rendered frame of real time. Physics steps consume the
// frame scaled by the simulation's time scale, then the frame tick runs.
// It returns how far the accumulator is into the next step, in [0, 1).
func (l *Loop) Advance(frame time.Duration) float64 {
	l.Activate()
	if frame < 0 {
		frame = 0
	}
	frame = min(frame, maxFrame)

	l.accumulator += time.Duration(float64(frame) * l.sim.TimeScale())
	for l.accumulator >= l.step {
		l.sim.OnPhysicsTick(l.step)
		if l.world != nil {
			l.world.Step(l.step)
		}
		l.accumulator -= l.step
		l.ticks++
	}

	l.sim.OnFrameTick(frame)
	l.frames++
	return float64(l.accumulator) / float64(l.step)
}

// Ticks returns the number of physics steps run.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Frames returns the number of frames advanced.
func (l *Loop) Frames() uint64 { return l.frames }

// Step returns the fixed physics timestep.
func (l *Loop) Step() time.Duration { return l.step }
