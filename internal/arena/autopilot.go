package arena

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/brickfall/internal/breakout"
)

// Autopilot steers a paddle towards the ball. It aims slightly off-center
// so the ball does not settle into a vertical loop.
type Autopilot struct {
	paddle *breakout.Paddle
	ball   *breakout.Ball
	rng    *rand.Rand

	skill    float64 // fraction of full input used, 0..1
	deadband float64
	reach    float64 // max aim offset from the paddle center
	aim      float64
	lastVZ   float64
}

// NewAutopilot creates an autopilot for paddle. reach is usually the paddle
// half width.
func NewAutopilot(paddle *breakout.Paddle, ball *breakout.Ball, reach float64, rng *rand.Rand) *Autopilot {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Autopilot{
		paddle:   paddle,
		ball:     ball,
		rng:      rng,
		skill:    1,
		deadband: 0.1,
		reach:    reach * 0.6,
	}
}

// SetSkill sets how much of the full input the autopilot uses.
func (a *Autopilot) SetSkill(skill float64) {
	a.skill = clamp(skill, 0, 1)
}

// Update sets the paddle input for the current frame.
func (a *Autopilot) Update() {
	if a.paddle == nil || a.ball == nil {
		return
	}

	vz := a.ball.Velocity().Z()
	if vz < 0 && a.lastVZ >= 0 {
		a.aim = (a.rng.Float64()*2 - 1) * a.reach
	}
	a.lastVZ = vz

	target := a.ball.Position().X() - a.aim
	diff := target - a.paddle.Position().X()
	if math.Abs(diff) <= a.deadband {
		a.paddle.SetMoveInputX(0)
		return
	}
	a.paddle.SetMoveInputX(sign(diff) * a.skill)
}
