package breakout

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickfall/internal/config"
)

// Paddle moves a kinematic body on X and Z within a box around the position
// it had when first activated.
type Paddle struct {
	body   Transform
	logger *log.Logger

	speed  float64
	limitX float64
	limitZ float64

	anchor    mgl64.Vec3
	anchored  bool
	input     mgl64.Vec2 // x on X, y on Z
	lastDelta time.Duration
}

var _ Movable = (*Paddle)(nil)

// NewPaddle creates a paddle controller for body.
func NewPaddle(cfg config.Paddle, body Transform, logger *log.Logger) *Paddle {
	p := &Paddle{
		body:   body,
		logger: orDiscard(logger),
		speed:  max(cfg.Speed, 0),
		limitX: cfg.LimitX,
		limitZ: cfg.LimitZ,
	}
	if body == nil {
		p.logger.Error("paddle is missing its transform")
	}
	return p
}

// OnActivate records the anchor. Later calls keep the first anchor.
func (p *Paddle) OnActivate() {
	if p.anchored || p.body == nil {
		return
	}
	p.anchor = p.body.Position()
	p.anchored = true
}

// OnFrameTick stores the frame delta and applies held input.
func (p *Paddle) OnFrameTick(dt time.Duration) {
	p.lastDelta = dt
	if p.input.X() != 0 || p.input.Y() != 0 {
		p.Move(p.input)
	}
}

// Move advances the paddle by direction*speed over the last frame delta,
// clamping each axis to anchor ± limit.
func (p *Paddle) Move(direction mgl64.Vec2) {
	if p.body == nil {
		return
	}
	p.OnActivate()

	step := p.speed * p.lastDelta.Seconds()
	pos := p.body.Position()
	pos[0] = clamp(pos.X()+direction.X()*step, p.anchor.X()-p.limitX, p.anchor.X()+p.limitX)
	pos[2] = clamp(pos.Z()+direction.Y()*step, p.anchor.Z()-p.limitZ, p.anchor.Z()+p.limitZ)
	p.body.SetPosition(pos)
}

// SetMoveInput sets the held direction on both axes.
func (p *Paddle) SetMoveInput(x, z float64) {
	p.input = mgl64.Vec2{x, z}
}

// SetMoveInputX sets the held direction on X only and clears Z.
func (p *Paddle) SetMoveInputX(x float64) {
	p.SetMoveInput(x, 0)
}

// MoveInput returns the held direction.
func (p *Paddle) MoveInput() mgl64.Vec2 {
	return p.input
}

// ResetPosition clears input and puts the paddle back on its anchor.
func (p *Paddle) ResetPosition() {
	p.input = mgl64.Vec2{}
	if p.body == nil {
		return
	}
	p.OnActivate()
	p.body.SetPosition(p.anchor)
}

// Position returns the body position.
func (p *Paddle) Position() mgl64.Vec3 {
	if p.body == nil {
		return p.anchor
	}
	return p.body.Position()
}

// Anchor returns the activation position.
func (p *Paddle) Anchor() mgl64.Vec3 {
	return p.anchor
}

// MoveSpeed implements Movable.
func (p *Paddle) MoveSpeed() float64 {
	return p.speed
}

// SetMoveSpeed implements Movable. Negative speeds become zero.
func (p *Paddle) SetMoveSpeed(v float64) {
	p.speed = max(v, 0)
}
