package breakout

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickfall/internal/config"
)

// speedEpsilon is how far |velocity| may drift from the target speed before
// the physics tick rescales it.
const speedEpsilon = 1e-9

// Ball keeps a rigid body moving at constant speed on the XZ plane.
// Collisions may change its heading but never its speed.
type Ball struct {
	body   RigidBody
	cfg    config.Ball
	logger *log.Logger

	launched bool
	speed    float64

	// Lost fires when the ball touches the dead zone.
	Lost Event[*Ball]
}

var _ Movable = (*Ball)(nil)

// NewBall creates a ball controller for body. A nil body leaves the ball
// inert; every body-dependent call logs and does nothing.
func NewBall(cfg config.Ball, body RigidBody, logger *log.Logger) *Ball {
	b := &Ball{
		body:   body,
		cfg:    cfg,
		logger: orDiscard(logger),
		speed:  cfg.InitialSpeed,
	}
	if body == nil {
		b.logger.Error("ball is missing its rigid body")
	}
	return b
}

// ID returns the body ID, or 0 without a body.
func (b *Ball) ID() BodyID {
	if b.body == nil {
		return 0
	}
	return b.body.ID()
}

// IsLaunched reports whether the ball is in motion.
func (b *Ball) IsLaunched() bool {
	return b.launched
}

// Speed returns the target speed.
func (b *Ball) Speed() float64 {
	return b.speed
}

// MoveSpeed implements Movable.
func (b *Ball) MoveSpeed() float64 {
	return b.speed
}

// SetMoveSpeed implements Movable.
func (b *Ball) SetMoveSpeed(v float64) {
	b.SetSpeed(v)
}

// Velocity returns the body velocity, or zero without a body.
func (b *Ball) Velocity() mgl64.Vec3 {
	if b.body == nil {
		return mgl64.Vec3{}
	}
	return b.body.Velocity()
}

// Position returns the body position, or the origin without a body.
func (b *Ball) Position() mgl64.Vec3 {
	if b.body == nil {
		return mgl64.Vec3{}
	}
	return b.body.Position()
}

// Launch sets the ball moving along direction projected onto the play
// plane. It does nothing if the ball is already moving.
func (b *Ball) Launch(direction mgl64.Vec3) {
	if b.launched {
		return
	}
	if b.body == nil {
		b.logger.Error("cannot launch ball without a rigid body")
		return
	}

	dir := planar(direction)
	b.launched = true
	b.body.SetVelocity(dir.Mul(b.speed))
	b.logger.Debug("ball launched", "direction", dir, "speed", b.speed)
}

// LaunchForward launches the ball along Forward.
func (b *Ball) LaunchForward() {
	b.Launch(Forward)
}

// Move overrides the heading of a launched ball, keeping its speed.
func (b *Ball) Move(direction mgl64.Vec2) {
	if !b.launched || b.body == nil {
		return
	}
	dir := planar(mgl64.Vec3{direction.X(), 0, direction.Y()})
	b.body.SetVelocity(dir.Mul(b.speed))
}

// SetSpeed clamps v to the configured bounds. A launched ball keeps its
// heading at the new speed.
func (b *Ball) SetSpeed(v float64) {
	b.speed = clamp(v, b.cfg.MinSpeed, b.cfg.MaxSpeed)
	if b.launched && b.body != nil {
		b.body.SetVelocity(planar(b.body.Velocity()).Mul(b.speed))
	}
}

// AddForce applies a velocity change. The speed is restored on the next
// physics tick, so only the heading survives.
func (b *Ball) AddForce(v mgl64.Vec3) {
	if b.body == nil {
		return
	}
	b.body.AddForce(v)
}

// OnPhysicsTick restores |velocity| == speed after whatever the physics
// world did to the ball since the last tick.
func (b *Ball) OnPhysicsTick(time.Duration) {
	if !b.launched || b.body == nil {
		return
	}

	v := b.body.Velocity()
	flat := mgl64.Vec3{v.X(), 0, v.Z()}
	if v.Y() == 0 && math.Abs(flat.Len()-b.speed) <= speedEpsilon {
		return
	}
	b.body.SetVelocity(planar(flat).Mul(b.speed))
}

// HandleCollision reacts to a collision-begin event on the ball's body.
func (b *Ball) HandleCollision(ev CollisionEvent) {
	switch ev.Category {
	case CategoryDeadZone:
		b.logger.Info("ball entered dead zone")
		b.Lost.Emit(b)
	case CategoryPaddle:
		b.logger.Debug("ball hit paddle")
	case CategoryBrick:
		b.logger.Debug("ball hit brick", "brick", ev.Other)
	}
}

// ResetBall stops the ball and restores the initial speed.
func (b *Ball) ResetBall() {
	b.launched = false
	b.speed = b.cfg.InitialSpeed
	if b.body != nil {
		b.body.SetVelocity(mgl64.Vec3{})
		b.body.SetAngularVelocity(mgl64.Vec3{})
	}
}

// ResetToPaddle resets the ball and parks it in front of anchor.
func (b *Ball) ResetToPaddle(anchor interface{ Position() mgl64.Vec3 }) {
	b.ResetBall()
	if anchor == nil || b.body == nil {
		return
	}
	b.body.SetPosition(anchor.Position().Add(Forward.Mul(b.cfg.SpawnOffset)))
}

// planar projects v onto the XZ plane and normalizes it. Directions with
// no planar component fall back to Forward.
func planar(v mgl64.Vec3) mgl64.Vec3 {
	flat := mgl64.Vec3{v.X(), 0, v.Z()}
	if flat.Len() < 1e-12 {
		return Forward
	}
	return flat.Normalize()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
