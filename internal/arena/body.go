package arena

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickfall/internal/breakout"
)

// Body is an axis-aligned box on the XZ plane. The same type backs the
// ball, the paddle, the walls, the dead zone and the bricks.
type Body struct {
	id       breakout.BodyID
	category breakout.Category
	pos      mgl64.Vec3
	half     mgl64.Vec2 // half extents on X and Z
	vel      mgl64.Vec3
	angular  mgl64.Vec3
	trigger  bool // reports contacts without bouncing the ball
	alive    bool

	brickType breakout.BrickType
	health    float64

	world *World
}

var (
	_ breakout.RigidBody = (*Body)(nil)
	_ breakout.BrickBody = (*Body)(nil)
)

func (b *Body) ID() breakout.BodyID           { return b.id }
func (b *Body) Category() breakout.Category   { return b.category }
func (b *Body) Position() mgl64.Vec3          { return b.pos }
func (b *Body) HalfExtents() mgl64.Vec2       { return b.half }
func (b *Body) Velocity() mgl64.Vec3          { return b.vel }
func (b *Body) Alive() bool                   { return b.alive }
func (b *Body) IsTrigger() bool               { return b.trigger }
func (b *Body) BrickType() breakout.BrickType { return b.brickType }
func (b *Body) Health() float64               { return b.health }

// SetPosition teleports the body.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.pos = p
}

// SetVelocity sets the linear velocity.
func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.vel = v
}

// SetAngularVelocity sets the angular velocity. Boxes never rotate; the
// value is stored for inspection only.
func (b *Body) SetAngularVelocity(v mgl64.Vec3) {
	b.angular = v
}

// AddForce applies an instantaneous velocity change.
func (b *Body) AddForce(v mgl64.Vec3) {
	b.vel = b.vel.Add(v)
}

// SetAppearance records what the renderer should draw for a brick.
func (b *Body) SetAppearance(t breakout.BrickType, health float64) {
	b.brickType = t
	b.health = health
}

// Destroy removes the body from its world.
func (b *Body) Destroy() {
	if !b.alive {
		return
	}
	b.alive = false
	if b.world != nil {
		b.world.remove(b)
	}
}

// overlap returns the penetration depth of a and b on X and Z. Both are
// positive only when the boxes intersect.
func overlap(a, b *Body) (ox, oz float64) {
	dx := a.pos.X() - b.pos.X()
	dz := a.pos.Z() - b.pos.Z()
	ox = a.half.X() + b.half.X() - abs(dx)
	oz = a.half.Y() + b.half.Y() - abs(dz)
	return ox, oz
}

func intersects(a, b *Body) bool {
	ox, oz := overlap(a, b)
	return ox > 0 && oz > 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
