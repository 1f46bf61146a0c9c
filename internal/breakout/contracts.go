// Package breakout is the brickfall simulation core: the session state
// machine, the constant-speed ball, brick damage and random level generation.
//
// Rendering, input and rigid-body physics are collaborators reached through
// the interfaces in this file. The core consumes collision-begin events and
// issues velocity and position commands; it never integrates motion itself.
package breakout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// Forward is the launch direction of the ball (+Z on the play plane).
var Forward = mgl64.Vec3{0, 0, 1}

// Movable is implemented by entities steered by a direction on the play plane.
type Movable interface {
	Move(direction mgl64.Vec2)
	MoveSpeed() float64
	SetMoveSpeed(v float64)
}

// Damageable is implemented by entities that can be worn down and destroyed.
type Damageable interface {
	TakeDamage(amount int)
	IsDestroyed() bool
}

// BodyID identifies a body in the physics world.
type BodyID uint32

// Category tags what a body is, so collision handlers can tell contacts apart.
type Category string

const (
	CategoryBall     Category = "ball"
	CategoryPaddle   Category = "paddle"
	CategoryBrick    Category = "brick"
	CategoryDeadZone Category = "dead-zone"
	CategoryWall     Category = "wall"
)

// CollisionEvent is delivered to the subscribers of Subject when it starts
// touching Other. Category is the category of Other.
type CollisionEvent struct {
	Subject  BodyID
	Other    BodyID
	Category Category
}

// CollisionSource delivers collision-begin events for a body. The returned
// function removes the subscription.
type CollisionSource interface {
	Subscribe(id BodyID, fn func(CollisionEvent)) (unsubscribe func())
}

// Transform is a positioned body.
type Transform interface {
	ID() BodyID
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
}

// RigidBody is a body whose motion the physics world integrates.
type RigidBody interface {
	Transform
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	SetAngularVelocity(v mgl64.Vec3)
	// AddForce applies an instantaneous velocity change.
	AddForce(v mgl64.Vec3)
}

// BrickBody is the scene object backing a brick.
type BrickBody interface {
	Transform
	// SetAppearance updates the visual feedback for the brick's type and
	// remaining health ratio in (0, 1].
	SetAppearance(t BrickType, health float64)
	// Destroy removes the body from the world.
	Destroy()
}

// BrickSpawner instantiates brick bodies.
type BrickSpawner interface {
	SpawnBrick(position mgl64.Vec3) (BrickBody, error)
}

// World is everything a Scene needs from the physics host.
type World interface {
	CollisionSource
	BrickSpawner
	BallBody() RigidBody
	PaddleBody() Transform
}

// Simulation is driven by a host loop the core does not own.
type Simulation interface {
	// OnActivate runs once before the first tick.
	OnActivate()
	// OnFrameTick runs every rendered frame with unscaled real time.
	OnFrameTick(dt time.Duration)
	// OnPhysicsTick runs at the fixed physics rate with scaled time.
	OnPhysicsTick(dt time.Duration)
	// TimeScale is the current simulation rate (0 while paused).
	TimeScale() float64
}

// orDiscard returns l, or a logger that drops everything when l is nil.
func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
