package breakout

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// Default stats of a freshly spawned brick, before the level assigns a type.
const (
	defaultBrickHitPoints = 1
	defaultBrickScore     = 100
)

// Brick is a damageable block. Indestructible bricks ignore damage and never
// count towards clearing a level.
type Brick struct {
	body   BrickBody
	logger *log.Logger

	brickType  BrickType
	hitPoints  int
	currentHP  int
	scoreValue int
	destroyed  bool

	// Destroyed fires exactly once, when the brick's hit points run out.
	Destroyed Event[*Brick]
}

var _ Damageable = (*Brick)(nil)

// NewBrick wraps body with the generic template stats.
func NewBrick(body BrickBody, logger *log.Logger) *Brick {
	b := &Brick{
		body:       body,
		logger:     orDiscard(logger),
		brickType:  BrickStandard,
		hitPoints:  defaultBrickHitPoints,
		currentHP:  defaultBrickHitPoints,
		scoreValue: defaultBrickScore,
	}
	b.refreshAppearance()
	return b
}

// ID returns the body ID, or 0 without a body.
func (b *Brick) ID() BodyID {
	if b.body == nil {
		return 0
	}
	return b.body.ID()
}

// Position returns the body position.
func (b *Brick) Position() mgl64.Vec3 {
	if b.body == nil {
		return mgl64.Vec3{}
	}
	return b.body.Position()
}

func (b *Brick) Type() BrickType       { return b.brickType }
func (b *Brick) HitPoints() int        { return b.hitPoints }
func (b *Brick) CurrentHitPoints() int { return b.currentHP }
func (b *Brick) ScoreValue() int       { return b.scoreValue }
func (b *Brick) IsDestroyed() bool     { return b.destroyed }

// IsDestroyable reports whether the brick can be worn down at all.
func (b *Brick) IsDestroyable() bool {
	return b.brickType != BrickIndestructible
}

// HealthRatio returns the remaining fraction of hit points.
func (b *Brick) HealthRatio() float64 {
	if b.hitPoints <= 0 {
		return 0
	}
	return float64(b.currentHP) / float64(b.hitPoints)
}

// SetBrickProperties reinitializes the brick as a full-health brick of the
// given type.
func (b *Brick) SetBrickProperties(hitPoints, score int, t BrickType) {
	b.hitPoints = hitPoints
	b.currentHP = hitPoints
	b.scoreValue = score
	b.brickType = t
	b.refreshAppearance()
}

// TakeDamage removes amount hit points. The brick is destroyed once they
// reach zero.
func (b *Brick) TakeDamage(amount int) {
	if b.destroyed || b.brickType == BrickIndestructible || amount <= 0 {
		return
	}

	b.currentHP -= amount
	if b.currentHP <= 0 {
		b.currentHP = 0
		b.destroy()
		return
	}
	b.refreshAppearance()
}

// ResetBrick brings a destroyed brick back at full health. Its body is not
// respawned; that is up to the level.
func (b *Brick) ResetBrick() {
	b.destroyed = false
	b.currentHP = b.hitPoints
	b.refreshAppearance()
}

// HandleCollision deals one point of damage per ball contact.
func (b *Brick) HandleCollision(ev CollisionEvent) {
	if ev.Category == CategoryBall {
		b.TakeDamage(1)
	}
}

func (b *Brick) destroy() {
	b.destroyed = true
	b.logger.Debug("brick destroyed", "type", b.brickType, "score", b.scoreValue)
	b.Destroyed.Emit(b)
	if b.body != nil {
		b.body.Destroy()
	}
}

func (b *Brick) refreshAppearance() {
	if b.body == nil || b.destroyed {
		return
	}
	b.body.SetAppearance(b.brickType, b.HealthRatio())
}
