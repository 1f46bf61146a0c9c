package breakout

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickfall/internal/config"
)

// Level owns the bricks of the current board and re-emits their
// destruction.
type Level struct {
	cfg        config.Level
	spawner    BrickSpawner
	collisions CollisionSource
	rng        *rand.Rand
	logger     *log.Logger

	bricks []*Brick
	unsubs []func()

	// BrickDestroyed fires for every brick of the current board that is
	// destroyed.
	BrickDestroyed Event[*Brick]
}

// NewLevel creates an empty level. spawner creates brick bodies and
// collisions routes ball contacts to them. A nil rng draws from a randomly
// seeded source.
func NewLevel(cfg config.Level, spawner BrickSpawner, collisions CollisionSource, rng *rand.Rand, logger *log.Logger) *Level {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Level{
		cfg:        cfg,
		spawner:    spawner,
		collisions: collisions,
		rng:        rng,
		logger:     orDiscard(logger),
	}
}

// Dimensions returns the configured grid size.
func (l *Level) Dimensions() (rows, columns int) {
	return l.cfg.Rows, l.cfg.Columns
}

// Bricks returns a snapshot of the current board, destroyed bricks included.
func (l *Level) Bricks() []*Brick {
	out := make([]*Brick, len(l.bricks))
	copy(out, l.bricks)
	return out
}

// CalculateGridPosition returns the world position of a grid cell relative
// to the brick container origin. Rows grow towards the paddle.
func (l *Level) CalculateGridPosition(row, col int) mgl64.Vec3 {
	return mgl64.Vec3{
		l.cfg.OriginX + l.cfg.OffsetX + float64(col)*l.cfg.SpacingX,
		l.cfg.OriginY,
		l.cfg.OriginZ + l.cfg.OffsetZ - float64(row)*l.cfg.SpacingZ,
	}
}

// GenerateRandomLevel replaces the board with a new random one.
func (l *Level) GenerateRandomLevel() {
	l.clear()

	if l.spawner == nil {
		l.logger.Error("cannot generate level without a brick spawner")
		return
	}

	for row := range l.cfg.Rows {
		for col := range l.cfg.Columns {
			if l.rng.Float64() < l.cfg.SkipChance {
				continue
			}
			body, err := l.spawner.SpawnBrick(l.CalculateGridPosition(row, col))
			if err != nil {
				l.logger.Error("spawn brick", "row", row, "col", col, "err", err)
				continue
			}
			l.add(body, l.randomType())
		}
	}

	l.logger.Info("level generated",
		"bricks", len(l.bricks),
		"destroyable", l.TotalDestroyableBricks())
}

// TotalDestroyableBricks counts the non-indestructible bricks of the board,
// destroyed or not.
func (l *Level) TotalDestroyableBricks() int {
	n := 0
	for _, b := range l.bricks {
		if b.IsDestroyable() {
			n++
		}
	}
	return n
}

// RemainingBricks counts the destroyable bricks still standing.
func (l *Level) RemainingBricks() int {
	n := 0
	for _, b := range l.bricks {
		if b.IsDestroyable() && !b.IsDestroyed() {
			n++
		}
	}
	return n
}

// IsLevelCleared reports whether no destroyable brick is left.
func (l *Level) IsLevelCleared() bool {
	return l.RemainingBricks() == 0
}

func (l *Level) randomType() BrickType {
	roll := l.rng.Float64()
	switch {
	case roll < l.cfg.Chances.Standard:
		return BrickStandard
	case roll < l.cfg.Chances.Standard+l.cfg.Chances.Strong:
		return BrickStrong
	default:
		return BrickIndestructible
	}
}

func (l *Level) statsFor(t BrickType) config.BrickStats {
	switch t {
	case BrickStrong:
		return l.cfg.Strong
	case BrickIndestructible:
		return l.cfg.Solid
	default:
		return l.cfg.Standard
	}
}

func (l *Level) add(body BrickBody, t BrickType) {
	brick := NewBrick(body, l.logger)
	stats := l.statsFor(t)
	brick.SetBrickProperties(stats.HitPoints, stats.Score, t)

	l.unsubs = append(l.unsubs, brick.Destroyed.Subscribe(l.BrickDestroyed.Emit))
	if l.collisions != nil && body != nil {
		l.unsubs = append(l.unsubs, l.collisions.Subscribe(body.ID(), brick.HandleCollision))
	}
	l.bricks = append(l.bricks, brick)
}

func (l *Level) clear() {
	for _, unsub := range l.unsubs {
		unsub()
	}
	l.unsubs = nil

	for _, b := range l.bricks {
		if !b.IsDestroyed() && b.body != nil {
			b.body.Destroy()
		}
	}
	l.bricks = nil
}
