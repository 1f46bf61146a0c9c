// Package arena is a small planar physics host for the breakout core: boxes
// on the XZ plane, one moving ball, collision-begin events and reflection.
// It also provides the fixed-timestep loop and an autopilot input source.
package arena

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/brickfall/internal/breakout"
	"github.com/vovakirdan/brickfall/internal/config"
)

// ErrOutOfBounds is returned when a brick would be spawned outside the walls.
var ErrOutOfBounds = errors.New("arena: position outside the playfield")

// minPaddleBounce keeps the ball leaving the paddle at a usable angle: the
// forward component is at least this fraction of the speed.
const minPaddleBounce = 0.35

type subscription struct {
	id int
	fn func(breakout.CollisionEvent)
}

// World owns every body of one game and integrates the ball.
type World struct {
	cfg    config.Arena
	logger *log.Logger

	nextID  breakout.BodyID
	bodies  []*Body
	ball    *Body
	paddle  *Body
	tracker *collisionTracker

	nextSub int
	subs    map[breakout.BodyID][]subscription

	elapsed time.Duration
	steps   uint64
}

var _ breakout.World = (*World)(nil)

// NewWorld builds the walls, the dead zone, the paddle and the ball.
func NewWorld(cfg config.Arena, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w := &World{
		cfg:     cfg,
		logger:  logger,
		tracker: newCollisionTracker(),
		subs:    make(map[breakout.BodyID][]subscription),
	}

	t := cfg.WallThickness
	hw, hd := cfg.HalfWidth, cfg.HalfDepth
	w.add(breakout.CategoryWall, mgl64.Vec3{-hw - t/2, 0, 0}, mgl64.Vec2{t / 2, hd + t}, false)
	w.add(breakout.CategoryWall, mgl64.Vec3{hw + t/2, 0, 0}, mgl64.Vec2{t / 2, hd + t}, false)
	w.add(breakout.CategoryWall, mgl64.Vec3{0, 0, hd + t/2}, mgl64.Vec2{hw + t, t / 2}, false)
	w.add(breakout.CategoryDeadZone, mgl64.Vec3{0, 0, -hd - t/2}, mgl64.Vec2{hw + t, t / 2}, true)

	w.paddle = w.add(breakout.CategoryPaddle,
		mgl64.Vec3{0, 0, cfg.PaddleZ},
		mgl64.Vec2{cfg.PaddleWidth / 2, cfg.PaddleDepth / 2}, false)
	w.ball = w.add(breakout.CategoryBall,
		mgl64.Vec3{0, 0, cfg.PaddleZ + cfg.PaddleDepth/2 + cfg.BallRadius},
		mgl64.Vec2{cfg.BallRadius, cfg.BallRadius}, false)

	return w
}

// Config returns the arena geometry.
func (w *World) Config() config.Arena { return w.cfg }

// BallBody implements breakout.World.
func (w *World) BallBody() breakout.RigidBody { return w.ball }

// PaddleBody implements breakout.World.
func (w *World) PaddleBody() breakout.Transform { return w.paddle }

// Ball returns the ball body.
func (w *World) Ball() *Body { return w.ball }

// Paddle returns the paddle body.
func (w *World) Paddle() *Body { return w.paddle }

// Elapsed returns the simulated time.
func (w *World) Elapsed() time.Duration { return w.elapsed }

// Steps returns the number of completed steps.
func (w *World) Steps() uint64 { return w.steps }

// Bodies returns a snapshot of the live bodies in creation order.
func (w *World) Bodies() []*Body {
	return slices.Clone(w.bodies)
}

// SpawnBrick implements breakout.BrickSpawner.
func (w *World) SpawnBrick(pos mgl64.Vec3) (breakout.BrickBody, error) {
	half := mgl64.Vec2{w.cfg.BrickWidth / 2, w.cfg.BrickDepth / 2}
	if math.Abs(pos.X())+half.X() > w.cfg.HalfWidth || math.Abs(pos.Z())+half.Y() > w.cfg.HalfDepth {
		return nil, fmt.Errorf("%w: brick at (%.2f, %.2f)", ErrOutOfBounds, pos.X(), pos.Z())
	}
	return w.add(breakout.CategoryBrick, pos, half, false), nil
}

// Subscribe implements breakout.CollisionSource.
func (w *World) Subscribe(id breakout.BodyID, fn func(breakout.CollisionEvent)) func() {
	w.nextSub++
	subID := w.nextSub
	w.subs[id] = append(w.subs[id], subscription{id: subID, fn: fn})

	return func() {
		list := w.subs[id]
		for i, s := range list {
			if s.id == subID {
				w.subs[id] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(w.subs[id]) == 0 {
			delete(w.subs, id)
		}
	}
}

// Step advances the ball by dt, resolves its contacts and then delivers
// collision-begin events to both bodies of every new contact.
func (w *World) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	w.elapsed += dt
	w.steps++

	ball := w.ball
	ball.pos = ball.pos.Add(ball.vel.Mul(dt.Seconds()))
	ball.pos[1] = 0

	var begun []*Body
	for _, other := range w.bodies {
		if other == ball {
			continue
		}
		key := contactKey{Mover: ball.id, Other: other.id}
		if !intersects(ball, other) {
			w.tracker.End(key)
			continue
		}
		if !w.tracker.Begin(key) {
			continue
		}
		if !other.trigger {
			w.resolve(ball, other)
		}
		begun = append(begun, other)
	}

	for _, other := range begun {
		w.logger.Debug("contact", "ball", ball.id, "other", other.id, "category", other.category)
		w.emit(breakout.CollisionEvent{Subject: ball.id, Other: other.id, Category: other.category})
		w.emit(breakout.CollisionEvent{Subject: other.id, Other: ball.id, Category: breakout.CategoryBall})
	}
}

// resolve pushes the ball out of other and reflects it. Paddle hits always
// send the ball forward and add sideways deflection from the hit offset.
func (w *World) resolve(ball, other *Body) {
	if other.category == breakout.CategoryPaddle {
		w.bouncePaddle(ball, other)
		return
	}

	ox, oz := overlap(ball, other)
	dx := ball.pos.X() - other.pos.X()
	dz := ball.pos.Z() - other.pos.Z()
	if ox < oz {
		s := sign(dx)
		ball.pos[0] = other.pos.X() + s*(ball.half.X()+other.half.X())
		ball.vel[0] = s * math.Abs(ball.vel.X())
		return
	}
	s := sign(dz)
	ball.pos[2] = other.pos.Z() + s*(ball.half.Y()+other.half.Y())
	ball.vel[2] = s * math.Abs(ball.vel.Z())
}

func (w *World) bouncePaddle(ball, paddle *Body) {
	speed := ball.vel.Len()
	ball.pos[2] = paddle.pos.Z() + ball.half.Y() + paddle.half.Y()

	offset := 0.0
	if paddle.half.X() > 0 {
		offset = clamp((ball.pos.X()-paddle.pos.X())/paddle.half.X(), -1, 1)
	}

	v := mgl64.Vec3{ball.vel.X() + offset*w.cfg.PaddleEnglish*speed, 0, math.Abs(ball.vel.Z())}
	if speed > 0 {
		if v.Len() == 0 {
			v = breakout.Forward
		}
		v = v.Normalize()
		if v.Z() < minPaddleBounce {
			v = mgl64.Vec3{sign(v.X()) * math.Sqrt(1-minPaddleBounce*minPaddleBounce), 0, minPaddleBounce}
		}
		v = v.Mul(speed)
	}
	ball.vel = v
}

func (w *World) emit(ev breakout.CollisionEvent) {
	list := slices.Clone(w.subs[ev.Subject])
	for _, s := range list {
		s.fn(ev)
	}
}

func (w *World) add(cat breakout.Category, pos mgl64.Vec3, half mgl64.Vec2, trigger bool) *Body {
	w.nextID++
	b := &Body{
		id:       w.nextID,
		category: cat,
		pos:      pos,
		half:     half,
		trigger:  trigger,
		alive:    true,
		health:   1,
		world:    w,
	}
	w.bodies = append(w.bodies, b)
	return b
}

func (w *World) remove(b *Body) {
	w.bodies = slices.DeleteFunc(w.bodies, func(x *Body) bool { return x == b })
	w.tracker.Forget(b.id)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
