package arena

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickfall/internal/breakout"
	"github.com/vovakirdan/brickfall/internal/config"
)

const step = 20 * time.Millisecond

type recorder struct {
	events []breakout.CollisionEvent
}

func (r *recorder) record(ev breakout.CollisionEvent) {
	r.events = append(r.events, ev)
}

func (r *recorder) categories() []breakout.Category {
	out := make([]breakout.Category, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Category)
	}
	return out
}

func newTestWorld(t *testing.T) (*World, *recorder) {
	t.Helper()
	w := NewWorld(config.Default().Arena, nil)
	rec := &recorder{}
	w.Subscribe(w.Ball().ID(), rec.record)
	return w, rec
}

func TestWorldLayout(t *testing.T) {
	w, _ := newTestWorld(t)

	counts := map[breakout.Category]int{}
	for _, b := range w.Bodies() {
		counts[b.Category()]++
	}
	assert.Equal(t, map[breakout.Category]int{
		breakout.CategoryWall:     3,
		breakout.CategoryDeadZone: 1,
		breakout.CategoryPaddle:   1,
		breakout.CategoryBall:     1,
	}, counts)
	assert.Equal(t, mgl64.Vec3{0, 0, -5}, w.Paddle().Position())
}

func TestWorldBallBouncesOffSideWall(t *testing.T) {
	w, rec := newTestWorld(t)
	ball := w.Ball()
	ball.SetPosition(mgl64.Vec3{8.8, 0, 0})
	ball.SetVelocity(mgl64.Vec3{10, 0, 0})

	w.Step(step)

	require.Equal(t, []breakout.Category{breakout.CategoryWall}, rec.categories())
	assert.Equal(t, -10.0, ball.Velocity().X())
	assert.InDelta(t, 9-0.25, ball.Position().X(), 1e-9)

	w.Step(step)
	assert.Len(t, rec.events, 1, "one begin event per contact")
}

func TestWorldBallBouncesOffTopWall(t *testing.T) {
	w, rec := newTestWorld(t)
	ball := w.Ball()
	ball.SetPosition(mgl64.Vec3{0, 0, 5.7})
	ball.SetVelocity(mgl64.Vec3{0, 0, 8})

	w.Step(step)

	assert.Equal(t, []breakout.Category{breakout.CategoryWall}, rec.categories())
	assert.Equal(t, -8.0, ball.Velocity().Z())
}

func TestWorldDeadZoneIsTrigger(t *testing.T) {
	w, rec := newTestWorld(t)
	ball := w.Ball()
	ball.SetPosition(mgl64.Vec3{0, 0, -5.7})
	ball.SetVelocity(mgl64.Vec3{0, 0, -8})

	w.Step(step)

	assert.Equal(t, []breakout.Category{breakout.CategoryDeadZone}, rec.categories())
	assert.Equal(t, -8.0, ball.Velocity().Z(), "trigger does not bounce")
}

func TestWorldPaddleSendsBallForward(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		sideX func(float64) bool
	}{
		{"center", 0, func(v float64) bool { return v == 0 }},
		{"right edge", 0.9, func(v float64) bool { return v > 0 }},
		{"left edge", -0.9, func(v float64) bool { return v < 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, rec := newTestWorld(t)
			ball := w.Ball()
			ball.SetPosition(mgl64.Vec3{tt.x, 0, -4.5})
			ball.SetVelocity(mgl64.Vec3{0, 0, -8})

			w.Step(step)

			require.Equal(t, []breakout.Category{breakout.CategoryPaddle}, rec.categories())
			v := ball.Velocity()
			assert.Greater(t, v.Z(), 0.0)
			assert.InDelta(t, 8, v.Len(), 1e-9)
			assert.True(t, tt.sideX(v.X()), "vx = %v", v.X())
			assert.GreaterOrEqual(t, v.Z()/8, minPaddleBounce-1e-9)
		})
	}
}

func TestWorldBrickContactNotifiesBoth(t *testing.T) {
	w, rec := newTestWorld(t)
	body, err := w.SpawnBrick(mgl64.Vec3{0, 0, 2})
	require.NoError(t, err)

	brickRec := &recorder{}
	w.Subscribe(body.ID(), brickRec.record)

	ball := w.Ball()
	ball.SetPosition(mgl64.Vec3{0, 0, 1.5})
	ball.SetVelocity(mgl64.Vec3{0, 0, 8})
	w.Step(step)

	require.Len(t, rec.events, 1)
	assert.Equal(t, breakout.CategoryBrick, rec.events[0].Category)
	assert.Equal(t, body.ID(), rec.events[0].Other)
	require.Len(t, brickRec.events, 1)
	assert.Equal(t, breakout.CategoryBall, brickRec.events[0].Category)
	assert.Equal(t, -8.0, ball.Velocity().Z())
}

func TestWorldDestroyedBrickLeaves(t *testing.T) {
	w, rec := newTestWorld(t)
	body, err := w.SpawnBrick(mgl64.Vec3{0, 0, 2})
	require.NoError(t, err)
	w.Subscribe(body.ID(), func(breakout.CollisionEvent) { body.Destroy() })

	ball := w.Ball()
	ball.SetPosition(mgl64.Vec3{0, 0, 1.5})
	ball.SetVelocity(mgl64.Vec3{0, 0, 8})
	w.Step(step)

	for _, b := range w.Bodies() {
		assert.NotEqual(t, body.ID(), b.ID())
	}
	assert.False(t, body.(*Body).Alive())
	assert.Len(t, rec.events, 1)
}

func TestWorldSpawnOutOfBounds(t *testing.T) {
	w, _ := newTestWorld(t)
	_, err := w.SpawnBrick(mgl64.Vec3{9, 0, 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestWorldUnsubscribe(t *testing.T) {
	w := NewWorld(config.Default().Arena, nil)
	rec := &recorder{}
	unsub := w.Subscribe(w.Ball().ID(), rec.record)
	unsub()

	ball := w.Ball()
	ball.SetPosition(mgl64.Vec3{8.8, 0, 0})
	ball.SetVelocity(mgl64.Vec3{10, 0, 0})
	w.Step(step)

	assert.Empty(t, rec.events)
}

func TestWorldIgnoresNonPositiveStep(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Ball().SetVelocity(mgl64.Vec3{0, 0, 8})
	before := w.Ball().Position()

	w.Step(0)
	w.Step(-step)

	assert.Equal(t, before, w.Ball().Position())
	assert.Zero(t, w.Steps())
}

func TestCollisionTracker(t *testing.T) {
	ct := newCollisionTracker()
	key := contactKey{Mover: 1, Other: 2}

	assert.True(t, ct.Begin(key))
	assert.False(t, ct.Begin(key))

	ct.End(key)
	assert.True(t, ct.Begin(key))

	ct.Forget(2)
	assert.True(t, ct.Begin(key), "forgotten body starts a fresh contact")

	other := contactKey{Mover: 1, Other: 3}
	assert.True(t, ct.Begin(other))
	ct.Forget(2)
	assert.False(t, ct.Begin(other), "unrelated contacts survive")
}
