package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrickTemplate(t *testing.T) {
	body := &fakeBrickBody{id: 3}
	b := NewBrick(body, nil)

	assert.Equal(t, BrickStandard, b.Type())
	assert.Equal(t, 1, b.HitPoints())
	assert.Equal(t, 1, b.CurrentHitPoints())
	assert.Equal(t, 100, b.ScoreValue())
	assert.False(t, b.IsDestroyed())
	assert.Equal(t, 1.0, body.health)
}

func TestBrickStrongTakesTwoHits(t *testing.T) {
	body := &fakeBrickBody{id: 3}
	b := NewBrick(body, nil)
	b.SetBrickProperties(2, 200, BrickStrong)

	fired := 0
	b.Destroyed.Subscribe(func(*Brick) { fired++ })

	b.TakeDamage(1)
	assert.Equal(t, 1, b.CurrentHitPoints())
	assert.False(t, b.IsDestroyed())
	assert.Equal(t, BrickStrong, body.appearance)
	assert.Equal(t, 0.5, body.health)
	assert.Zero(t, fired)

	b.TakeDamage(1)
	assert.True(t, b.IsDestroyed())
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, body.destroyed)
}

func TestBrickDamageIsMonotonic(t *testing.T) {
	b := NewBrick(&fakeBrickBody{}, nil)
	b.SetBrickProperties(5, 100, BrickStandard)

	prev := b.CurrentHitPoints()
	for _, n := range []int{1, 0, -3, 2, -1, 4, 1} {
		b.TakeDamage(n)
		require.LessOrEqual(t, b.CurrentHitPoints(), prev, "TakeDamage(%d)", n)
		prev = b.CurrentHitPoints()
	}
	assert.True(t, b.IsDestroyed())
}

func TestBrickIndestructible(t *testing.T) {
	body := &fakeBrickBody{}
	b := NewBrick(body, nil)
	b.SetBrickProperties(999, 0, BrickIndestructible)

	fired := 0
	b.Destroyed.Subscribe(func(*Brick) { fired++ })
	for range 2000 {
		b.TakeDamage(1)
	}
	b.TakeDamage(5000)

	assert.Equal(t, 999, b.CurrentHitPoints())
	assert.False(t, b.IsDestroyed())
	assert.False(t, b.IsDestroyable())
	assert.Zero(t, fired)
	assert.Zero(t, body.destroyed)
}

func TestBrickDestroyedFiresOnce(t *testing.T) {
	body := &fakeBrickBody{}
	b := NewBrick(body, nil)

	fired := 0
	b.Destroyed.Subscribe(func(got *Brick) {
		assert.Same(t, b, got)
		fired++
	})
	b.TakeDamage(10)
	b.TakeDamage(1)
	b.HandleCollision(CollisionEvent{Category: CategoryBall})

	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, body.destroyed)
	assert.Zero(t, b.CurrentHitPoints())
}

func TestBrickHandleCollision(t *testing.T) {
	b := NewBrick(&fakeBrickBody{}, nil)
	b.SetBrickProperties(3, 100, BrickStandard)

	b.HandleCollision(CollisionEvent{Category: CategoryWall})
	b.HandleCollision(CollisionEvent{Category: CategoryPaddle})
	assert.Equal(t, 3, b.CurrentHitPoints())

	b.HandleCollision(CollisionEvent{Category: CategoryBall})
	assert.Equal(t, 2, b.CurrentHitPoints())
}

func TestBrickReset(t *testing.T) {
	body := &fakeBrickBody{}
	b := NewBrick(body, nil)
	b.SetBrickProperties(2, 200, BrickStrong)
	b.TakeDamage(2)
	require.True(t, b.IsDestroyed())

	b.ResetBrick()

	assert.False(t, b.IsDestroyed())
	assert.Equal(t, 2, b.CurrentHitPoints())
	assert.Equal(t, 1.0, b.HealthRatio())
	assert.Equal(t, 1.0, body.health)
}

func TestBrickWithoutBody(t *testing.T) {
	b := NewBrick(nil, nil)
	assert.NotPanics(t, func() { b.TakeDamage(1) })
	assert.True(t, b.IsDestroyed())
}
