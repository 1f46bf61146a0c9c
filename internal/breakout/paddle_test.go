package breakout

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/brickfall/internal/config"
)

const frame = time.Second / 60

func newTestPaddle() (*Paddle, *fakeBody) {
	body := &fakeBody{id: 1, pos: mgl64.Vec3{0, 0, -5}}
	p := NewPaddle(config.Paddle{Speed: 10, LimitX: 7, LimitZ: 1}, body, nil)
	p.OnActivate()
	return p, body
}

func TestPaddleStaysWithinLimits(t *testing.T) {
	dirs := []mgl64.Vec2{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}}
	for _, dir := range dirs {
		p, body := newTestPaddle()
		p.SetMoveInput(dir.X(), dir.Y())
		for range 600 {
			p.OnFrameTick(frame)
			require.GreaterOrEqual(t, body.pos.X(), -7.0)
			require.LessOrEqual(t, body.pos.X(), 7.0)
			require.GreaterOrEqual(t, body.pos.Z(), -6.0)
			require.LessOrEqual(t, body.pos.Z(), -4.0)
		}
		if dir.X() != 0 {
			assert.Equal(t, 7*dir.X(), body.pos.X(), "dir %v", dir)
		}
		if dir.Y() != 0 {
			assert.Equal(t, -5+dir.Y(), body.pos.Z(), "dir %v", dir)
		}
	}
}

func TestPaddleMoveUsesFrameDelta(t *testing.T) {
	p, body := newTestPaddle()

	p.OnFrameTick(500 * time.Millisecond)
	assert.Equal(t, mgl64.Vec3{0, 0, -5}, body.pos, "no input, no motion")

	p.SetMoveInputX(-1)
	p.OnFrameTick(200 * time.Millisecond)
	assert.InDelta(t, -2, body.pos.X(), 1e-9)
}

func TestPaddleSingleAxisInputClearsZ(t *testing.T) {
	p, _ := newTestPaddle()
	p.SetMoveInput(1, 1)
	p.SetMoveInputX(-1)
	assert.Equal(t, mgl64.Vec2{-1, 0}, p.MoveInput())
}

func TestPaddleZeroDeltaDoesNotMove(t *testing.T) {
	p, body := newTestPaddle()
	p.SetMoveInputX(1)
	p.OnFrameTick(0)
	assert.Equal(t, mgl64.Vec3{0, 0, -5}, body.pos)
}

func TestPaddleResetPosition(t *testing.T) {
	p, body := newTestPaddle()
	p.SetMoveInput(1, 1)
	p.OnFrameTick(time.Second)

	p.ResetPosition()

	assert.Equal(t, mgl64.Vec3{0, 0, -5}, body.pos)
	assert.Equal(t, mgl64.Vec2{}, p.MoveInput())
}

func TestPaddleAnchorCapturedOnce(t *testing.T) {
	p, body := newTestPaddle()
	body.pos = mgl64.Vec3{3, 0, -5}
	p.OnActivate()
	assert.Equal(t, mgl64.Vec3{0, 0, -5}, p.Anchor())
}

func TestPaddleSetMoveSpeed(t *testing.T) {
	p, _ := newTestPaddle()
	p.SetMoveSpeed(-3)
	assert.Zero(t, p.MoveSpeed())
	p.SetMoveSpeed(4)
	assert.Equal(t, 4.0, p.MoveSpeed())
}

func TestPaddleWithoutBody(t *testing.T) {
	p := NewPaddle(config.Paddle{Speed: 10, LimitX: 7}, nil, nil)
	assert.NotPanics(t, func() {
		p.OnActivate()
		p.SetMoveInputX(1)
		p.OnFrameTick(frame)
		p.ResetPosition()
	})
}
