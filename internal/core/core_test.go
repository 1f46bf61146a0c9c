package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestScreenSetGetAndBounds(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(1, 1, '#', ColorRed)
	s.Set(-1, 0, 'x', ColorRed)
	s.Set(4, 0, 'x', ColorRed)

	assert.Equal(t, Cell{Rune: '#', Color: ColorRed}, s.GetCell(1, 1))
	assert.Equal(t, ' ', s.GetCell(10, 10).Rune)
	assert.Equal(t, "    \n #  ", s.String())
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(2, 0, "hello", ColorDefault)
	assert.Equal(t, "  hel", s.Row(0))

	s.Clear()
	s.DrawTextCentered(0, "ab", ColorDefault)
	assert.Equal(t, " ab  ", s.Row(0))
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawBox(0, 0, 3, 3, ColorWhite)
	assert.Equal(t, "┌─┐\n│ │\n└─┘", s.String())
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(2, 2)
	s.Set(0, 0, 'x', ColorDefault)
	s.Resize(3, 1)
	assert.Equal(t, 3, s.Width())
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, "   ", s.String())
}

func TestViewportToCell(t *testing.T) {
	v := NewViewport(-10, 10, -5, 5, 0, 0, 20, 10)

	x, y := v.ToCell(mgl64.Vec3{-10, 0, 5})
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = v.ToCell(mgl64.Vec3{0, 0, 0})
	assert.Equal(t, 10, x)
	assert.Equal(t, 5, y)

	// +Z is up the screen
	_, yHigh := v.ToCell(mgl64.Vec3{0, 0, 4})
	_, yLow := v.ToCell(mgl64.Vec3{0, 0, -4})
	assert.Less(t, yHigh, yLow)
}

func TestViewportFillBox(t *testing.T) {
	v := NewViewport(0, 4, 0, 2, 0, 0, 4, 2)
	s := NewScreen(4, 2)

	v.FillBox(s, mgl64.Vec3{1, 0, 1.5}, 1, 0.5, '=', ColorBlue)
	assert.Equal(t, "==  \n    ", s.String())

	// A box thinner than a cell still shows up
	s.Clear()
	v.FillBox(s, mgl64.Vec3{3.5, 0, 0.5}, 0.1, 0.1, 'o', ColorWhite)
	assert.Equal(t, "    \n   o", s.String())
}

func TestActionAxis(t *testing.T) {
	x, z := ActionLeft.Axis()
	assert.Equal(t, -1.0, x)
	assert.Equal(t, 0.0, z)

	x, z = ActionForward.Axis()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 1.0, z)

	x, z = ActionPause.Axis()
	assert.Zero(t, x)
	assert.Zero(t, z)
	assert.Equal(t, "Pause", ActionPause.String())
}
