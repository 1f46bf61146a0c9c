package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport maps the world's XZ plane onto a rectangle of screen cells.
// World +Z points up the screen.
type Viewport struct {
	// World bounds (X min/max, Z min/max)
	MinX, MaxX float64
	MinZ, MaxZ float64

	// Screen rectangle
	Left, Top     int
	Width, Height int
}

// NewViewport fits the world rectangle [minX,maxX]×[minZ,maxZ] into the
// given screen rectangle.
func NewViewport(minX, maxX, minZ, maxZ float64, left, top, width, height int) Viewport {
	return Viewport{
		MinX: minX, MaxX: maxX,
		MinZ: minZ, MaxZ: maxZ,
		Left: left, Top: top,
		Width: width, Height: height,
	}
}

// ToCell converts a world position to a screen cell.
func (v Viewport) ToCell(p mgl64.Vec3) (x, y int) {
	fx := (p.X() - v.MinX) / (v.MaxX - v.MinX)
	fz := (v.MaxZ - p.Z()) / (v.MaxZ - v.MinZ)
	x = v.Left + int(math.Floor(fx*float64(v.Width)))
	y = v.Top + int(math.Floor(fz*float64(v.Height)))
	return x, y
}

// Contains reports whether the cell lies inside the viewport rectangle.
func (v Viewport) Contains(x, y int) bool {
	return x >= v.Left && x < v.Left+v.Width && y >= v.Top && y < v.Top+v.Height
}

// FillBox fills the cells covered by the world-space box centered at
// center with the given half extents on X and Z. At least one cell is drawn.
func (v Viewport) FillBox(dst *Screen, center mgl64.Vec3, halfX, halfZ float64, r rune, c Color) {
	x0, y0 := v.ToCell(mgl64.Vec3{center.X() - halfX, 0, center.Z() + halfZ})
	x1, y1 := v.ToCell(mgl64.Vec3{center.X() + halfX, 0, center.Z() - halfZ})
	// The far edges are exclusive unless the box is thinner than a cell
	if x1 > x0 {
		x1--
	}
	if y1 > y0 {
		y1--
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if v.Contains(x, y) {
				dst.Set(x, y, r, c)
			}
		}
	}
}
