package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/arena"
	"github.com/vovakirdan/brickfall/internal/breakout"
	"github.com/vovakirdan/brickfall/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// renderArena draws every live body of w through vp. The ball is drawn
// last so it stays visible when it overlaps another body.
func renderArena(dst *core.Screen, vp core.Viewport, w *arena.World) {
	var ball *arena.Body
	for _, b := range w.Bodies() {
		if b.Category() == breakout.CategoryBall {
			ball = b
			continue
		}
		r, c := bodyGlyph(b)
		half := b.HalfExtents()
		vp.FillBox(dst, b.Position(), half.X(), half.Y(), r, c)
	}
	if ball != nil {
		x, y := vp.ToCell(ball.Position())
		if vp.Contains(x, y) {
			dst.Set(x, y, '●', core.ColorWhite)
		}
	}
}

// bodyGlyph picks the rune and color a body is drawn with. Bricks fade as
// they lose health.
func bodyGlyph(b *arena.Body) (rune, core.Color) {
	switch b.Category() {
	case breakout.CategoryWall:
		return '█', core.ColorGray
	case breakout.CategoryDeadZone:
		return '░', core.ColorDim
	case breakout.CategoryPaddle:
		return '▀', core.ColorCyan
	case breakout.CategoryBrick:
		switch b.BrickType() {
		case breakout.BrickStrong:
			if b.Health() < 1 {
				return '▒', core.ColorBlue
			}
			return '▓', core.ColorBlue
		case breakout.BrickIndestructible:
			return '▒', core.ColorGray
		default:
			return '▓', core.ColorGreen
		}
	default:
		return '?', core.ColorRed
	}
}
