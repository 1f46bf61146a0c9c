package core

// Color represents a foreground color for a screen cell.
// The presentation layer maps it to a terminal color.
type Color uint8

// Colors used by the arena renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGray
	ColorYellow
	ColorGreen
	ColorCyan
	ColorWhite
	ColorDim
)
