package breakout

// State is the session's game state. Exactly one is active at a time.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateVictory
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// BrickType is the damage policy of a brick.
type BrickType int

const (
	BrickStandard BrickType = iota
	BrickStrong
	BrickIndestructible
)

// String returns the name of the brick type.
func (t BrickType) String() string {
	switch t {
	case BrickStandard:
		return "standard"
	case BrickStrong:
		return "strong"
	case BrickIndestructible:
		return "indestructible"
	default:
		return "unknown"
	}
}
