package core

// Action represents a semantic player intent, abstracted from physical keys.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // A, Left arrow - paddle towards -X
	ActionRight           // D, Right arrow - paddle towards +X
	ActionForward         // W, Up arrow - paddle towards +Z
	ActionBack            // S, Down arrow - paddle towards -Z
	ActionLaunch          // Space - launch the ball, or start from the menu
	ActionStart           // Enter - start a game from the menu
	ActionPause           // P, Escape - pause/resume
	ActionRestart         // R - restart with a fresh level
	ActionMenu            // M - return to the menu
	ActionAutopilot       // T - toggle the autopilot
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionForward:
		return "Forward"
	case ActionBack:
		return "Back"
	case ActionLaunch:
		return "Launch"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionAutopilot:
		return "Autopilot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Axis returns the paddle direction an action asks for, or a zero vector
// for actions that do not move the paddle.
func (a Action) Axis() (x, z float64) {
	switch a {
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	case ActionForward:
		return 0, 1
	case ActionBack:
		return 0, -1
	default:
		return 0, 0
	}
}
