package core

// Action represents a semantic game action, abstracted from physical key
// presses. The platform layer maps keys (or SSH input) to these intents.
type Action int

const (
	ActionNone    Action = iota
	ActionLaneUp         // W, Up arrow - move one lane up
	ActionLaneDown       // S, Down arrow - move one lane down
	ActionSlash          // Space, J - melee slash
	ActionFire           // F, K - fire a projectile (consumes ammo)
	ActionConfirm        // Enter - confirm (start run, submit name)
	ActionBack           // Escape, B - back to title
	ActionRestart        // R - restart after death
	ActionPause          // P - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLaneUp:
		return "LaneUp"
	case ActionLaneDown:
		return "LaneDown"
	case ActionSlash:
		return "Slash"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
