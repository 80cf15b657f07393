// Package run implements the top-level run state machine: menu flow, the
// playing loop that drives the simulation field, scoring, the death
// sequence and asynchronous leaderboard traffic. Like the simulation it is
// single-threaded; the only goroutines live behind the Gateway and deliver
// results through a channel drained once per update.
package run

// State identifies the single active screen of the state machine.
type State int

const (
	// StateTitle is the entry screen.
	StateTitle State = iota
	// StateSongSelect lets the player pick a course (rhythm mode only).
	StateSongSelect
	// StateTutorial shows the controls before the first run.
	StateTutorial
	// StateStarting counts down into the run.
	StateStarting
	// StatePlaying is the live simulation.
	StatePlaying
	// StateDying plays the four-phase death sequence.
	StateDying
	// StateNameEntry asks an anonymous top-ten player for a name.
	StateNameEntry
	// StateDead shows the final score and leaderboard.
	StateDead
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateTitle:
		return "Title"
	case StateSongSelect:
		return "SongSelect"
	case StateTutorial:
		return "Tutorial"
	case StateStarting:
		return "Starting"
	case StatePlaying:
		return "Playing"
	case StateDying:
		return "Dying"
	case StateNameEntry:
		return "NameEntry"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// DeathPhase identifies the stage of the death sequence.
type DeathPhase int

const (
	// PhaseRamp eases the overlay in while the wreck is still visible.
	PhaseRamp DeathPhase = iota
	// PhaseSnap finishes the overlay to full cover.
	PhaseSnap
	// PhaseHold keeps the cover up while the submission decision resolves.
	PhaseHold
	// PhaseFade reveals the prepared end screen.
	PhaseFade
)
