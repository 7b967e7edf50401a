// SPDX-License-Identifier: EPL-2.0

package playback

// State is where a Scheduler is in its lifecycle.
type State int

const (
	Stopped State = iota
	Playing
	// Paused is Stopped that remembers the position.
	Paused
)

var stateNames = []string{"stopped", "playing", "paused"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// EventKind tells what an Event reports.
type EventKind int

const (
	// StateChanged is sent on every transition.
	StateChanged EventKind = iota
	// Moved is sent on every tick while playing and after a seek.
	Moved
	// Ended is sent when playback reaches the end of the project, right
	// before the transition to Stopped.
	Ended
)

func (k EventKind) String() string {
	switch k {
	case StateChanged:
		return "state"
	case Moved:
		return "moved"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers.
type Event struct {
	Kind     EventKind
	State    State
	Position float64
}
