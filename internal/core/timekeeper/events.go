package timekeeper

import "time"

// State represents the current mode of an engine.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateArmed   State = "armed"
	StateFiring  State = "firing"
)

// EventType defines the type of engine event.
type EventType string

const (
	// EventStateChange reports a run-state transition; controls should be
	// enabled or disabled accordingly.
	EventStateChange EventType = "state_change"
	// EventValueChanged reports a change that needs a redraw.
	EventValueChanged EventType = "value_changed"
	// EventExpired is emitted once when a running countdown passes zero.
	EventExpired EventType = "expired"
	// EventFired is emitted once per scheduled alarm occurrence.
	EventFired EventType = "fired"
)

// Event represents an engine update for the presentation layer.
type Event struct {
	Type       EventType
	State      State
	Elapsed    time.Duration
	Remaining  int64
	Overrun    bool
	NextFireAt time.Time
	At         time.Time
}
