package timekeeper

import (
	"time"

	"timepiece/internal/core/clock"
)

// Stopwatch accumulates elapsed wall-clock time across start/pause cycles.
type Stopwatch struct {
	notifier
	clock        clock.Clock
	accumulated  time.Duration
	running      bool
	runStartedAt time.Time
}

// NewStopwatch creates a stopped stopwatch at zero.
func NewStopwatch(clk clock.Clock) *Stopwatch {
	return &Stopwatch{clock: clk}
}

// Start begins counting. It returns false when already running.
func (stopwatch *Stopwatch) Start() bool {
	if stopwatch.running {
		return false
	}
	now := stopwatch.clock.Now()
	stopwatch.running = true
	stopwatch.runStartedAt = now
	stopwatch.emit(Event{Type: EventStateChange, State: StateRunning, Elapsed: stopwatch.accumulated, At: now})
	return true
}

// Pause stops counting and folds the current run into the total. It
// returns false when not running.
func (stopwatch *Stopwatch) Pause() bool {
	if !stopwatch.running {
		return false
	}
	now := stopwatch.clock.Now()
	stopwatch.accumulated += elapsedSince(stopwatch.runStartedAt, now)
	stopwatch.running = false
	stopwatch.runStartedAt = time.Time{}
	stopwatch.emit(Event{Type: EventStateChange, State: StatePaused, Elapsed: stopwatch.accumulated, At: now})
	return true
}

// Toggle starts a stopped stopwatch or pauses a running one.
func (stopwatch *Stopwatch) Toggle() {
	if stopwatch.running {
		stopwatch.Pause()
		return
	}
	stopwatch.Start()
}

// Reset stops the stopwatch and clears the total.
func (stopwatch *Stopwatch) Reset() {
	stopwatch.running = false
	stopwatch.runStartedAt = time.Time{}
	stopwatch.accumulated = 0
	now := stopwatch.clock.Now()
	stopwatch.emit(Event{Type: EventStateChange, State: StateIdle, At: now})
	stopwatch.emit(Event{Type: EventValueChanged, State: StateIdle, At: now})
}

// Sample returns the effective elapsed time without changing state.
func (stopwatch *Stopwatch) Sample() time.Duration {
	if !stopwatch.running {
		return stopwatch.accumulated
	}
	return stopwatch.accumulated + elapsedSince(stopwatch.runStartedAt, stopwatch.clock.Now())
}

// Running reports whether the stopwatch is counting.
func (stopwatch *Stopwatch) Running() bool {
	return stopwatch.running
}

// State returns idle, running or paused.
func (stopwatch *Stopwatch) State() State {
	switch {
	case stopwatch.running:
		return StateRunning
	case stopwatch.accumulated > 0:
		return StatePaused
	default:
		return StateIdle
	}
}

// Split is reserved for lap recording.
func (stopwatch *Stopwatch) Split() error {
	return ErrSplitNotImplemented
}
