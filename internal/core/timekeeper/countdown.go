package timekeeper

import (
	"time"

	"timepiece/internal/core/clock"
)

// Reading is a countdown sample. Remaining is the magnitude; when Overrun is
// set the deadline passed that many seconds ago.
type Reading struct {
	Remaining int64
	Overrun   bool
	// Expired is set only on the sample that emitted the expired event.
	Expired bool
}

// Signed returns the remaining seconds, negative once overrun.
func (reading Reading) Signed() int64 {
	if reading.Overrun {
		return -reading.Remaining
	}
	return reading.Remaining
}

// Countdown counts down from a target in whole seconds and keeps counting
// into overrun after the deadline.
type Countdown struct {
	notifier
	clock        clock.Clock
	target       int64
	accumulated  int64
	running      bool
	runStartedAt time.Time
	alerted      bool
}

// NewCountdown creates a stopped countdown with the given target seconds.
func NewCountdown(clk clock.Clock, targetSeconds int64) *Countdown {
	if targetSeconds < 0 {
		targetSeconds = 0
	}
	return &Countdown{clock: clk, target: targetSeconds}
}

// Start resumes counting down. It returns false when already running.
func (countdown *Countdown) Start() bool {
	if countdown.running {
		return false
	}
	now := countdown.clock.Now()
	countdown.running = true
	countdown.runStartedAt = now
	countdown.emit(Event{Type: EventStateChange, State: StateRunning, Remaining: countdown.remainingAt(now), At: now})
	return true
}

// Pause stops counting down. It returns false when not running. A zero
// crossing that happened since the last sample is reported before pausing.
func (countdown *Countdown) Pause() bool {
	if !countdown.running {
		return false
	}
	now := countdown.clock.Now()
	countdown.sampleAt(now)
	countdown.accumulated += int64(elapsedSince(countdown.runStartedAt, now) / time.Second)
	countdown.running = false
	countdown.runStartedAt = time.Time{}
	countdown.emit(Event{Type: EventStateChange, State: StatePaused, Remaining: countdown.remainingAt(now), At: now})
	return true
}

// Toggle starts a stopped countdown or pauses a running one.
func (countdown *Countdown) Toggle() {
	if countdown.running {
		countdown.Pause()
		return
	}
	countdown.Start()
}

// Reset stops the countdown, restores the full target and re-arms the
// expired alert.
func (countdown *Countdown) Reset() {
	countdown.running = false
	countdown.runStartedAt = time.Time{}
	countdown.accumulated = 0
	countdown.alerted = false
	now := countdown.clock.Now()
	countdown.emit(Event{Type: EventStateChange, State: StateIdle, Remaining: countdown.target, At: now})
	countdown.emit(Event{Type: EventValueChanged, State: StateIdle, Remaining: countdown.target, At: now})
}

// SetTarget replaces the target seconds and resets the countdown.
func (countdown *Countdown) SetTarget(seconds int64) {
	if seconds < 0 {
		seconds = 0
	}
	countdown.target = seconds
	countdown.Reset()
}

// AddTime extends the deadline by seconds without touching the run state.
func (countdown *Countdown) AddTime(seconds int64) {
	if seconds <= 0 {
		return
	}
	countdown.accumulated -= seconds
	now := countdown.clock.Now()
	reading := countdown.readingAt(now)
	countdown.emit(Event{
		Type:      EventValueChanged,
		State:     countdown.State(),
		Remaining: reading.Remaining,
		Overrun:   reading.Overrun,
		At:        now,
	})
}

// Sample returns the remaining time. The sample on which a running
// countdown first goes negative emits EventExpired; later samples do not
// until Reset or SetTarget.
func (countdown *Countdown) Sample() Reading {
	return countdown.sampleAt(countdown.clock.Now())
}

// Target returns the configured seconds.
func (countdown *Countdown) Target() int64 {
	return countdown.target
}

// Running reports whether the countdown is counting.
func (countdown *Countdown) Running() bool {
	return countdown.running
}

// State returns idle, running or paused.
func (countdown *Countdown) State() State {
	switch {
	case countdown.running:
		return StateRunning
	case countdown.accumulated != 0:
		return StatePaused
	default:
		return StateIdle
	}
}

func (countdown *Countdown) sampleAt(now time.Time) Reading {
	reading := countdown.readingAt(now)
	if reading.Overrun && countdown.running && !countdown.alerted {
		countdown.alerted = true
		reading.Expired = true
		countdown.emit(Event{
			Type:      EventExpired,
			State:     StateRunning,
			Remaining: reading.Remaining,
			Overrun:   true,
			At:        now,
		})
	}
	return reading
}

func (countdown *Countdown) readingAt(now time.Time) Reading {
	remaining := countdown.remainingAt(now)
	if remaining < 0 {
		return Reading{Remaining: -remaining, Overrun: true}
	}
	return Reading{Remaining: remaining}
}

func (countdown *Countdown) remainingAt(now time.Time) int64 {
	remaining := countdown.target - countdown.accumulated
	if countdown.running {
		remaining -= int64(elapsedSince(countdown.runStartedAt, now) / time.Second)
	}
	return remaining
}
