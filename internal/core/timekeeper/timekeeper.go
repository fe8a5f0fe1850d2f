// Package timekeeper contains the stopwatch, countdown and alarm state
// machines. Engines hold no timers: the host samples or ticks them from its
// own scheduler, so every transition is driven by an explicit call.
// Engines are not safe for concurrent use.
package timekeeper

import (
	"errors"
	"time"
)

// ErrSplitNotImplemented is returned by Stopwatch.Split. Lap recording is a
// reserved control with no defined behavior yet.
var ErrSplitNotImplemented = errors.New("stopwatch split not implemented")

type notifier struct {
	handler func(Event)
}

// SetOnEvent registers the single event handler, replacing any previous one.
func (notifier *notifier) SetOnEvent(handler func(Event)) {
	notifier.handler = handler
}

func (notifier *notifier) emit(event Event) {
	if notifier.handler != nil {
		notifier.handler(event)
	}
}

func elapsedSince(start, now time.Time) time.Duration {
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
