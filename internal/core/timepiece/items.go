package timepiece

import (
	"time"

	"timepiece/internal/core/clock"
	"timepiece/internal/core/dial"
	"timepiece/internal/core/duration"
	"timepiece/internal/core/model"
	"timepiece/internal/core/timekeeper"
)

// Item is a removable, titled entry shown in the menu and as a card.
type Item interface {
	ID() string
	Kind() model.Kind
	Title() string
	MenuText() string
	State() timekeeper.State

	startPolling()
	stopPolling()
}

type itemBase struct {
	id      string
	kind    model.Kind
	manager *Manager
	poll    *clock.Subscription
}

func (base *itemBase) ID() string {
	return base.id
}

func (base *itemBase) Kind() model.Kind {
	return base.kind
}

func (base *itemBase) Title() string {
	return base.kind.Title()
}

func (base *itemBase) pollEvery(interval time.Duration) {
	if base.poll.Active() {
		return
	}
	base.poll = base.manager.scheduler.Every(interval, func(time.Time) {
		base.manager.emit(Event{Type: EventItemUpdated, ItemID: base.id, Kind: base.kind, State: timekeeper.StateRunning})
	})
}

func (base *itemBase) stopPolling() {
	base.poll.Cancel()
	base.poll = nil
}

// StopwatchItem is a stopwatch card.
type StopwatchItem struct {
	itemBase
	engine *timekeeper.Stopwatch
}

func (item *StopwatchItem) startPolling() {
	item.pollEvery(item.manager.refresh.Stopwatch)
}

// State returns idle, running or paused.
func (item *StopwatchItem) State() timekeeper.State {
	return item.engine.State()
}

// Toggle starts or pauses.
func (item *StopwatchItem) Toggle() { item.engine.Toggle() }

// Start begins counting.
func (item *StopwatchItem) Start() { item.engine.Start() }

// Pause stops counting.
func (item *StopwatchItem) Pause() { item.engine.Pause() }

// Reset stops and zeroes.
func (item *StopwatchItem) Reset() { item.engine.Reset() }

// Split is reserved for lap recording.
func (item *StopwatchItem) Split() error { return item.engine.Split() }

// Running reports whether the stopwatch is counting.
func (item *StopwatchItem) Running() bool { return item.engine.Running() }

// Elapsed samples the engine.
func (item *StopwatchItem) Elapsed() time.Duration {
	return item.engine.Sample()
}

// Labels returns the card fields for the current sample.
func (item *StopwatchItem) Labels() duration.Labels {
	millis := item.Elapsed().Milliseconds()
	return duration.Format(duration.Decompose(millis, duration.Millisecond), duration.StopwatchFormat)
}

// MenuText renders the elapsed time for menus.
func (item *StopwatchItem) MenuText() string {
	return duration.StopwatchText(item.Elapsed().Milliseconds())
}

// TimerItem is a countdown timer card.
type TimerItem struct {
	itemBase
	engine *timekeeper.Countdown
}

func (item *TimerItem) startPolling() {
	if item.poll.Active() {
		return
	}
	item.poll = item.manager.scheduler.Every(item.manager.refresh.Timer, func(time.Time) {
		item.engine.Sample()
		item.manager.emit(Event{Type: EventItemUpdated, ItemID: item.id, Kind: item.kind, State: timekeeper.StateRunning})
	})
}

// State returns idle, running or paused.
func (item *TimerItem) State() timekeeper.State {
	return item.engine.State()
}

// Toggle starts or pauses.
func (item *TimerItem) Toggle() { item.engine.Toggle() }

// Start resumes counting down.
func (item *TimerItem) Start() { item.engine.Start() }

// Pause stops counting down.
func (item *TimerItem) Pause() { item.engine.Pause() }

// Reset restores the full target.
func (item *TimerItem) Reset() { item.engine.Reset() }

// SetTarget replaces the target seconds and resets.
func (item *TimerItem) SetTarget(seconds int64) { item.engine.SetTarget(seconds) }

// AddTime extends the deadline.
func (item *TimerItem) AddTime(seconds int64) { item.engine.AddTime(seconds) }

// Target returns the configured seconds.
func (item *TimerItem) Target() int64 { return item.engine.Target() }

// Running reports whether the timer is counting.
func (item *TimerItem) Running() bool { return item.engine.Running() }

// Reading samples the engine. A zero crossing found here raises the alert.
func (item *TimerItem) Reading() timekeeper.Reading {
	return item.engine.Sample()
}

// Labels returns the card fields for the current sample.
func (item *TimerItem) Labels() duration.Labels {
	reading := item.Reading()
	return duration.Format(duration.Decompose(reading.Remaining, duration.Second), duration.TimerFormat)
}

// MenuText renders the remaining time for menus.
func (item *TimerItem) MenuText() string {
	reading := item.Reading()
	text := duration.TimerText(reading.Remaining)
	if reading.Overrun {
		return "-" + text
	}
	return text
}

// AlarmItem is an alarm card. Every edit persists the alarm list.
type AlarmItem struct {
	itemBase
	engine *timekeeper.Alarm
}

// Alarms never poll; one manager-wide check ticks them all.
func (item *AlarmItem) startPolling() {}

// State returns armed, or firing during the alert.
func (item *AlarmItem) State() timekeeper.State {
	return item.engine.State()
}

// SetTime sets the canonical hour and minute.
func (item *AlarmItem) SetTime(hour, minute int) {
	item.engine.SetTime(hour, minute)
	item.manager.persistAlarms()
}

// ScrollHours steps the displayed hour.
func (item *AlarmItem) ScrollHours(direction int) {
	item.engine.ScrollHours(direction)
	item.manager.persistAlarms()
}

// ScrollMinutes steps the minute.
func (item *AlarmItem) ScrollMinutes(direction int) {
	item.engine.ScrollMinutes(direction)
	item.manager.persistAlarms()
}

// ToggleMeridiem flips AM and PM.
func (item *AlarmItem) ToggleMeridiem() {
	item.engine.ToggleMeridiem()
	item.manager.persistAlarms()
}

// HourDial returns a dial selection for the displayed hour.
func (item *AlarmItem) HourDial() *dial.Selection { return item.engine.HourDial() }

// MinuteDial returns a dial selection for the minute.
func (item *AlarmItem) MinuteDial() *dial.Selection { return item.engine.MinuteDial() }

// ApplyHourDial writes back a picked hour.
func (item *AlarmItem) ApplyHourDial(value int) {
	item.engine.ApplyHourDial(value)
	item.manager.persistAlarms()
}

// ApplyMinuteDial writes back a picked minute.
func (item *AlarmItem) ApplyMinuteDial(value int) {
	item.engine.ApplyMinuteDial(value)
	item.manager.persistAlarms()
}

// Config returns the canonical persisted form.
func (item *AlarmItem) Config() model.AlarmConfig { return item.engine.Config() }

// NextFireAt returns the armed instant.
func (item *AlarmItem) NextFireAt() time.Time { return item.engine.NextFireAt() }

// Use24Hour reports the display form fixed at creation.
func (item *AlarmItem) Use24Hour() bool { return item.engine.Use24Hour() }

// DisplayHour returns the hour as shown.
func (item *AlarmItem) DisplayHour() int { return item.engine.DisplayHour() }

// IsAM reports whether the alarm is before noon.
func (item *AlarmItem) IsAM() bool { return item.engine.IsAM() }

// MenuText renders the alarm time.
func (item *AlarmItem) MenuText() string { return item.engine.MenuText() }
