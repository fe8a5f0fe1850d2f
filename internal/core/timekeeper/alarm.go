package timekeeper

import (
	"fmt"
	"time"

	"timepiece/internal/core/clock"
	"timepiece/internal/core/dial"
	"timepiece/internal/core/model"
)

// Alarm fires once a day at a local wall-clock hour and minute.
type Alarm struct {
	notifier
	clock      clock.Clock
	config     model.AlarmConfig
	use24h     bool
	nextFireAt time.Time
	state      State
}

// NewAlarm creates an armed alarm. use24h selects the display form and is
// fixed for the lifetime of the alarm.
func NewAlarm(clk clock.Clock, config model.AlarmConfig, use24h bool) *Alarm {
	alarm := &Alarm{clock: clk, config: config.Clamp(), use24h: use24h}
	alarm.arm(clk.Now())
	return alarm
}

// SetTime updates the canonical hour and minute and re-arms.
func (alarm *Alarm) SetTime(hour, minute int) {
	alarm.config = model.AlarmConfig{Hour: hour, Minute: minute}.Clamp()
	now := alarm.clock.Now()
	alarm.arm(now)
	alarm.emit(Event{Type: EventValueChanged, State: alarm.state, NextFireAt: alarm.nextFireAt, At: now})
}

// SetHour12 sets the displayed 12-hour value, keeping AM/PM.
func (alarm *Alarm) SetHour12(hour12 int) {
	_, isAM := To12Hour(alarm.config.Hour)
	alarm.SetTime(To24Hour(hour12, isAM), alarm.config.Minute)
}

// SetMeridiem switches between AM and PM keeping the displayed hour.
func (alarm *Alarm) SetMeridiem(isAM bool) {
	hour12, _ := To12Hour(alarm.config.Hour)
	alarm.SetTime(To24Hour(hour12, isAM), alarm.config.Minute)
}

// ToggleMeridiem flips AM and PM.
func (alarm *Alarm) ToggleMeridiem() {
	alarm.SetMeridiem(!alarm.IsAM())
}

// Tick fires the alarm when its instant has been reached. It returns true
// when the alarm fired. Redundant calls never fire twice for one
// occurrence, and a clock that jumped past several occurrences fires once.
func (alarm *Alarm) Tick(now time.Time) bool {
	if alarm.nextFireAt.Sub(now) > 24*time.Hour {
		alarm.arm(now)
		return false
	}
	if now.Before(alarm.nextFireAt) {
		return false
	}

	firedFor := alarm.nextFireAt
	alarm.state = StateFiring
	alarm.emit(Event{Type: EventFired, State: StateFiring, NextFireAt: firedFor, At: now})
	alarm.arm(now)
	alarm.emit(Event{Type: EventStateChange, State: alarm.state, NextFireAt: alarm.nextFireAt, At: now})
	return true
}

// ScrollHours steps the displayed hour with wraparound.
func (alarm *Alarm) ScrollHours(direction int) {
	if alarm.use24h {
		alarm.SetTime(dial.Wrap(alarm.config.Hour+direction, 0, 23), alarm.config.Minute)
		return
	}
	hour12, isAM := To12Hour(alarm.config.Hour)
	alarm.SetTime(To24Hour(dial.Wrap(hour12+direction, 1, 12), isAM), alarm.config.Minute)
}

// ScrollMinutes steps the minute with wraparound.
func (alarm *Alarm) ScrollMinutes(direction int) {
	alarm.SetTime(alarm.config.Hour, dial.Wrap(alarm.config.Minute+direction, 0, 59))
}

// HourDial returns a dial selection for the displayed hour. On the 12-hour
// face position 0 stands for twelve.
func (alarm *Alarm) HourDial() *dial.Selection {
	if alarm.use24h {
		return dial.NewSelection(1, 24, alarm.config.Hour)
	}
	hour12, _ := To12Hour(alarm.config.Hour)
	return dial.NewSelection(1, 12, hour12%12)
}

// MinuteDial returns a dial selection for the minute.
func (alarm *Alarm) MinuteDial() *dial.Selection {
	return dial.NewSelection(1, 60, alarm.config.Minute)
}

// ApplyHourDial writes back a value picked on HourDial.
func (alarm *Alarm) ApplyHourDial(value int) {
	if alarm.use24h {
		alarm.SetTime(value, alarm.config.Minute)
		return
	}
	if value == 0 {
		value = 12
	}
	alarm.SetHour12(value)
}

// ApplyMinuteDial writes back a value picked on MinuteDial.
func (alarm *Alarm) ApplyMinuteDial(value int) {
	alarm.SetTime(alarm.config.Hour, value)
}

// Config returns the canonical persisted form.
func (alarm *Alarm) Config() model.AlarmConfig {
	return alarm.config
}

// NextFireAt returns the armed instant.
func (alarm *Alarm) NextFireAt() time.Time {
	return alarm.nextFireAt
}

// State returns armed, or firing while the fire event is being delivered.
func (alarm *Alarm) State() State {
	return alarm.state
}

// Use24Hour reports the display form chosen at construction.
func (alarm *Alarm) Use24Hour() bool {
	return alarm.use24h
}

// DisplayHour returns the hour as shown to the user.
func (alarm *Alarm) DisplayHour() int {
	if alarm.use24h {
		return alarm.config.Hour
	}
	hour12, _ := To12Hour(alarm.config.Hour)
	return hour12
}

// IsAM reports whether the canonical hour is before noon.
func (alarm *Alarm) IsAM() bool {
	_, isAM := To12Hour(alarm.config.Hour)
	return isAM
}

// MenuText renders the alarm time for menus, e.g. "6:05 AM" or "18:05".
func (alarm *Alarm) MenuText() string {
	text := fmt.Sprintf("%d:%02d", alarm.DisplayHour(), alarm.config.Minute)
	if alarm.use24h {
		return text
	}
	if alarm.IsAM() {
		return text + " AM"
	}
	return text + " PM"
}

func (alarm *Alarm) arm(now time.Time) {
	alarm.nextFireAt = NextOccurrence(now, alarm.config)
	alarm.state = StateArmed
}

// NextOccurrence returns the first local instant strictly after now whose
// wall clock reads config's hour and minute with zero seconds.
func NextOccurrence(now time.Time, config model.AlarmConfig) time.Time {
	year, month, day := now.Date()
	candidate := time.Date(year, month, day, config.Hour, config.Minute, 0, 0, now.Location())
	if candidate.After(now) {
		return candidate
	}
	return time.Date(year, month, day+1, config.Hour, config.Minute, 0, 0, now.Location())
}

// To12Hour converts a canonical hour to its 12-hour form.
func To12Hour(hour24 int) (hour12 int, isAM bool) {
	hour24 = dial.Wrap(hour24, 0, 23)
	hour12 = hour24 % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return hour12, hour24 < 12
}

// To24Hour converts a 12-hour value and meridiem to the canonical hour.
func To24Hour(hour12 int, isAM bool) int {
	hour := dial.Wrap(hour12, 1, 12) % 12
	if !isAM {
		hour += 12
	}
	return hour
}
