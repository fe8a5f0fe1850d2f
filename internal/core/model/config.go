package model

import "time"

// Kind identifies the type of a timepiece item.
type Kind string

const (
	KindStopwatch Kind = "stopwatch"
	KindTimer     Kind = "timer"
	KindAlarm     Kind = "alarm"
)

// Kinds lists item kinds in menu order.
var Kinds = []Kind{KindStopwatch, KindTimer, KindAlarm}

// Title returns the card title for the kind.
func (kind Kind) Title() string {
	switch kind {
	case KindStopwatch:
		return "StopWatch"
	case KindTimer:
		return "Timer"
	case KindAlarm:
		return "Alarm"
	default:
		return string(kind)
	}
}

// AlarmConfig is the persisted form of an alarm. Hour is always the
// canonical 24-hour value.
type AlarmConfig struct {
	Hour   int `yaml:"hours"`
	Minute int `yaml:"minutes"`
}

// DefaultAlarm is used for alarms created from the menu.
func DefaultAlarm() AlarmConfig {
	return AlarmConfig{Hour: 6, Minute: 0}
}

// Clamp forces the config into its valid range.
func (config AlarmConfig) Clamp() AlarmConfig {
	config.Hour = clampInt(config.Hour, 0, 23)
	config.Minute = clampInt(config.Minute, 0, 59)
	return config
}

// RefreshConfig contains polling cadences for live items.
type RefreshConfig struct {
	Stopwatch time.Duration
	Timer     time.Duration
	Alarm     time.Duration
}

// DefaultRefreshConfig returns the default polling cadences.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Stopwatch: 30 * time.Millisecond,
		Timer:     100 * time.Millisecond,
		Alarm:     time.Second,
	}
}

// Normalize clamps cadences into their supported ranges.
func (config RefreshConfig) Normalize() RefreshConfig {
	defaults := DefaultRefreshConfig()
	if config.Stopwatch <= 0 {
		config.Stopwatch = defaults.Stopwatch
	}
	config.Stopwatch = clampDuration(config.Stopwatch, 10*time.Millisecond, 100*time.Millisecond)
	if config.Timer <= 0 {
		config.Timer = defaults.Timer
	}
	config.Timer = clampDuration(config.Timer, 10*time.Millisecond, time.Second)
	if config.Alarm <= 0 {
		config.Alarm = defaults.Alarm
	}
	config.Alarm = clampDuration(config.Alarm, 100*time.Millisecond, time.Minute)
	return config
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func clampDuration(value, low, high time.Duration) time.Duration {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
