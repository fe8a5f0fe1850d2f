package preferences

import (
	"log/slog"
	"strings"
	"time"

	"timepiece/internal/core/model"
)

// ClockFormat selects how alarm hours are displayed.
type ClockFormat string

const (
	ClockFormatSystem ClockFormat = "system"
	ClockFormat12h    ClockFormat = "12h"
	ClockFormat24h    ClockFormat = "24h"
)

// Settings defines editable user preferences.
type Settings struct {
	AlarmSoundPath string
	TimerSoundPath string
	ClockFormat    ClockFormat

	StopwatchRefresh time.Duration
	TimerRefresh     time.Duration
	AlarmCheck       time.Duration

	OverlayOpacity float64
	StartAtLogin   bool
	LogLevel       string
	StorePath      string
}

// DefaultSettings returns default settings for Timepiece.
func DefaultSettings() Settings {
	refresh := model.DefaultRefreshConfig()
	return Settings{
		AlarmSoundPath:   "/usr/share/sounds/freedesktop/stereo/alarm-clock-elapsed.oga",
		TimerSoundPath:   "/usr/share/sounds/freedesktop/stereo/complete.oga",
		ClockFormat:      ClockFormatSystem,
		StopwatchRefresh: refresh.Stopwatch,
		TimerRefresh:     refresh.Timer,
		AlarmCheck:       refresh.Alarm,
		OverlayOpacity:   0.9,
		LogLevel:         "info",
	}
}

// Normalize clamps every field into its valid range.
func (settings Settings) Normalize() Settings {
	refresh := settings.RefreshConfig()
	settings.StopwatchRefresh = refresh.Stopwatch
	settings.TimerRefresh = refresh.Timer
	settings.AlarmCheck = refresh.Alarm

	switch settings.ClockFormat {
	case ClockFormat12h, ClockFormat24h, ClockFormatSystem:
	default:
		settings.ClockFormat = ClockFormatSystem
	}
	if settings.OverlayOpacity < 0.5 || settings.OverlayOpacity > 1 {
		settings.OverlayOpacity = DefaultSettings().OverlayOpacity
	}
	settings.LogLevel = strings.ToLower(strings.TrimSpace(settings.LogLevel))
	if _, ok := levels[settings.LogLevel]; !ok {
		settings.LogLevel = "info"
	}
	return settings
}

// RefreshConfig converts settings to polling cadences.
func (settings Settings) RefreshConfig() model.RefreshConfig {
	return model.RefreshConfig{
		Stopwatch: settings.StopwatchRefresh,
		Timer:     settings.TimerRefresh,
		Alarm:     settings.AlarmCheck,
	}.Normalize()
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the slog level for LogLevel.
func (settings Settings) Level() slog.Level {
	if level, ok := levels[strings.ToLower(settings.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}
