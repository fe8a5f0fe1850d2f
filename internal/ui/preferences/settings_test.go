package preferences

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsOutOfRange(t *testing.T) {
	settings := DefaultSettings()
	settings.StopwatchRefresh = time.Millisecond
	settings.TimerRefresh = 0
	settings.AlarmCheck = time.Hour
	settings.ClockFormat = "36h"
	settings.OverlayOpacity = 3
	settings.LogLevel = " WARN "

	normalized := settings.Normalize()
	assert.Equal(t, 10*time.Millisecond, normalized.StopwatchRefresh)
	assert.Equal(t, 100*time.Millisecond, normalized.TimerRefresh)
	assert.Equal(t, time.Minute, normalized.AlarmCheck)
	assert.Equal(t, ClockFormatSystem, normalized.ClockFormat)
	assert.Equal(t, DefaultSettings().OverlayOpacity, normalized.OverlayOpacity)
	assert.Equal(t, "warn", normalized.LogLevel)
	assert.Equal(t, slog.LevelWarn, normalized.Level())
}

func TestDefaultsAreNormal(t *testing.T) {
	assert.Equal(t, DefaultSettings(), DefaultSettings().Normalize())
	assert.Equal(t, slog.LevelInfo, Settings{LogLevel: "bogus"}.Level())
}
