package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepiece/internal/ui/preferences"
)

func TestLoadSettingsMissingFileYieldsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsRoundTripBothFormats(t *testing.T) {
	settings := preferences.DefaultSettings()
	settings.AlarmSoundPath = "/tmp/alarm.oga"
	settings.ClockFormat = preferences.ClockFormat24h
	settings.StopwatchRefresh = 50 * time.Millisecond
	settings.StartAtLogin = true
	settings.LogLevel = "debug"
	settings.StorePath = "/tmp/timepiece.db"

	for _, name := range []string{"settings.yaml", "settings.toml"} {
		path := filepath.Join(t.TempDir(), "cfg", name)
		require.NoError(t, SaveSettings(path, settings), name)
		loaded, err := LoadSettings(path)
		require.NoError(t, err, name)
		assert.Equal(t, settings, loaded, name)
	}
}

func TestLoadSettingsClampsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := `
clock_format = "12H"
stopwatch_refresh_ms = 5000
alarm_check_ms = 1
overlay_opacity = 0.1
log_level = "loud"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, preferences.ClockFormat12h, settings.ClockFormat)
	assert.Equal(t, 100*time.Millisecond, settings.StopwatchRefresh)
	assert.Equal(t, 100*time.Millisecond, settings.AlarmCheck)
	assert.Equal(t, preferences.DefaultSettings().OverlayOpacity, settings.OverlayOpacity)
	assert.Equal(t, "info", settings.LogLevel)
}

func TestLoadSettingsRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [\n"), 0o644))

	settings, err := LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
