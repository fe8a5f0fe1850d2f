package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"timepiece/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type fileSettings struct {
	AlarmSoundPath     string  `yaml:"alarm_sound_path" toml:"alarm_sound_path"`
	TimerSoundPath     string  `yaml:"timer_sound_path" toml:"timer_sound_path"`
	ClockFormat        string  `yaml:"clock_format" toml:"clock_format"`
	StopwatchRefreshMs int     `yaml:"stopwatch_refresh_ms" toml:"stopwatch_refresh_ms"`
	TimerRefreshMs     int     `yaml:"timer_refresh_ms" toml:"timer_refresh_ms"`
	AlarmCheckMs       int     `yaml:"alarm_check_ms" toml:"alarm_check_ms"`
	OverlayOpacity     float64 `yaml:"overlay_opacity" toml:"overlay_opacity"`
	StartAtLogin       bool    `yaml:"start_at_login" toml:"start_at_login"`
	LogLevel           string  `yaml:"log_level" toml:"log_level"`
	StorePath          string  `yaml:"store_path" toml:"store_path"`
}

// SettingsPath returns the default preferences file for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from path. Files ending in .toml are
// parsed as TOML, anything else as YAML. A missing file yields defaults and
// out-of-range values are clamped.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData fileSettings
	if isTOML(path) {
		if _, err := toml.Decode(string(rawData), &fileData); err != nil {
			return settings, fmt.Errorf("parse settings toml: %w", err)
		}
	} else if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyFileSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// SaveSettings writes user preferences to path in the format chosen by its
// extension.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Normalize()
	fileData := fileSettings{
		AlarmSoundPath:     settings.AlarmSoundPath,
		TimerSoundPath:     settings.TimerSoundPath,
		ClockFormat:        string(settings.ClockFormat),
		StopwatchRefreshMs: int(settings.StopwatchRefresh / time.Millisecond),
		TimerRefreshMs:     int(settings.TimerRefresh / time.Millisecond),
		AlarmCheckMs:       int(settings.AlarmCheck / time.Millisecond),
		OverlayOpacity:     settings.OverlayOpacity,
		StartAtLogin:       settings.StartAtLogin,
		LogLevel:           settings.LogLevel,
		StorePath:          settings.StorePath,
	}

	var serialized []byte
	if isTOML(path) {
		var buffer bytes.Buffer
		if err := toml.NewEncoder(&buffer).Encode(fileData); err != nil {
			return fmt.Errorf("marshal settings toml: %w", err)
		}
		serialized = buffer.Bytes()
	} else {
		var err error
		serialized, err = yaml.Marshal(fileData)
		if err != nil {
			return fmt.Errorf("marshal settings yaml: %w", err)
		}
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func applyFileSettings(settings *preferences.Settings, fileData fileSettings) {
	if fileData.AlarmSoundPath != "" {
		settings.AlarmSoundPath = fileData.AlarmSoundPath
	}
	if fileData.TimerSoundPath != "" {
		settings.TimerSoundPath = fileData.TimerSoundPath
	}
	if fileData.ClockFormat != "" {
		settings.ClockFormat = preferences.ClockFormat(strings.ToLower(fileData.ClockFormat))
	}
	if fileData.StopwatchRefreshMs > 0 {
		settings.StopwatchRefresh = time.Duration(fileData.StopwatchRefreshMs) * time.Millisecond
	}
	if fileData.TimerRefreshMs > 0 {
		settings.TimerRefresh = time.Duration(fileData.TimerRefreshMs) * time.Millisecond
	}
	if fileData.AlarmCheckMs > 0 {
		settings.AlarmCheck = time.Duration(fileData.AlarmCheckMs) * time.Millisecond
	}
	if fileData.OverlayOpacity > 0 {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}

	settings.StartAtLogin = fileData.StartAtLogin
	settings.StorePath = fileData.StorePath
}
