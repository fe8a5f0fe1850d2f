package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepiece/internal/core/model"
	"timepiece/internal/core/timepiece"
	"timepiece/internal/platform"
	"timepiece/internal/storage"
	"timepiece/internal/ui/preferences"
)

type fakeService struct {
	dataDir   string
	enabled   bool
	disabled  bool
	execPaths []string
}

func (service *fakeService) GetConfigDir() (string, error) { return service.dataDir, nil }
func (service *fakeService) GetDataDir() (string, error)   { return service.dataDir, nil }

func (service *fakeService) EnableAutostart(_, execPath string) error {
	service.enabled = true
	service.execPaths = append(service.execPaths, execPath)
	return nil
}

func (service *fakeService) DisableAutostart(string) error {
	service.disabled = true
	return platform.ErrUnsupported
}

func quietLogger() *slog.Logger {
	level := new(slog.LevelVar)
	level.Set(slog.LevelError)
	return newLogger(&bytes.Buffer{}, level)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "store", "tui"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}

func TestOpenStoreUsesDataDir(t *testing.T) {
	service := &fakeService{dataDir: t.TempDir()}
	store, closeStore := openStore(service, preferences.DefaultSettings(), quietLogger())
	defer closeStore()

	_, ok := store.(*storage.SQLiteStore)
	assert.True(t, ok)
	assert.FileExists(t, storage.DefaultStorePath(service.dataDir, appDir))
}

func TestOpenStoreFallsBackToMemory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	settings := preferences.DefaultSettings()
	settings.StorePath = filepath.Join(blocker, "sub", "settings.db")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store, closeStore := openStore(&fakeService{}, settings, quietLogger())
	defer closeStore()
	_, ok := store.(*storage.MemoryStore)
	assert.True(t, ok)
}

func TestMirrorSoundPaths(t *testing.T) {
	store := storage.NewMemoryStore()
	settings := preferences.DefaultSettings()
	settings.TimerSoundPath = "/tmp/ding.oga"
	mirrorSoundPaths(store, settings, quietLogger())

	value, ok, err := store.Get(storage.TimerSoundPathKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/ding.oga", value)

	value, _, _ = store.Get(storage.AlarmSoundPathKey)
	assert.Equal(t, settings.AlarmSoundPath, value)
}

func TestClockFormatFor(t *testing.T) {
	assert.False(t, clockFormatFor(preferences.ClockFormat12h, quietLogger()).Use24Hour())
	assert.True(t, clockFormatFor(preferences.ClockFormat24h, quietLogger()).Use24Hour())
}

func TestApplyPersistsAndMirrors(t *testing.T) {
	service := &fakeService{dataDir: t.TempDir()}
	level := new(slog.LevelVar)
	current := &session{
		settings:     preferences.DefaultSettings(),
		settingsPath: filepath.Join(t.TempDir(), "settings.yaml"),
		logger:       quietLogger(),
		level:        level,
		service:      service,
		store:        storage.NewMemoryStore(),
	}

	updated := current.settings
	updated.LogLevel = "debug"
	updated.AlarmSoundPath = "/tmp/wake.oga"
	updated.StartAtLogin = true
	current.apply(updated)

	assert.Equal(t, slog.LevelDebug, level.Level())
	assert.True(t, service.enabled)
	value, _, _ := current.store.Get(storage.AlarmSoundPathKey)
	assert.Equal(t, "/tmp/wake.oga", value)

	loaded, err := storage.LoadSettings(current.settingsPath)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/wake.oga", loaded.AlarmSoundPath)
	assert.True(t, loaded.StartAtLogin)

	updated.StartAtLogin = false
	current.apply(updated)
	assert.True(t, service.disabled)
}

func TestTrayEntriesFollowManager(t *testing.T) {
	manager := timepiece.NewManager(timepiece.Deps{Logger: quietLogger()}, model.DefaultRefreshConfig())
	defer manager.Close()
	stopwatch := manager.NewStopwatch()
	alarm := manager.NewAlarm(model.AlarmConfig{Hour: 7, Minute: 5})

	entries := trayEntries(manager)
	require.Len(t, entries, 2)
	assert.Equal(t, stopwatch.ID(), entries[0].ID)
	assert.Equal(t, "0:00", entries[0].Label)
	assert.Equal(t, model.KindAlarm, entries[1].Kind)
	assert.Equal(t, "7:05", entries[1].Label)

	assert.True(t, structural(timepiece.Event{Type: timepiece.EventItemAdded}))
	assert.False(t, structural(timepiece.Event{Type: timepiece.EventItemUpdated}))
}
