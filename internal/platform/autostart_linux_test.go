//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopEntry(t *testing.T) {
	assert.Equal(t, "time-piece.desktop", desktopFileName("  Time  Piece "))

	entry := buildDesktopEntry("Timepiece", "/opt/my apps/timepiece")
	assert.Contains(t, entry, "Name=Timepiece\n")
	assert.Contains(t, entry, `Exec="/opt/my apps/timepiece"`)
	assert.Contains(t, entry, "X-GNOME-Autostart-enabled=true\n")
}

func TestAutostartEnableDisable(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	require.NoError(t, service.EnableAutostart("Timepiece", "/usr/bin/timepiece"))
	entryPath := filepath.Join(configDir, "autostart", "timepiece.desktop")
	content, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Exec=/usr/bin/timepiece\n")

	require.NoError(t, service.DisableAutostart("Timepiece"))
	require.NoError(t, service.DisableAutostart("Timepiece"))
	_, err = os.Stat(entryPath)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, service.EnableAutostart(" ", "/usr/bin/timepiece"))
}

func TestDataDirHonoursXDG(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataDir)
	got, err := NewService().GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, dataDir, got)
}
