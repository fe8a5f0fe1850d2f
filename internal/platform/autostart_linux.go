//go:build linux

package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnableAutostart writes an XDG autostart entry for execPath.
func (service *platformService) EnableAutostart(appName, execPath string) error {
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	entryPath, err := service.autostartEntryPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(entryPath, []byte(buildDesktopEntry(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}

	return nil
}

// DisableAutostart removes the entry written by EnableAutostart.
func (service *platformService) DisableAutostart(appName string) error {
	entryPath, err := service.autostartEntryPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(entryPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}

	return nil
}

func (service *platformService) autostartEntryPath(appName string) (string, error) {
	if strings.TrimSpace(appName) == "" {
		return "", fmt.Errorf("app name is empty")
	}
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", desktopFileName(appName)), nil
}

func desktopFileName(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	return strings.Join(strings.Fields(name), "-") + ".desktop"
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.ContainsAny(execLine, " \t") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	lines := []string{
		"[Desktop Entry]",
		"Type=Application",
		"Name=" + appName,
		"Comment=Stopwatches, timers and alarms",
		"Exec=" + execLine,
		"Icon=alarm-symbolic",
		"Categories=Utility;Clock;",
		"X-GNOME-Autostart-enabled=true",
		"Terminal=false",
	}
	return strings.Join(lines, "\n") + "\n"
}
