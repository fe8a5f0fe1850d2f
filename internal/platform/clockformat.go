package platform

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

const (
	cinnamonInterfaceSchema = "org.cinnamon.desktop.interface"
	clockUse24hKey          = "clock-use-24h"
)

// ClockFormat reports the desktop's 24-hour clock preference.
type ClockFormat struct {
	gsettingsPath string
	fallback      bool
	run           func(name string, args ...string) ([]byte, error)
	logger        *slog.Logger
}

// NewClockFormat queries gsettings. When it is missing or the key cannot be
// read, fallback is returned.
func NewClockFormat(fallback bool, logger *slog.Logger) *ClockFormat {
	if logger == nil {
		logger = slog.Default()
	}
	path, err := exec.LookPath("gsettings")
	if err != nil {
		logger.Debug("gsettings not found, using default clock format", "use_24h", fallback)
		path = ""
	}
	return &ClockFormat{
		gsettingsPath: path,
		fallback:      fallback,
		run:           runCommand,
		logger:        logger,
	}
}

// FixedClockFormat always reports use24h.
func FixedClockFormat(use24h bool) *ClockFormat {
	return &ClockFormat{fallback: use24h}
}

// Use24Hour reads the preference.
func (format *ClockFormat) Use24Hour() bool {
	if format.gsettingsPath == "" || format.run == nil {
		return format.fallback
	}
	output, err := format.run(format.gsettingsPath, "get", cinnamonInterfaceSchema, clockUse24hKey)
	if err != nil {
		format.logger.Warn("read clock format", "error", err)
		return format.fallback
	}
	use24h, err := parseGSettingsBool(string(output))
	if err != nil {
		format.logger.Warn("parse clock format", "error", err)
		return format.fallback
	}
	return use24h
}

func parseGSettingsBool(output string) (bool, error) {
	value := strings.TrimSpace(output)
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("unexpected gsettings value %q", value)
	}
	return parsed, nil
}

func runCommand(name string, args ...string) ([]byte, error) {
	output, err := exec.Command(name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}
