package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnsupported is returned for helpers the current OS does not provide.
var ErrUnsupported = errors.New("not supported on this platform")

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	GetDataDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return filepath.Join(homeDir, ".config"), nil
}

// GetDataDir returns $XDG_DATA_HOME, falling back to ~/.local/share.
func (service *platformService) GetDataDir() (string, error) {
	if dataDir := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(dataDir) {
		return dataDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get data dir: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share"), nil
}
