package storage

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"timepiece/internal/core/model"
)

// Store keys shared with the desktop settings.
const (
	AlarmsKey         = "alarms"
	AlarmSoundPathKey = "alarm-sound-path"
	TimerSoundPathKey = "timer-sound-path"
)

// AlarmRepository loads and saves the alarm list as a YAML sequence under
// AlarmsKey. Saves replace the whole list.
type AlarmRepository struct {
	store  Store
	logger *slog.Logger

	mu          sync.Mutex
	lastWritten string
	wrote       bool
}

// NewAlarmRepository creates a repository on top of store.
func NewAlarmRepository(store Store, logger *slog.Logger) *AlarmRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &AlarmRepository{store: store, logger: logger}
}

// Load returns the stored alarms in stored order. A missing key yields an
// empty list. Undecodable data is logged and treated as empty.
func (repository *AlarmRepository) Load() ([]model.AlarmConfig, error) {
	raw, ok, err := repository.store.Get(AlarmsKey)
	if err != nil {
		return []model.AlarmConfig{}, fmt.Errorf("load alarms: %w", err)
	}
	if !ok {
		return []model.AlarmConfig{}, nil
	}
	configs, err := DecodeAlarms(raw)
	if err != nil {
		repository.logger.Warn("ignoring stored alarms", "error", err)
		return []model.AlarmConfig{}, nil
	}
	return configs, nil
}

// Save replaces the stored list with configs.
func (repository *AlarmRepository) Save(configs []model.AlarmConfig) error {
	raw, err := EncodeAlarms(configs)
	if err != nil {
		return fmt.Errorf("save alarms: %w", err)
	}

	repository.mu.Lock()
	repository.lastWritten = raw
	repository.wrote = true
	repository.mu.Unlock()

	if err := repository.store.Set(AlarmsKey, raw); err != nil {
		return fmt.Errorf("save alarms: %w", err)
	}
	return nil
}

// Watch calls fn with the decoded list whenever another writer changes it.
// Notifications caused by this repository's own saves are skipped.
func (repository *AlarmRepository) Watch(fn func([]model.AlarmConfig)) (cancel func()) {
	return repository.store.OnChange(AlarmsKey, func(raw string) {
		repository.mu.Lock()
		echo := repository.wrote && raw == repository.lastWritten
		if !echo {
			repository.wrote = false
			repository.lastWritten = ""
		}
		repository.mu.Unlock()
		if echo {
			return
		}

		configs, err := DecodeAlarms(raw)
		if err != nil {
			repository.logger.Warn("ignoring external alarm change", "error", err)
			return
		}
		fn(configs)
	})
}

// EncodeAlarms renders configs as YAML.
func EncodeAlarms(configs []model.AlarmConfig) (string, error) {
	if configs == nil {
		configs = []model.AlarmConfig{}
	}
	serialized, err := yaml.Marshal(configs)
	if err != nil {
		return "", fmt.Errorf("marshal alarms yaml: %w", err)
	}
	return string(serialized), nil
}

// DecodeAlarms parses a YAML alarm list, clamping out-of-range entries.
func DecodeAlarms(raw string) ([]model.AlarmConfig, error) {
	configs := []model.AlarmConfig{}
	if strings.TrimSpace(raw) == "" {
		return configs, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &configs); err != nil {
		return []model.AlarmConfig{}, fmt.Errorf("parse alarms yaml: %w", err)
	}
	for i := range configs {
		configs[i] = configs[i].Clamp()
	}
	return configs, nil
}
