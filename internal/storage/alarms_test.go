package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepiece/internal/core/model"
)

func TestAlarmRepositoryRoundTrip(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openTestStore(t, filepath.Join(t.TempDir(), "settings.db")),
	}
	lists := [][]model.AlarmConfig{
		{},
		{{Hour: 6, Minute: 0}},
		{{Hour: 23, Minute: 59}, {Hour: 0, Minute: 0}, {Hour: 12, Minute: 30}, {Hour: 12, Minute: 30}},
	}

	for name, store := range stores {
		repository := NewAlarmRepository(store, nil)
		loaded, err := repository.Load()
		require.NoError(t, err, name)
		assert.Empty(t, loaded, name)

		for _, configs := range lists {
			require.NoError(t, repository.Save(configs), name)
			loaded, err := repository.Load()
			require.NoError(t, err, name)
			assert.Equal(t, configs, loaded, name)
		}
	}
}

func TestDecodeAlarmsClampsAndRejects(t *testing.T) {
	configs, err := DecodeAlarms("- hours: 30\n  minutes: -1\n- hours: 7\n  minutes: 5\n")
	require.NoError(t, err)
	assert.Equal(t, []model.AlarmConfig{{Hour: 23, Minute: 0}, {Hour: 7, Minute: 5}}, configs)

	_, err = DecodeAlarms("hours: [")
	assert.Error(t, err)

	configs, err = DecodeAlarms("  ")
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestLoadTreatsGarbageAsEmpty(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(AlarmsKey, "{{{"))

	configs, err := NewAlarmRepository(store, nil).Load()
	require.NoError(t, err)
	assert.Empty(t, configs)
}

type failingStore struct {
	*MemoryStore
}

func (failingStore) Get(string) (string, bool, error) {
	return "", false, errors.New("store offline")
}

func TestLoadReportsUnavailableStore(t *testing.T) {
	configs, err := NewAlarmRepository(failingStore{NewMemoryStore()}, nil).Load()
	assert.Error(t, err)
	assert.Empty(t, configs)
}

func TestWatchSkipsOwnWrites(t *testing.T) {
	store := NewMemoryStore()
	repository := NewAlarmRepository(store, nil)

	var received [][]model.AlarmConfig
	cancel := repository.Watch(func(configs []model.AlarmConfig) {
		received = append(received, configs)
	})
	defer cancel()

	require.NoError(t, repository.Save([]model.AlarmConfig{{Hour: 6}}))
	assert.Empty(t, received)

	raw, err := EncodeAlarms([]model.AlarmConfig{{Hour: 8, Minute: 15}})
	require.NoError(t, err)
	require.NoError(t, store.Set(AlarmsKey, raw))
	require.Len(t, received, 1)
	assert.Equal(t, []model.AlarmConfig{{Hour: 8, Minute: 15}}, received[0])

	// Another writer restoring our last saved list is still a change.
	saved, err := EncodeAlarms([]model.AlarmConfig{{Hour: 6}})
	require.NoError(t, err)
	require.NoError(t, store.Set(AlarmsKey, saved))
	require.Len(t, received, 2)
	assert.Equal(t, []model.AlarmConfig{{Hour: 6}}, received[1])

	require.NoError(t, store.Set(AlarmsKey, "not: [valid"))
	assert.Len(t, received, 2)

	require.NoError(t, repository.Save([]model.AlarmConfig{{Hour: 7}}))
	assert.Len(t, received, 2)
}
