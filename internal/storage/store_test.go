package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestMemoryStoreNotifiesOnChange(t *testing.T) {
	store := NewMemoryStore()
	var seen []string
	cancel := store.OnChange("k", func(value string) {
		seen = append(seen, value)
	})

	require.NoError(t, store.Set("k", "a"))
	require.NoError(t, store.Set("k", "a"))
	require.NoError(t, store.Set("other", "x"))
	require.NoError(t, store.Set("k", "b"))
	cancel()
	cancel()
	require.NoError(t, store.Set("k", "c"))

	assert.Equal(t, []string{"a", "b"}, seen)
	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c", value)
}

func TestSQLiteStoreGetSet(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "nested", "settings.db"))

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	var notified []string
	store.OnChange("alarm-sound-path", func(value string) {
		notified = append(notified, value)
	})
	require.NoError(t, store.Set("alarm-sound-path", "/tmp/a.oga"))
	require.NoError(t, store.Set("alarm-sound-path", "/tmp/a.oga"))
	require.NoError(t, store.Set("alarm-sound-path", "/tmp/b.oga"))

	value, ok, err := store.Get("alarm-sound-path")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/tmp/b.oga", value)
	assert.Equal(t, []string{"/tmp/a.oga", "/tmp/b.oga"}, notified)
}

func TestSQLiteStoreSyncSeesOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	reader := openTestStore(t, path)
	writer := openTestStore(t, path)

	var notified []string
	reader.OnChange(AlarmsKey, func(value string) {
		notified = append(notified, value)
	})

	require.NoError(t, reader.Sync())
	assert.Empty(t, notified)

	require.NoError(t, writer.Set(AlarmsKey, "- hours: 7\n  minutes: 30\n"))
	require.NoError(t, reader.Sync())
	require.NoError(t, reader.Sync())
	assert.Equal(t, []string{"- hours: 7\n  minutes: 30\n"}, notified)

	require.NoError(t, reader.Set(AlarmsKey, "[]\n"))
	require.NoError(t, reader.Sync())
	assert.Len(t, notified, 2, "own write notifies once and is not reported again by sync")
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("timer-sound-path", "/tmp/t.oga"))
	require.NoError(t, store.Close())

	reopened := openTestStore(t, path)
	value, ok, err := reopened.Get("timer-sound-path")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/t.oga", value)
}
