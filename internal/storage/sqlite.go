package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

const storeFileName = "settings.db"

const queryTimeout = 5 * time.Second

// SQLiteStore keeps settings in a SQLite database so that other tools can
// read and edit them while the applet runs.
type SQLiteStore struct {
	db       *sql.DB
	watchers watchers

	mu      sync.Mutex
	seen    map[string]string
	version int64
}

// DefaultStorePath returns the database path inside dataDir.
func DefaultStorePath(dataDir, appName string) string {
	return filepath.Join(dataDir, appName, storeFileName)
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	// data_version is per connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, seen: make(map[string]string)}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	version, err := store.dataVersion()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.version = version
	return store, nil
}

// Close closes the underlying database.
func (store *SQLiteStore) Close() error {
	return store.db.Close()
}

func (store *SQLiteStore) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := store.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate settings store: %w", err)
		}
	}
	return nil
}

// Get returns the value of key.
func (store *SQLiteStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	value, ok, err := store.get(ctx, store.db, key)
	if err != nil {
		return "", false, err
	}
	if ok {
		store.remember(key, value)
	}
	return value, ok, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (store *SQLiteStore) get(ctx context.Context, db queryer, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

// Set replaces the value of key in a single transaction. Watchers are
// notified after commit when the value changed.
func (store *SQLiteStore) Set(key, value string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	previous, existed, err := store.get(ctx, tx, key)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit setting %q: %w", key, err)
	}

	store.remember(key, value)
	if !existed || previous != value {
		store.watchers.notify(key, value)
	}
	return nil
}

// OnChange registers a change callback for key.
func (store *SQLiteStore) OnChange(key string, fn func(value string)) func() {
	return store.watchers.add(key, fn)
}

// Sync notifies watchers about values committed by other connections since
// the last call.
func (store *SQLiteStore) Sync() error {
	version, err := store.dataVersion()
	if err != nil {
		return err
	}
	store.mu.Lock()
	unchanged := version == store.version
	store.version = version
	store.mu.Unlock()
	if unchanged {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	for _, key := range store.watchers.keys() {
		value, ok, err := store.get(ctx, store.db, key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if store.changedSinceSeen(key, value) {
			store.watchers.notify(key, value)
		}
	}
	return nil
}

func (store *SQLiteStore) dataVersion() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var version int64
	if err := store.db.QueryRowContext(ctx, `PRAGMA data_version;`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read store data version: %w", err)
	}
	return version, nil
}

// remember records a value this process has observed so that Sync skips it.
func (store *SQLiteStore) remember(key, value string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.seen[key] = value
}

func (store *SQLiteStore) changedSinceSeen(key, value string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	previous, ok := store.seen[key]
	store.seen[key] = value
	return !ok || previous != value
}
