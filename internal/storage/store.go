// Package storage holds the key/value settings store shared with the
// desktop, the alarm list kept in it, and the preferences file.
package storage

import (
	"sync"
)

// Store is a string key/value settings store with change notification.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// OnChange registers fn for changes of key. Callbacks run on the
	// goroutine that observed the change, after it is durable.
	OnChange(key string, fn func(value string)) (cancel func())
}

// Syncer is implemented by stores that can observe writes from other
// processes. Sync compares the backing data with what was last seen and
// notifies watchers of every key that changed.
type Syncer interface {
	Sync() error
}

type watchers struct {
	mu     sync.Mutex
	nextID int
	byKey  map[string]map[int]func(string)
}

func (registry *watchers) add(key string, fn func(string)) func() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.byKey == nil {
		registry.byKey = make(map[string]map[int]func(string))
	}
	if registry.byKey[key] == nil {
		registry.byKey[key] = make(map[int]func(string))
	}
	registry.nextID++
	id := registry.nextID
	registry.byKey[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			registry.mu.Lock()
			defer registry.mu.Unlock()
			delete(registry.byKey[key], id)
		})
	}
}

func (registry *watchers) keys() []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	keys := make([]string, 0, len(registry.byKey))
	for key, fns := range registry.byKey {
		if len(fns) > 0 {
			keys = append(keys, key)
		}
	}
	return keys
}

func (registry *watchers) notify(key, value string) {
	registry.mu.Lock()
	fns := make([]func(string), 0, len(registry.byKey[key]))
	for _, fn := range registry.byKey[key] {
		fns = append(fns, fn)
	}
	registry.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string]string
	watchers watchers
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value of key.
func (store *MemoryStore) Get(key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	return value, ok, nil
}

// Set stores value and notifies watchers when it changed.
func (store *MemoryStore) Set(key, value string) error {
	store.mu.Lock()
	previous, existed := store.values[key]
	store.values[key] = value
	store.mu.Unlock()

	if !existed || previous != value {
		store.watchers.notify(key, value)
	}
	return nil
}

// OnChange registers a change callback for key.
func (store *MemoryStore) OnChange(key string, fn func(value string)) func() {
	return store.watchers.add(key, fn)
}
