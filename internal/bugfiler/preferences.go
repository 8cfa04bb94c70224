package bugfiler

import (
	"sync"

	"pkt.systems/jirasoap/internal/persist"
)

// Preferences remembers small per-user settings such as the last username
// used to sign in to a tracker.
type Preferences interface {
	Get(key string) string
	Put(key, value string) error
}

// MemoryPreferences keeps preferences for the life of the process.
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryPreferences returns empty in-memory preferences.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

// Get returns the stored value or "".
func (p *MemoryPreferences) Get(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[key]
}

// Put stores value under key.
func (p *MemoryPreferences) Put(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	return nil
}

const preferencesDoc = "bugfiler-preferences"

// StorePreferences keeps preferences in a persist.Store document so they
// survive restarts.
type StorePreferences struct {
	store *persist.Store

	mu     sync.Mutex
	values map[string]string
}

// NewStorePreferences loads the preferences document from store.
func NewStorePreferences(store *persist.Store) (*StorePreferences, error) {
	p := &StorePreferences{store: store, values: make(map[string]string)}
	if _, err := store.Load(preferencesDoc, &p.values); err != nil {
		return nil, err
	}
	if p.values == nil {
		p.values = make(map[string]string)
	}
	return p, nil
}

// Get returns the stored value or "".
func (p *StorePreferences) Get(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[key]
}

// Put stores value under key and writes the document.
func (p *StorePreferences) Put(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.values[key] == value {
		return nil
	}
	p.values[key] = value
	return p.store.Save(preferencesDoc, p.values)
}
