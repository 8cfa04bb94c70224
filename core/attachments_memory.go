package core

import (
	"context"
	"errors"
	"sync"
)

// ErrAttachmentNotFound is returned by attachment stores for unknown ids.
var ErrAttachmentNotFound = errors.New("attachment not found")

// MemoryAttachmentStore keeps attachment content in memory.
type MemoryAttachmentStore struct {
	mu    sync.RWMutex
	items map[int64][]byte
}

// NewMemoryAttachmentStore returns an empty in-memory attachment store.
func NewMemoryAttachmentStore() *MemoryAttachmentStore {
	return &MemoryAttachmentStore{items: make(map[int64][]byte)}
}

// Put stores a copy of data.
func (m *MemoryAttachmentStore) Put(_ context.Context, id int64, data []byte) error {
	m.mu.Lock()
	m.items[id] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the stored content.
func (m *MemoryAttachmentStore) Get(_ context.Context, id int64) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.items[id]
	if !ok {
		return nil, ErrAttachmentNotFound
	}
	return append([]byte(nil), data...), nil
}

// Delete drops the content. Unknown ids are ignored.
func (m *MemoryAttachmentStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}
