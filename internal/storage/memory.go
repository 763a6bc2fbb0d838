package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of Store used for unit testing
// session logic without touching the filesystem, and as the ephemeral backend
// for throwaway sessions.
type MemoryStore struct {
	mu        sync.Mutex
	data      []byte
	exists    bool
	saveCalls int
	err       error
}

// NewMemoryStore instantiates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// WithError configures the store to return the provided error for subsequent
// calls.
func (m *MemoryStore) WithError(err error) *MemoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

func (m *MemoryStore) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if !m.exists {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data = append([]byte(nil), data...)
	m.exists = true
	m.saveCalls++
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data = nil
	m.exists = false
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// SaveCalls reports how many saves have been issued, letting tests assert
// write-through persistence.
func (m *MemoryStore) SaveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}
