package memory

import (
	"context"
	"sync"
)

// Storage is an in-process key-value store. It backs a profile for the
// lifetime of the process only.
type Storage struct {
	mu    sync.RWMutex
	store map[string]string
}

func NewStorage() *Storage {
	return &Storage{
		store: make(map[string]string),
	}
}

func (m *Storage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.store[key]
	return value, ok, nil
}

// SetMany writes all entries under a single lock.
func (m *Storage) SetMany(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range entries {
		m.store[key] = value
	}
	return nil
}
