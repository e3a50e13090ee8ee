package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process store used by tests and as a fallback when
// no durable backend is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	data, ok := m.records[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.mu.Lock()
	m.records[key] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.records, key)
	m.mu.Unlock()
	return nil
}

// SetRaw plants raw bytes under a key, bypassing JSON encoding. Tests use
// it to simulate corrupted records.
func (m *MemoryStore) SetRaw(key string, data []byte) {
	m.mu.Lock()
	m.records[key] = data
	m.mu.Unlock()
}
