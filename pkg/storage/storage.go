// Package storage holds durable named-record byte storage.
//
// A record is an opaque blob addressed by key. Writers always replace a record
// wholesale; there is no partial update.
package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no record exists for the key.
var ErrNotFound = errors.New("record not found")

// Adapter reads and writes named records.
type Adapter interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Memory is an in-process Adapter. It is mostly useful in tests.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = append([]byte(nil), value...)
	return nil
}
