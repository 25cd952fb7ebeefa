package store

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryBackend is a non-persistent [Backend], for development and tests.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: map[string][]byte{}}
}

func (m *MemoryBackend) Scan(_ context.Context, prefix string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	vs := make([][]byte, 0, len(keys))
	for _, k := range keys {
		vs = append(vs, slices.Clone(m.docs[k]))
	}
	return vs, nil
}

func (m *MemoryBackend) Create(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[key]; ok {
		return ErrExists
	}
	m.docs[key] = slices.Clone(value)
	return nil
}
