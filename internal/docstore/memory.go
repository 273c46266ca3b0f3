package docstore

import (
	"context"
	"slices"
	"sync"
)

// Memory keeps documents in process memory. Nothing survives a restart.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	body, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}

	return slices.Clone(body), nil
}

func (m *Memory) Put(_ context.Context, key string, body []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[key] = slices.Clone(body)

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, key)

	return nil
}

func (m *Memory) Close() error {
	return nil
}
