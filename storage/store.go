package storage

import "sync"

// Store is durable client-side state: named JSON blobs, last-write-wins.
// Get returns (nil, nil) when the key has never been written.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, blob []byte) error
	Delete(key string) error
}

// MemStore is an in-memory Store for tests and throwaway sessions.
type MemStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

func (m *MemStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (m *MemStore) Put(key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(blob))
	copy(stored, blob)
	m.blobs[key] = stored
	return nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
