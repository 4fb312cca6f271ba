package keystore

import (
	"context"
	"sync"
)

// MemoryStore is a Store that forgets everything when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	secrets map[string]Secret
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{secrets: make(map[string]Secret)}
}

func (m *MemoryStore) Get(_ context.Context, service string) (*Secret, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.secrets[service]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) Set(_ context.Context, account, secret, service string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.secrets[service] = Secret{Account: account, Password: secret}
	return nil
}

func (m *MemoryStore) Reset(_ context.Context, service string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.secrets, service)
	return nil
}
