package memory

import (
	"context"
	"sync"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// RegistryStore is an in-memory implementation of storage.RegistryStore.
type RegistryStore struct {
	mu  sync.RWMutex
	rec *domain.RegistryRecord
}

// NewRegistryStore creates a new in-memory registry store.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{}
}

// Save upserts the registry record.
func (s *RegistryStore) Save(_ context.Context, rec *domain.RegistryRecord) error {
	if rec == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recCopy := *rec
	s.rec = &recCopy
	return nil
}

// Get retrieves the registry record. Returns ErrNotFound before the first Save.
func (s *RegistryStore) Get(_ context.Context) (*domain.RegistryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rec == nil {
		return nil, storage.ErrNotFound
	}

	recCopy := *s.rec
	return &recCopy, nil
}

var _ storage.RegistryStore = (*RegistryStore)(nil)
