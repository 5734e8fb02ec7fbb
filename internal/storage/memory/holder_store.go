package memory

import (
	"context"
	"sync"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// HolderStore is an in-memory implementation of storage.HolderStore.
type HolderStore struct {
	mu      sync.RWMutex
	holders map[string]map[string]*domain.HolderInfo // tick -> address -> info
}

// NewHolderStore creates a new in-memory holder store.
func NewHolderStore() *HolderStore {
	return &HolderStore{
		holders: make(map[string]map[string]*domain.HolderInfo),
	}
}

// Upsert saves or updates a holder's per-tick stats.
func (s *HolderStore) Upsert(_ context.Context, tick, address string, h *domain.HolderInfo) error {
	if tick == "" || address == "" || h == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byAddr, ok := s.holders[tick]
	if !ok {
		byAddr = make(map[string]*domain.HolderInfo)
		s.holders[tick] = byAddr
	}
	hCopy := *h
	byAddr[address] = &hCopy
	return nil
}

// Get retrieves a holder's stats for one tick.
func (s *HolderStore) Get(_ context.Context, tick, address string) (*domain.HolderInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byAddr, ok := s.holders[tick]
	if !ok {
		return nil, storage.ErrNotFound
	}
	h, ok := byAddr[address]
	if !ok {
		return nil, storage.ErrNotFound
	}
	hCopy := *h
	return &hCopy, nil
}

// ListByTick retrieves all holder stats for one tick keyed by address.
func (s *HolderStore) ListByTick(_ context.Context, tick string) (map[string]*domain.HolderInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*domain.HolderInfo, len(s.holders[tick]))
	for addr, h := range s.holders[tick] {
		hCopy := *h
		result[addr] = &hCopy
	}
	return result, nil
}

var _ storage.HolderStore = (*HolderStore)(nil)
