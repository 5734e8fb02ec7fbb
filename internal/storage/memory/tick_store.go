package memory

import (
	"context"
	"sort"
	"sync"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// TickStore is an in-memory implementation of storage.TickStore.
// Holder balances are kept in HolderStore; tick states here carry an
// empty Holders map, matching what the durable stores return.
type TickStore struct {
	mu    sync.RWMutex
	ticks map[string]*domain.TickState
}

// NewTickStore creates a new in-memory tick store.
func NewTickStore() *TickStore {
	return &TickStore{
		ticks: make(map[string]*domain.TickState),
	}
}

// Upsert saves or updates a tick state by its tick symbol.
func (s *TickStore) Upsert(_ context.Context, st *domain.TickState) error {
	if st == nil || st.Meta.Tick == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := st.Clone()
	stored.Holders = make(map[string]*domain.HolderInfo)
	s.ticks[st.Meta.Tick] = stored
	return nil
}

// Get retrieves a tick state by its tick symbol.
func (s *TickStore) Get(_ context.Context, tick string) (*domain.TickState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.ticks[tick]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return st.Clone(), nil
}

// List retrieves all tick states.
func (s *TickStore) List(_ context.Context) ([]*domain.TickState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TickState, 0, len(s.ticks))
	for _, st := range s.ticks {
		result = append(result, st.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Meta.Tick < result[j].Meta.Tick })
	return result, nil
}

var _ storage.TickStore = (*TickStore)(nil)
