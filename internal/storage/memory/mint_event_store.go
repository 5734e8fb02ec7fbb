package memory

import (
	"context"
	"sync"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// MintEventStore is an in-memory implementation of storage.MintEventStore.
type MintEventStore struct {
	mu     sync.RWMutex
	events []*domain.MintEvent
}

// NewMintEventStore creates a new in-memory mint event store.
func NewMintEventStore() *MintEventStore {
	return &MintEventStore{}
}

// Insert appends a mint event.
func (s *MintEventStore) Insert(_ context.Context, ev *domain.MintEvent) error {
	if ev == nil || ev.Tick == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evCopy := *ev
	s.events = append(s.events, &evCopy)
	return nil
}

// ListByTick retrieves the most recent mint events for a tick, newest first.
// A limit of zero or less returns all events for the tick.
func (s *MintEventStore) ListByTick(_ context.Context, tick string, limit int) ([]*domain.MintEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.MintEvent
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Tick != tick {
			continue
		}
		evCopy := *s.events[i]
		result = append(result, &evCopy)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

var _ storage.MintEventStore = (*MintEventStore)(nil)
