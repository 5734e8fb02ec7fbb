package memory

import (
	"context"
	"sort"
	"sync"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// ChunkStore is an in-memory implementation of storage.ChunkStore.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string]*domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[string]*domain.Chunk),
	}
}

// Insert adds a new chunk. Returns ErrDuplicateKey if the ID already exists.
func (s *ChunkStore) Insert(_ context.Context, c *domain.Chunk) error {
	if c == nil || c.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.chunks[c.ID]; exists {
		return storage.ErrDuplicateKey
	}
	cCopy := *c
	s.chunks[c.ID] = &cCopy
	return nil
}

// Replace atomically removes the destroyed chunks and inserts the created ones.
func (s *ChunkStore) Replace(_ context.Context, destroyed []string, created []*domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range destroyed {
		if _, ok := s.chunks[id]; !ok {
			return storage.ErrNotFound
		}
	}
	for _, c := range created {
		if c == nil || c.ID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.chunks[c.ID]; exists {
			return storage.ErrDuplicateKey
		}
	}

	for _, id := range destroyed {
		delete(s.chunks, id)
	}
	for _, c := range created {
		cCopy := *c
		s.chunks[c.ID] = &cCopy
	}
	return nil
}

// Get retrieves a chunk by ID.
func (s *ChunkStore) Get(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chunks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cCopy := *c
	return &cCopy, nil
}

// ListByOwner retrieves all chunks held by an owner, optionally filtered
// by tick. An empty tick matches every tick.
func (s *ChunkStore) ListByOwner(_ context.Context, owner, tick string) ([]*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Chunk
	for _, c := range s.chunks {
		if c.Owner != owner {
			continue
		}
		if tick != "" && c.Tick != tick {
			continue
		}
		cCopy := *c
		result = append(result, &cCopy)
	}
	sortChunksByID(result)
	return result, nil
}

// ListAll retrieves every live chunk.
func (s *ChunkStore) ListAll(_ context.Context) ([]*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		cCopy := *c
		result = append(result, &cCopy)
	}
	sortChunksByID(result)
	return result, nil
}

func sortChunksByID(chunks []*domain.Chunk) {
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ID < chunks[j].ID })
}

var _ storage.ChunkStore = (*ChunkStore)(nil)
