package storage

import (
	"context"

	"tickmint/internal/domain"
)

// RegistryStore persists the singleton registry record.
type RegistryStore interface {
	// Save upserts the registry record.
	Save(ctx context.Context, rec *domain.RegistryRecord) error

	// Get retrieves the registry record. Returns ErrNotFound before the
	// first Save.
	Get(ctx context.Context) (*domain.RegistryRecord, error)
}

// TickStore persists per-tick state: metadata, counters and the leaderboard.
// Holder ledgers are stored separately in a HolderStore; tick states read
// back with an empty holder map.
type TickStore interface {
	// Upsert writes a tick's state keyed by tick.
	Upsert(ctx context.Context, st *domain.TickState) error

	// Get retrieves one tick's state. Returns ErrNotFound if not exists.
	Get(ctx context.Context, tick string) (*domain.TickState, error)

	// List retrieves all tick states ordered by tick ASC.
	List(ctx context.Context) ([]*domain.TickState, error)
}

// HolderStore persists per-(tick, holder) mint statistics.
type HolderStore interface {
	// Upsert writes the stats for one (tick, address) pair.
	Upsert(ctx context.Context, tick, address string, h *domain.HolderInfo) error

	// Get retrieves the stats for one pair. Returns ErrNotFound if not exists.
	Get(ctx context.Context, tick, address string) (*domain.HolderInfo, error)

	// ListByTick retrieves all holder stats for a tick keyed by address.
	ListByTick(ctx context.Context, tick string) (map[string]*domain.HolderInfo, error)
}

// ChunkStore persists live chunk records, each owned by exactly one address.
type ChunkStore interface {
	// Insert adds a new chunk. Returns ErrDuplicateKey if the id exists.
	Insert(ctx context.Context, c *domain.Chunk) error

	// Replace atomically deletes the destroyed ids and inserts the created
	// chunks: either all of it lands or none of it does.
	Replace(ctx context.Context, destroyed []string, created []*domain.Chunk) error

	// Get retrieves a chunk by id. Returns ErrNotFound if not exists.
	Get(ctx context.Context, id string) (*domain.Chunk, error)

	// ListByOwner retrieves all chunks held by an address, ordered by id ASC.
	// An empty tick matches every tick.
	ListByOwner(ctx context.Context, owner, tick string) ([]*domain.Chunk, error)

	// ListAll retrieves every live chunk, ordered by id ASC.
	ListAll(ctx context.Context) ([]*domain.Chunk, error)
}

// MintEventStore persists the append-only mint history used for analytics.
type MintEventStore interface {
	// Insert appends one mint event.
	Insert(ctx context.Context, ev *domain.MintEvent) error

	// ListByTick retrieves the most recent events for a tick, newest first,
	// capped at limit (or all when limit <= 0).
	ListByTick(ctx context.Context, tick string, limit int) ([]*domain.MintEvent, error)
}
