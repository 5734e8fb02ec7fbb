package postgres

import (
	"context"
	"fmt"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// RegistryStore implements storage.RegistryStore using PostgreSQL.
// The registry is a single row enforced by a CHECK constraint.
type RegistryStore struct {
	pool *Pool
}

// NewRegistryStore creates a new RegistryStore.
func NewRegistryStore(pool *Pool) *RegistryStore {
	return &RegistryStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RegistryStore = (*RegistryStore)(nil)

// Save upserts the singleton registry record.
func (s *RegistryStore) Save(ctx context.Context, rec *domain.RegistryRecord) error {
	if rec == nil {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO registry (id, paused, version, fee_pool, chunk_seq, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			paused = EXCLUDED.paused,
			version = EXCLUDED.version,
			fee_pool = EXCLUDED.fee_pool,
			chunk_seq = EXCLUDED.chunk_seq,
			updated_at = NOW()
	`

	_, err := s.pool.Exec(ctx, query,
		rec.Paused,
		int64(rec.Version),
		int64(rec.FeePool),
		int64(rec.ChunkSeq),
	)
	if err != nil {
		return fmt.Errorf("save registry record: %w", err)
	}
	return nil
}

// Get retrieves the singleton registry record. Returns ErrNotFound before
// the first Save.
func (s *RegistryStore) Get(ctx context.Context) (*domain.RegistryRecord, error) {
	query := `
		SELECT paused, version, fee_pool, chunk_seq
		FROM registry
		WHERE id = 1
	`

	var rec domain.RegistryRecord
	var version, feePool, chunkSeq int64

	err := s.pool.QueryRow(ctx, query).Scan(&rec.Paused, &version, &feePool, &chunkSeq)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get registry record: %w", err)
	}

	rec.Version = uint64(version)
	rec.FeePool = uint64(feePool)
	rec.ChunkSeq = uint64(chunkSeq)
	return &rec, nil
}
