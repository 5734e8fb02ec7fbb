package postgres

import (
	"context"
	"fmt"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// HolderStore implements storage.HolderStore using PostgreSQL.
type HolderStore struct {
	pool *Pool
}

// NewHolderStore creates a new HolderStore.
func NewHolderStore(pool *Pool) *HolderStore {
	return &HolderStore{pool: pool}
}

// Compile-time interface check.
var _ storage.HolderStore = (*HolderStore)(nil)

// Upsert writes the stats for one (tick, address) pair.
func (s *HolderStore) Upsert(ctx context.Context, tick, address string, h *domain.HolderInfo) error {
	if tick == "" || address == "" || h == nil {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO holder_infos (tick, address, minted_amount, last_mint_at, hold_amount, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (tick, address) DO UPDATE SET
			minted_amount = EXCLUDED.minted_amount,
			last_mint_at = EXCLUDED.last_mint_at,
			hold_amount = EXCLUDED.hold_amount,
			updated_at = NOW()
	`

	_, err := s.pool.Exec(ctx, query,
		tick,
		address,
		int64(h.MintedAmount),
		h.LastMintAt,
		int64(h.HoldAmount),
	)
	if err != nil {
		return fmt.Errorf("upsert holder info: %w", err)
	}
	return nil
}

// Get retrieves the stats for one pair. Returns ErrNotFound if not exists.
func (s *HolderStore) Get(ctx context.Context, tick, address string) (*domain.HolderInfo, error) {
	query := `
		SELECT minted_amount, last_mint_at, hold_amount
		FROM holder_infos
		WHERE tick = $1 AND address = $2
	`

	var h domain.HolderInfo
	var minted, hold int64

	err := s.pool.QueryRow(ctx, query, tick, address).Scan(&minted, &h.LastMintAt, &hold)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get holder info: %w", err)
	}

	h.MintedAmount = uint64(minted)
	h.HoldAmount = uint64(hold)
	return &h, nil
}

// ListByTick retrieves all holder stats for a tick keyed by address.
func (s *HolderStore) ListByTick(ctx context.Context, tick string) (map[string]*domain.HolderInfo, error) {
	query := `
		SELECT address, minted_amount, last_mint_at, hold_amount
		FROM holder_infos
		WHERE tick = $1
	`

	rows, err := s.pool.Query(ctx, query, tick)
	if err != nil {
		return nil, fmt.Errorf("list holder infos by tick: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*domain.HolderInfo)
	for rows.Next() {
		var address string
		var h domain.HolderInfo
		var minted, hold int64

		if err := rows.Scan(&address, &minted, &h.LastMintAt, &hold); err != nil {
			return nil, fmt.Errorf("scan holder info row: %w", err)
		}

		h.MintedAmount = uint64(minted)
		h.HoldAmount = uint64(hold)
		result[address] = &h
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holder info rows: %w", err)
	}

	return result, nil
}
