package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// TickStore implements storage.TickStore using PostgreSQL.
// Holder ledgers are persisted separately; tick states read back with an
// empty Holders map.
type TickStore struct {
	pool *Pool
}

// NewTickStore creates a new TickStore.
func NewTickStore(pool *Pool) *TickStore {
	return &TickStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TickStore = (*TickStore)(nil)

// Upsert writes a tick's state keyed by tick.
func (s *TickStore) Upsert(ctx context.Context, st *domain.TickState) error {
	if st == nil || st.Meta.Tick == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO tick_states (
			tick, max_supply, mint_limit, decimals, fee, start_at,
			enable_to_coin, total_minted, txs, leaderboard,
			mint_cooldown, max_mint_per_user, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (tick) DO UPDATE SET
			enable_to_coin = EXCLUDED.enable_to_coin,
			total_minted = EXCLUDED.total_minted,
			txs = EXCLUDED.txs,
			leaderboard = EXCLUDED.leaderboard,
			mint_cooldown = EXCLUDED.mint_cooldown,
			max_mint_per_user = EXCLUDED.max_mint_per_user,
			updated_at = NOW()
	`

	leaderboard := st.Leaderboard
	if leaderboard == nil {
		leaderboard = []string{}
	}

	_, err := s.pool.Exec(ctx, query,
		st.Meta.Tick,
		int64(st.Meta.Max),
		int64(st.Meta.Limit),
		int16(st.Meta.Decimals),
		int64(st.Meta.Fee),
		st.Meta.StartAt,
		st.EnableToCoin,
		int64(st.TotalMinted),
		int64(st.Txs),
		leaderboard,
		int64(st.MintCooldown),
		int64(st.MaxMintPerUser),
	)
	if err != nil {
		return fmt.Errorf("upsert tick state: %w", err)
	}
	return nil
}

// Get retrieves one tick's state. Returns ErrNotFound if not exists.
func (s *TickStore) Get(ctx context.Context, tick string) (*domain.TickState, error) {
	query := `
		SELECT tick, max_supply, mint_limit, decimals, fee, start_at,
		       enable_to_coin, total_minted, txs, leaderboard,
		       mint_cooldown, max_mint_per_user
		FROM tick_states
		WHERE tick = $1
	`

	row := s.pool.QueryRow(ctx, query, tick)
	st, err := scanTickState(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get tick state: %w", err)
	}
	return st, nil
}

// List retrieves all tick states ordered by tick ASC.
func (s *TickStore) List(ctx context.Context) ([]*domain.TickState, error) {
	query := `
		SELECT tick, max_supply, mint_limit, decimals, fee, start_at,
		       enable_to_coin, total_minted, txs, leaderboard,
		       mint_cooldown, max_mint_per_user
		FROM tick_states
		ORDER BY tick ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tick states: %w", err)
	}
	defer rows.Close()

	var states []*domain.TickState
	for rows.Next() {
		st, err := scanTickState(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tick state row: %w", err)
		}
		states = append(states, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tick state rows: %w", err)
	}

	return states, nil
}

// scanTickState scans a single row into a TickState.
func scanTickState(row pgx.Row) (*domain.TickState, error) {
	var st domain.TickState
	var maxSupply, mintLimit, fee, totalMinted, txs, cooldown, maxPerUser int64
	var decimals int16
	var leaderboard []string

	err := row.Scan(
		&st.Meta.Tick,
		&maxSupply,
		&mintLimit,
		&decimals,
		&fee,
		&st.Meta.StartAt,
		&st.EnableToCoin,
		&totalMinted,
		&txs,
		&leaderboard,
		&cooldown,
		&maxPerUser,
	)
	if err != nil {
		return nil, err
	}

	st.Meta.Max = uint64(maxSupply)
	st.Meta.Limit = uint64(mintLimit)
	st.Meta.Decimals = uint8(decimals)
	st.Meta.Fee = uint64(fee)
	st.TotalMinted = uint64(totalMinted)
	st.Txs = uint64(txs)
	st.Leaderboard = leaderboard
	st.MintCooldown = uint64(cooldown)
	st.MaxMintPerUser = uint64(maxPerUser)
	st.Holders = make(map[string]*domain.HolderInfo)
	return &st, nil
}
