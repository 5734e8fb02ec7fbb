package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

func testTickState(tick string) *domain.TickState {
	return &domain.TickState{
		Meta: domain.TickMetadata{
			Tick:     tick,
			Max:      21000000,
			Limit:    1000,
			Decimals: 8,
			Fee:      10,
			StartAt:  1700000000,
		},
		Holders:        make(map[string]*domain.HolderInfo),
		MintCooldown:   60,
		MaxMintPerUser: 5000,
	}
}

func TestTickStore_UpsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTickStore(pool)
	ctx := context.Background()

	st := testTickState("abcd")
	st.TotalMinted = 42
	st.Txs = 3
	st.Leaderboard = []string{"addr1", "addr2"}

	require.NoError(t, store.Upsert(ctx, st))

	result, err := store.Get(ctx, "abcd")
	require.NoError(t, err)
	require.Equal(t, uint64(21000000), result.Meta.Max)
	require.Equal(t, uint64(1000), result.Meta.Limit)
	require.Equal(t, uint8(8), result.Meta.Decimals)
	require.Equal(t, uint64(10), result.Meta.Fee)
	require.Equal(t, int64(1700000000), result.Meta.StartAt)
	require.Equal(t, uint64(42), result.TotalMinted)
	require.Equal(t, uint64(3), result.Txs)
	require.Equal(t, []string{"addr1", "addr2"}, result.Leaderboard)
	require.Equal(t, uint64(60), result.MintCooldown)
	require.Equal(t, uint64(5000), result.MaxMintPerUser)
	require.Empty(t, result.Holders)
}

func TestTickStore_UpsertUpdatesCounters(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTickStore(pool)
	ctx := context.Background()

	st := testTickState("abcd")
	require.NoError(t, store.Upsert(ctx, st))

	st.TotalMinted = 500
	st.Txs = 7
	st.EnableToCoin = true
	st.Leaderboard = []string{"addr9"}
	require.NoError(t, store.Upsert(ctx, st))

	result, err := store.Get(ctx, "abcd")
	require.NoError(t, err)
	require.Equal(t, uint64(500), result.TotalMinted)
	require.Equal(t, uint64(7), result.Txs)
	require.True(t, result.EnableToCoin)
	require.Equal(t, []string{"addr9"}, result.Leaderboard)
}

func TestTickStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTickStore(pool)
	ctx := context.Background()

	_, err := store.Get(ctx, "nope")
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestTickStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTickStore(pool)
	ctx := context.Background()

	require.True(t, errors.Is(store.Upsert(ctx, nil), storage.ErrInvalidInput))
	require.True(t, errors.Is(store.Upsert(ctx, &domain.TickState{}), storage.ErrInvalidInput))
}

func TestTickStore_ListOrdered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTickStore(pool)
	ctx := context.Background()

	for _, tick := range []string{"zzzz", "abcd", "mmm1"} {
		require.NoError(t, store.Upsert(ctx, testTickState(tick)))
	}

	result, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, result, 3)
	require.Equal(t, "abcd", result[0].Meta.Tick)
	require.Equal(t, "mmm1", result[1].Meta.Tick)
	require.Equal(t, "zzzz", result[2].Meta.Tick)
}
